/*
 *	Copyright 2024 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

package platform

import (
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/gomlx/interpreter/status"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

const (
	// DisabledPlatformsEnv is the name of the environment variable with a comma-separated list of platform
	// names that should be hidden from the default registry.
	DisabledPlatformsEnv = "GOPJRT_DISABLED_PLATFORMS"
)

var (
	// ErrPlatformNotFound is matched (with errors.Is) by errors returned by GetPlatform when the platform
	// is not registered.
	ErrPlatformNotFound = status.New(status.CodeNotFound, "platform not found")

	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Registry of platforms, keyed by their (case-insensitive) name and aliases.
//
// It is safe for concurrent use.
type Registry struct {
	mu        sync.Mutex
	platforms map[string]Platform // Key is the lower-cased name or alias.
	names     []string            // Canonical names, in registration order.
	disabled  map[string]bool
}

// NewRegistry returns a new empty Registry.
// Platforms whose name is in disabled will be silently ignored by Register.
func NewRegistry(disabled ...string) *Registry {
	r := &Registry{
		platforms: make(map[string]Platform),
		disabled:  make(map[string]bool),
	}
	for _, name := range disabled {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			r.disabled[name] = true
		}
	}
	return r
}

// DefaultRegistry returns the process-wide registry used by Register and GetPlatform.
//
// It is created on first use, and platforms listed in GOPJRT_DISABLED_PLATFORMS are excluded from it.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		var disabled []string
		if value, found := os.LookupEnv(DisabledPlatformsEnv); found {
			disabled = strings.Split(value, ",")
		}
		defaultRegistry = NewRegistry(disabled...)
	})
	return defaultRegistry
}

// Register a platform in the default registry. See Registry.Register.
func Register(p Platform, aliases ...string) error {
	return DefaultRegistry().Register(p, aliases...)
}

// GetPlatform returns the platform with the given name (or alias) from the default registry.
func GetPlatform(name string) (Platform, error) {
	return DefaultRegistry().GetPlatform(name)
}

// Register the platform under its name and the optional aliases.
// Names are case-insensitive, aliases that only differ from the name (or each other) by case are ignored.
//
// It returns an error if the name or any of the aliases is already taken.
func (r *Registry) Register(p Platform, aliases ...string) error {
	if p == nil {
		return status.Errorf(status.CodeInvalidArgument, "cannot register a nil platform")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(aliases)+1)
	for _, key := range append([]string{p.Name()}, aliases...) {
		key = strings.ToLower(key)
		if key == "" {
			return status.Errorf(status.CodeInvalidArgument, "cannot register platform %q with an empty name or alias", p.Name())
		}
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}
	if r.disabled[keys[0]] {
		klog.V(1).Infof("platform %q disabled by %s, not registering it", p.Name(), DisabledPlatformsEnv)
		return nil
	}
	for _, key := range keys {
		if other, found := r.platforms[key]; found {
			return status.Errorf(status.CodeAlreadyExists, "platform name %q already registered for platform %q", key, other.Name())
		}
	}
	for _, key := range keys {
		r.platforms[key] = p
	}
	r.names = append(r.names, p.Name())
	klog.V(1).Infof("registered platform %q (aliases %v)", p.Name(), aliases)
	return nil
}

// GetPlatform returns the platform registered with the given name or alias.
//
// If not found, it returns an error that matches ErrPlatformNotFound and carries status.CodeNotFound.
func (r *Registry) GetPlatform(name string) (Platform, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, found := r.platforms[strings.ToLower(name)]; found {
		return p, nil
	}
	return nil, errors.WithStack(errors.WithMessagef(ErrPlatformNotFound,
		"could not find platform %q, registered platforms are %v", name, r.sortedNames()))
}

// Platforms returns the sorted names of the registered platforms, not including aliases.
func (r *Registry) Platforms() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedNames()
}

func (r *Registry) sortedNames() []string {
	names := slices.Clone(r.names)
	slices.Sort(names)
	return names
}
