package pjrt

import (
	"fmt"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/types/known/structpb"
)

// NamedValuesMap map names to values of one of the supported types, the same ones supported by PJRT_NamedValue:
// string, int64, []int64, float32 and bool.
type NamedValuesMap map[string]any

// Validate checks that all values are of one of the supported types.
func (m NamedValuesMap) Validate() error {
	for _, key := range m.Keys() {
		switch value := m[key].(type) {
		case string, int64, []int64, float32, bool:
			// Supported.
		default:
			return errors.Errorf("named value %q was set to unsupported type %T (value=%v). "+
				"Only values of type string, int64, []int64, float32 and bool are supported.",
				key, value, value)
		}
	}
	return nil
}

// Keys returns the sorted names in the map.
func (m NamedValuesMap) Keys() []string {
	names := keys(m)
	slices.Sort(names)
	return names
}

// String implements fmt.Stringer, with one "name: value" per line, sorted by name.
func (m NamedValuesMap) String() string {
	var sb strings.Builder
	for _, key := range m.Keys() {
		_, _ = fmt.Fprintf(&sb, "%s: %v\n", key, m[key])
	}
	return sb.String()
}

// ToStruct converts the map to a protobuf Struct, so it can be serialized (e.g.: with protojson or prototext).
func (m NamedValuesMap) ToStruct() (*structpb.Struct, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	fields := make(map[string]any, len(m))
	for key, anyValue := range m {
		switch value := anyValue.(type) {
		case int64:
			fields[key] = value
		case []int64:
			list := make([]any, len(value))
			for ii, v := range value {
				list[ii] = v
			}
			fields[key] = list
		case float32:
			fields[key] = float64(value)
		default:
			fields[key] = value
		}
	}
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert NamedValuesMap to structpb.Struct")
	}
	return s, nil
}
