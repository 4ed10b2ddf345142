package interpreter

import (
	"testing"

	"github.com/dgryski/go-farm"
	"github.com/stretchr/testify/require"
)

func TestKindID(t *testing.T) {
	id := KindID()
	for range 10 {
		require.Equal(t, id, KindID())
	}
	require.Equal(t, int(int32(farm.Fingerprint32([]byte("interpreter")))), id)
	require.Equal(t, id, KindIDFor(Kind))

	// Kinds in use must have distinct ids.
	seen := map[int]string{id: Kind}
	for _, name := range []string{"device", "pinned_host", "unpinned_host", "host", "cpu", "Interpreter"} {
		other := KindIDFor(name)
		previous, found := seen[other]
		require.Falsef(t, found, "kind %q has the same kind id %d as %q", name, other, previous)
		seen[other] = name
	}
}
