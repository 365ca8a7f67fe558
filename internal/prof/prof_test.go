package prof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionWritesRequestedProfiles(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		CPU: filepath.Join(dir, "cpu.out"),
		Mem: filepath.Join(dir, "mem.out"),
	}
	require.True(t, paths.Enabled())

	s, err := Start(paths)
	require.NoError(t, err)
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())

	for _, p := range []string{paths.CPU, paths.Mem} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		require.Positive(t, info.Size(), p)
	}
}

func TestStartBadPath(t *testing.T) {
	_, err := Start(Paths{CPU: filepath.Join(t.TempDir(), "missing", "cpu.out")})
	require.ErrorContains(t, err, "cpu profile")
}

func TestNilSessionStop(t *testing.T) {
	var s *Session
	require.NoError(t, s.Stop())
	require.False(t, Paths{}.Enabled())
}
