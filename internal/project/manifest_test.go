package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"displaystr/internal/project"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestDefaultManifestDecodesToDefault(t *testing.T) {
	var cfg project.Config
	_, err := toml.Decode(project.DefaultManifest(), &cfg)
	require.NoError(t, err)
	assert.Equal(t, project.Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, project.ManifestName), "[expand]\nlayout = \"compact\"\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	m, ok, err := project.Load(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, root, m.Root)
	assert.Equal(t, "compact", m.Config.Expand.Layout)
	// незаданные ключи берутся из Default
	assert.Equal(t, "display", m.Config.Expand.Attribute)
	assert.Equal(t, ".expanded.rs", m.Config.Output.Suffix)
	assert.Equal(t, 100, m.Config.Diagnostics.Max)
}

func TestLoadMissing(t *testing.T) {
	m, ok, err := project.Load(t.TempDir())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, m)
}

func TestLoadConfigErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{"syntax", "[expand\n", "failed to parse TOML"},
		{"unknown key", "[expand]\ncolour = true\n", "unknown keys: expand.colour"},
		{"bad layout", "[expand]\nlayout = \"wide\"\n", "layout must be pretty or compact"},
		{"path attribute", "[expand]\nattribute = \"a::b\"\n", "single identifier"},
		{"bad extension", "[output]\nextensions = [\"rs\"]\n", "must start with '.'"},
		{"negative max", "[diagnostics]\nmax = -1\n", "must be >= 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), project.ManifestName)
			writeFile(t, path, tc.content)
			_, err := project.LoadConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()
	path, err := project.WriteDefault(dir, false)
	require.NoError(t, err)

	cfg, err := project.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, project.Default(), cfg)

	_, err = project.WriteDefault(dir, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")

	_, err = project.WriteDefault(dir, true)
	require.NoError(t, err)
}

func TestCombine(t *testing.T) {
	var content project.Digest
	a := project.Combine(content, []byte("ab"), []byte("c"))
	b := project.Combine(content, []byte("a"), []byte("bc"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, project.Combine(content, []byte("ab"), []byte("c")))
	assert.False(t, a.IsZero())
}
