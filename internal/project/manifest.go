package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a loaded displaystr.toml together with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors displaystr.toml.
type Config struct {
	Expand      ExpandConfig      `toml:"expand"`
	Output      OutputConfig      `toml:"output"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
}

type ExpandConfig struct {
	// Attribute is the last path segment recognised as the macro attribute.
	Attribute string `toml:"attribute"`
	Doc       bool   `toml:"doc"`
	Layout    string `toml:"layout"`
}

type OutputConfig struct {
	Suffix     string   `toml:"suffix"`
	Extensions []string `toml:"extensions"`
}

type DiagnosticsConfig struct {
	Max int `toml:"max"`
}

// Default returns the configuration used when no manifest exists.
func Default() Config {
	return Config{
		Expand: ExpandConfig{
			Attribute: "display",
			Layout:    "pretty",
		},
		Output: OutputConfig{
			Suffix:     ".expanded.rs",
			Extensions: []string{".rs"},
		},
		Diagnostics: DiagnosticsConfig{Max: 100},
	}
}

// LoadConfig decodes path on top of Default, so missing keys keep their
// default values.
func LoadConfig(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that TOML types alone cannot.
func (c Config) Validate() error {
	attr := strings.TrimSpace(c.Expand.Attribute)
	if attr == "" {
		return errors.New("[expand].attribute must not be empty")
	}
	if strings.Contains(attr, "::") {
		return fmt.Errorf("[expand].attribute must be a single identifier, got %q", attr)
	}
	switch c.Expand.Layout {
	case "pretty", "compact":
	default:
		return fmt.Errorf("[expand].layout must be pretty or compact, got %q", c.Expand.Layout)
	}
	if c.Output.Suffix == "" {
		return errors.New("[output].suffix must not be empty")
	}
	for _, ext := range c.Output.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("[output].extensions entries must start with '.', got %q", ext)
		}
	}
	if c.Diagnostics.Max < 0 {
		return fmt.Errorf("[diagnostics].max must be >= 0, got %d", c.Diagnostics.Max)
	}
	return nil
}

// Load finds the manifest above startDir and decodes it. Without a
// manifest it returns nil and false.
func Load(startDir string) (*Manifest, bool, error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := LoadConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

// DefaultManifest is the text written by `displaystr init`.
func DefaultManifest() string {
	return `# displaystr configuration
[expand]
attribute = "display"   # also matches displaystr::display
doc = false             # add #[doc] with the template to every variant
layout = "pretty"       # pretty | compact

[output]
suffix = ".expanded.rs"
extensions = [".rs"]

[diagnostics]
max = 100
`
}

// WriteDefault creates dir/displaystr.toml. An existing file is an error
// unless force is set.
func WriteDefault(dir string, force bool) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("already initialized: %s exists", path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", path, err)
		}
	}
	if err := os.WriteFile(path, []byte(DefaultManifest()), 0o600); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}
