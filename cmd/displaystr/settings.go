package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"displaystr/internal/diagfmt"
	"displaystr/internal/driver"
	"displaystr/internal/format"
	"displaystr/internal/observ"
	"displaystr/internal/project"
)

// settings are the manifest values after command-line overrides.
type settings struct {
	cfg          project.Config
	manifestPath string
	colorMode    string
	quiet        bool
	timer        *observ.Timer
}

// loadSettings reads --config or the nearest displaystr.toml and applies
// the global flags on top.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	s := &settings{cfg: project.Default()}
	if configPath != "" {
		cfg, err := project.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		s.cfg, s.manifestPath = cfg, configPath
	} else {
		manifest, ok, err := project.Load(".")
		if err != nil {
			return nil, err
		}
		if ok {
			s.cfg, s.manifestPath = manifest.Config, manifest.Path
		}
	}

	if flags.Changed("max-diagnostics") {
		maxDiagnostics, err := flags.GetInt("max-diagnostics")
		if err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		if maxDiagnostics < 0 {
			return nil, fmt.Errorf("--max-diagnostics must be >= 0")
		}
		s.cfg.Diagnostics.Max = maxDiagnostics
	}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "auto", "on", "off":
		s.colorMode = colorFlag
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		s.timer = observ.NewTimer()
	}
	return s, nil
}

// driverOptions turns settings into options for the driver. The cache is
// attached separately.
func (s *settings) driverOptions() (driver.Options, error) {
	layout, err := format.ParseLayout(s.cfg.Expand.Layout)
	if err != nil {
		return driver.Options{}, err
	}
	return driver.Options{
		Attribute:      s.cfg.Expand.Attribute,
		Doc:            s.cfg.Expand.Doc,
		Layout:         layout,
		MaxDiagnostics: s.cfg.Diagnostics.Max,
		Extensions:     s.cfg.Output.Extensions,
		OutputSuffix:   s.cfg.Output.Suffix,
		Timer:          s.timer,
	}, nil
}

// useColor decides colouring for output written to w.
func (s *settings) useColor(w io.Writer) bool {
	switch s.colorMode {
	case "on":
		return true
	case "off":
		return false
	}
	return isTerminal(w) && os.Getenv("NO_COLOR") == ""
}

func (s *settings) prettyOpts(w io.Writer) diagfmt.PrettyOpts {
	return diagfmt.PrettyOpts{
		Color:     s.useColor(w),
		Context:   2,
		PathMode:  diagfmt.PathModeRelative,
		ShowNotes: true,
		ShowFixes: true,
	}
}
