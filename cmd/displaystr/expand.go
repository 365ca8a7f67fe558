package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"displaystr/internal/diagfmt"
	"displaystr/internal/driver"
	"displaystr/internal/format"
)

func newExpandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand [flags] [file.rs|directory|-]",
		Short: "Expand #[display] enums",
		Long: `Expand replaces every enum annotated with #[display] by the cleaned enum,
compile_error! invocations for its problems and an impl of Display.
Without --write the result goes to stdout; a missing path reads stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExpand,
	}
	cmd.Flags().Bool("write", false, "write <file><suffix> next to every input")
	cmd.Flags().Bool("check", false, "fail if an existing <file><suffix> differs from the expansion")
	cmd.Flags().Bool("doc", false, "add #[doc] with the template to every variant")
	cmd.Flags().String("layout", "", "output layout (pretty|compact); default from displaystr.toml")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directories (0=auto)")
	cmd.Flags().Bool("no-cache", false, "do not read or write the expansion cache")
	cmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	return cmd
}

func runExpand(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	req, err := expandRequestFromFlags(cmd, s, path)
	if err != nil {
		return err
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}
	if write && check {
		return fmt.Errorf("--write and --check cannot be used together")
	}
	if (write || check) && path == "-" {
		return fmt.Errorf("--write and --check need a file or directory path")
	}

	outcome, err := runExpansion(cmd, req)
	if err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	out := cmd.OutOrStdout()
	bag := outcome.mergedBag(s.cfg.Diagnostics.Max)
	if bag.Len() > 0 || bag.Dropped() > 0 {
		diagfmt.Pretty(errOut, bag, outcome.fs, s.prettyOpts(errOut))
	}

	switch {
	case write:
		for _, res := range outcome.results {
			if res.LoadErr != nil {
				continue
			}
			target, err := driver.WriteOutput(cmd.Context(), res, s.cfg.Output.Suffix, req.opts)
			if err != nil {
				return err
			}
			if !s.quiet {
				fmt.Fprintf(out, "wrote %s\n", target)
			}
		}
	case check:
		var stale []string
		for _, res := range outcome.results {
			if res.LoadErr != nil {
				continue
			}
			ok, err := driver.CheckOutput(res, s.cfg.Output.Suffix)
			if err != nil {
				return err
			}
			if !ok {
				stale = append(stale, driver.OutputPath(res.Path, s.cfg.Output.Suffix))
			}
		}
		if len(stale) > 0 {
			if !s.quiet {
				fmt.Fprintf(errOut, "out of date:\n  %s\n", strings.Join(stale, "\n  "))
			}
			printTimings(errOut, s.timer)
			return fmt.Errorf("%d expansion(s) out of date", len(stale))
		}
	default:
		for _, res := range outcome.results {
			if res.LoadErr != nil {
				continue
			}
			if outcome.dir {
				fmt.Fprintf(out, "// ==> %s <==\n", res.Path)
			}
			if _, err := out.Write(res.Output); err != nil {
				return err
			}
			if len(res.Output) > 0 && res.Output[len(res.Output)-1] != '\n' {
				fmt.Fprintln(out)
			}
		}
	}

	printTimings(errOut, s.timer)
	if outcome.hasErrors() {
		return errDiagnostics
	}
	return nil
}

// expandRequestFromFlags applies expand/diag flags on top of the settings.
func expandRequestFromFlags(cmd *cobra.Command, s *settings, path string) (expandRequest, error) {
	opts, err := s.driverOptions()
	if err != nil {
		return expandRequest{}, err
	}
	flags := cmd.Flags()

	if flags.Lookup("doc") != nil {
		doc, err := flags.GetBool("doc")
		if err != nil {
			return expandRequest{}, fmt.Errorf("failed to get doc flag: %w", err)
		}
		opts.Doc = opts.Doc || doc
	}
	if flags.Lookup("layout") != nil {
		layoutStr, err := flags.GetString("layout")
		if err != nil {
			return expandRequest{}, fmt.Errorf("failed to get layout flag: %w", err)
		}
		if layoutStr != "" {
			if opts.Layout, err = format.ParseLayout(layoutStr); err != nil {
				return expandRequest{}, err
			}
		}
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return expandRequest{}, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if jobs < 0 {
		return expandRequest{}, fmt.Errorf("--jobs must be >= 0")
	}
	opts.Jobs = jobs

	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return expandRequest{}, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	mode := uiModeOff
	if flags.Lookup("ui") != nil {
		uiStr, err := flags.GetString("ui")
		if err != nil {
			return expandRequest{}, fmt.Errorf("failed to get ui flag: %w", err)
		}
		if mode, err = readUIMode(uiStr); err != nil {
			return expandRequest{}, err
		}
	}

	return expandRequest{
		path:    path,
		opts:    opts,
		noCache: noCache,
		ui:      mode,
		quiet:   s.quiet,
	}, nil
}
