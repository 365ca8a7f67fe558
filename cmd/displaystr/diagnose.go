package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"displaystr/internal/diag"
	"displaystr/internal/diagfmt"
	"displaystr/internal/version"
)

func newDiagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] [file.rs|directory|-]",
		Short: "Report problems in #[display] enums without printing the expansion",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDiagnose,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|short|json|sarif)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directories (0=auto)")
	cmd.Flags().Bool("no-cache", false, "do not read or write the expansion cache")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in short and json output")
	cmd.Flags().Bool("suggest", false, "include fix suggestions in json output")
	cmd.Flags().Bool("preview", false, "include fix previews in pretty and json output")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	return cmd
}

// runDiagnose expands the input, prints only diagnostics in the chosen
// format and fails when any of them is an error.
func runDiagnose(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "short", "json", "sarif":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	suggest, err := cmd.Flags().GetBool("suggest")
	if err != nil {
		return fmt.Errorf("failed to get suggest flag: %w", err)
	}
	preview, err := cmd.Flags().GetBool("preview")
	if err != nil {
		return fmt.Errorf("failed to get preview flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	req, err := expandRequestFromFlags(cmd, s, path)
	if err != nil {
		return err
	}
	outcome, err := runExpansion(cmd, req)
	if err != nil {
		return err
	}

	bag := outcome.mergedBag(s.cfg.Diagnostics.Max)
	pathMode := diagfmt.PathModeRelative
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	out := cmd.OutOrStdout()

	switch format {
	case "pretty":
		opts := s.prettyOpts(out)
		opts.PathMode = pathMode
		opts.ShowPreview = preview
		diagfmt.Pretty(out, bag, outcome.fs, opts)
	case "short":
		if text := diag.FormatGoldenDiagnostics(bag.Items(), outcome.fs, withNotes); text != "" {
			fmt.Fprintln(out, text)
		}
	case "json":
		err = diagfmt.JSON(out, bag, outcome.fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
			IncludeFixes:     suggest,
			IncludePreviews:  preview,
		})
	case "sarif":
		err = diagfmt.Sarif(out, bag, outcome.fs, diagfmt.SarifRunMeta{
			ToolName:       "displaystr",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args,
		})
	}
	if err != nil {
		return err
	}

	printTimings(cmd.ErrOrStderr(), s.timer)
	if bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
