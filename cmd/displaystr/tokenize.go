package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"displaystr/internal/diagfmt"
	"displaystr/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.rs|-",
		Short: "Dump the tokens of a source file",
		Long:  `Tokenize prints the flat token list of a file, or its delimiter tree with --tree`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json)")
	cmd.Flags().Bool("tree", false, "fold delimiters into groups")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	tree, err := cmd.Flags().GetBool("tree")
	if err != nil {
		return fmt.Errorf("failed to get tree flag: %w", err)
	}
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(filePath, s.cfg.Diagnostics.Max, tree)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.Len() > 0 {
		errOut := cmd.ErrOrStderr()
		diagfmt.Pretty(errOut, result.Bag, result.FileSet, s.prettyOpts(errOut))
	}

	out := cmd.OutOrStdout()
	switch {
	case format == "json":
		return diagfmt.FormatTokensJSON(out, result.Tokens)
	case format == "pretty" && tree:
		return diagfmt.FormatTokenTree(out, result.Tokens, result.FileSet)
	case format == "pretty":
		return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
