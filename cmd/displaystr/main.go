package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"displaystr/internal/version"
)

// errDiagnostics is returned when a run reported error diagnostics; the
// diagnostics themselves were already printed.
var errDiagnostics = errors.New("diagnostics reported")

// app holds per-invocation state shared by the commands.
type app struct {
	// closeTrace flushes the tracer; failed asks for a ring dump.
	closeTrace func(failed bool)
	// stopProfile finishes --cpu-profile/--mem-profile/--runtime-trace.
	stopProfile func() error
}

// newRootCmd builds the command tree. Tests build a fresh tree per run.
func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "displaystr",
		Short: "Expand #[display] enums into Display implementations",
		Long: `displaystr rewrites enums annotated with #[display], whose variants carry
string templates, into a plain enum plus an impl of ::core::fmt::Display`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			closeTrace, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			a.closeTrace = closeTrace
			stopProfile, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			a.stopProfile = stopProfile
			return nil
		},
	}

	// Добавляем команды
	rootCmd.AddCommand(newExpandCmd())
	rootCmd.AddCommand(newDiagCmd())
	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newCacheCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show (0 = unlimited)")
	flags.String("config", "", "path to displaystr.toml (default: search upwards from the working directory)")
	flags.String("trace", "", "write trace events to a file (- for stderr)")
	flags.String("trace-level", "phase", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to this file")

	return rootCmd
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	a := &app{}
	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(context.Background())
	if a.stopProfile != nil {
		if perr := a.stopProfile(); perr != nil {
			fmt.Fprintf(stderr, "warning: %v\n", perr)
		}
	}
	if a.closeTrace != nil {
		a.closeTrace(err != nil)
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// main runs the CLI; any error exits with status 1.
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
