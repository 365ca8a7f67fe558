package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"displaystr/internal/prof"
)

// setupProfiling starts the profiles named by the persistent flags. The
// returned stop function is nil when nothing was requested.
func setupProfiling(cmd *cobra.Command) (func() error, error) {
	flags := cmd.Root().PersistentFlags()
	var paths prof.Paths
	var err error
	if paths.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if paths.Mem, err = flags.GetString("mem-profile"); err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if paths.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !paths.Enabled() {
		return nil, nil
	}
	session, err := prof.Start(paths)
	if err != nil {
		return nil, err
	}
	return session.Stop, nil
}
