// Package commands is the checker command line: the web server and a
// local checker for CSV files.
package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errProblemsFound makes the process exit non-zero without printing an
// error: the report already explains what is wrong.
var errProblemsFound = errors.New("problems found")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "checker",
		Short:         "Validate OpenPowerlifting meet submissions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(serveCmd(), checkCmd())
	return root
}

func Execute() error {
	err := newRootCmd().Execute()
	if err != nil && !errors.Is(err, errProblemsFound) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
