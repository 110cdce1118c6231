package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/deppfellow/opl-checker/internal/checker"
	"github.com/deppfellow/opl-checker/internal/lib/utils"
	"github.com/deppfellow/opl-checker/internal/model"
	"github.com/deppfellow/opl-checker/internal/service"
)

func checkCmd() *cobra.Command {
	var meetPath, entriesPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a meet.csv and entries.csv pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := runCheck(cmd.Context(), cmd.OutOrStdout(), meetPath, entriesPath, asJSON)
			if err != nil {
				return err
			}
			if output.HasErrors() {
				return errProblemsFound
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&meetPath, "meet", "meet.csv", "path to meet.csv")
	cmd.Flags().StringVar(&entriesPath, "entries", "entries.csv", "path to entries.csv")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

// fileEngine reads each file only when the engine asks for it, so an
// unreadable entries.csv still yields the meet report.
type fileEngine struct {
	engine      *checker.Engine
	meetPath    string
	entriesPath string
}

func (f fileEngine) CheckMeet(ctx context.Context, _ string) (checker.MeetCheckResult, error) {
	text, err := os.ReadFile(f.meetPath)
	if err != nil {
		return checker.MeetCheckResult{}, err
	}
	return f.engine.CheckMeet(ctx, string(text))
}

func (f fileEngine) CheckEntries(ctx context.Context, _ string, meet checker.MeetOutcome) (checker.EntriesCheckResult, error) {
	text, err := os.ReadFile(f.entriesPath)
	if err != nil {
		return checker.EntriesCheckResult{}, err
	}
	return f.engine.CheckEntries(ctx, string(text), meet)
}

func runCheck(ctx context.Context, w io.Writer, meetPath, entriesPath string, asJSON bool) (model.CheckerOutput, error) {
	engine := fileEngine{
		engine:      checker.New(),
		meetPath:    meetPath,
		entriesPath: entriesPath,
	}

	output := service.NewCheckerService(engine, nil).Check(ctx, &model.CheckerInput{})

	if asJSON {
		return output, utils.WriteJSON(w, output)
	}
	return output, writeReport(w, meetPath, entriesPath, output)
}

func writeReport(w io.Writer, meetPath, entriesPath string, output model.CheckerOutput) error {
	if output.IOError != nil {
		if _, err := fmt.Fprintf(w, "I/O error: %s\n", *output.IOError); err != nil {
			return err
		}
	}

	sections := []struct {
		name     string
		messages []checker.Message
	}{
		{meetPath, output.MeetMessages},
		{entriesPath, output.EntriesMessages},
	}

	printed := false
	for _, section := range sections {
		if len(section.messages) == 0 {
			continue
		}
		printed = true

		if _, err := fmt.Fprintf(w, "%s:\n", section.name); err != nil {
			return err
		}
		for _, m := range section.messages {
			if _, err := fmt.Fprintf(w, "  %s\n", m); err != nil {
				return err
			}
		}
	}

	if !printed && output.IOError == nil {
		_, err := fmt.Fprintln(w, "No problems found.")
		return err
	}
	return nil
}
