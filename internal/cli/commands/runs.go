package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/danieldeleo/professional-services-data-validator/internal/state"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List persisted validation runs",
		Long:  `List the most recent validation runs from the run history database.`,
		Example: `  datavalidation runs --state runs.db
  datavalidation runs --state runs.db --last 5`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRuns(cmd, last)
		},
	}

	cmd.Flags().IntVar(&last, "last", 20, "Number of runs to show")
	return cmd
}

func runRuns(cmd *cobra.Command, last int) error {
	g := rootFlags(cmd)
	if g.StatePath == "" {
		return fmt.Errorf("run history database is required (use --state)")
	}
	logger := newLogger(cmd, g.Verbose)

	store := state.NewStore(logger)
	if err := store.Open(g.StatePath); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runs, err := store.ListRuns(ctx, last)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No validation runs recorded.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run ID", "Type", "Table", "Started", "Passed", "Failed", "Status"})
	for _, r := range runs {
		tableName := r.TableName
		if r.TargetTableName != "" && r.TargetTableName != r.TableName {
			tableName = fmt.Sprintf("%s -> %s", r.TableName, r.TargetTableName)
		}
		t.AppendRow(table.Row{
			r.ID, r.ValidationType, tableName,
			r.StartedAt.Format(time.RFC3339),
			r.Passed, r.Failed, r.Status,
		})
	}
	t.Render()
	return nil
}
