package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/danieldeleo/professional-services-data-validator/internal/config"
	"github.com/danieldeleo/professional-services-data-validator/internal/report"
	"github.com/danieldeleo/professional-services-data-validator/internal/state"
	"github.com/danieldeleo/professional-services-data-validator/internal/validation"
	"github.com/danieldeleo/professional-services-data-validator/pkg/adapter"
	"github.com/spf13/cobra"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Run a validation and compare source against target",
		Long: `Build the source and target queries from the validation config, execute
them against both databases, and compare the results field by field.

The command exits non-zero when any comparison fails.`,
		Example: `  # Run a validation
  datavalidation validate --config validation.yaml

  # Override the table and keep run history
  datavalidation validate -c validation.yaml --table-name orders_2024 --state runs.db

  # Emit machine-readable results
  datavalidation validate -c validation.yaml -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd)
		},
	}
	return cmd
}

func runValidate(cmd *cobra.Command) error {
	g := rootFlags(cmd)
	logger := newLogger(cmd, g.Verbose)

	cfg, err := config.Load(g.ConfigFile, persistentFlags(cmd))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	source, err := connectAdapter(ctx, cfg.Source, logger)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	defer func() { _ = source.Close() }()

	target, err := connectAdapter(ctx, cfg.Target, logger)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}
	defer func() { _ = target.Close() }()

	builder, err := validation.NewBuilder(cfg,
		validation.WithLogger(logger),
		validation.WithVerbose(g.Verbose))
	if err != nil {
		return err
	}

	rep, err := builder.Execute(ctx, source, target)
	if err != nil {
		return err
	}

	if err := report.Render(cmd.OutOrStdout(), rep, g.Output); err != nil {
		return err
	}

	if g.StatePath != "" {
		if err := saveRun(ctx, g.StatePath, cfg, rep, logger); err != nil {
			return err
		}
	}

	if !rep.Success() {
		return fmt.Errorf("validation failed: %d of %d comparisons failed",
			rep.Failed(), len(rep.Results))
	}
	return nil
}

func connectAdapter(ctx context.Context, cfg adapter.Config, logger *slog.Logger) (adapter.Adapter, error) {
	client, err := adapter.NewAdapter(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := client.Connect(ctx, cfg); err != nil {
		return nil, err
	}
	return client, nil
}

func saveRun(ctx context.Context, path string, cfg *config.ValidationConfig, rep *report.Report, logger *slog.Logger) error {
	store := state.NewStore(logger)
	if err := store.Open(path); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(); err != nil {
		return err
	}
	return store.SaveReport(ctx, cfg, rep)
}
