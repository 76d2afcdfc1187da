package commands

import (
	"fmt"

	"github.com/danieldeleo/professional-services-data-validator/internal/config"
	"github.com/danieldeleo/professional-services-data-validator/internal/validation"
	"github.com/danieldeleo/professional-services-data-validator/pkg/adapter"
	"github.com/spf13/cobra"
)

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Print the compiled source and target SQL without executing",
		Long: `Compile the validation config into the source and target queries and print
the SQL for each dialect. No database connection is made.`,
		Example: `  datavalidation render --config validation.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRender(cmd)
		},
	}
	return cmd
}

func runRender(cmd *cobra.Command) error {
	g := rootFlags(cmd)
	logger := newLogger(cmd, g.Verbose)

	cfg, err := config.Load(g.ConfigFile, persistentFlags(cmd))
	if err != nil {
		return err
	}

	// Adapters are constructed but never connected; only the dialect is used.
	source, err := adapter.NewAdapter(cfg.Source, logger)
	if err != nil {
		return fmt.Errorf("source: %w", err)
	}
	target, err := adapter.NewAdapter(cfg.Target, logger)
	if err != nil {
		return fmt.Errorf("target: %w", err)
	}

	builder, err := validation.NewBuilder(cfg, validation.WithLogger(logger))
	if err != nil {
		return err
	}

	sourceQuery, err := builder.SourceQuery(source)
	if err != nil {
		return err
	}
	targetQuery, err := builder.TargetQuery(target)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "-- source (%s)\n%s\n\n", sourceQuery.Dialect, sourceQuery.SQL)
	fmt.Fprintf(out, "-- target (%s)\n%s\n", targetQuery.Dialect, targetQuery.SQL)
	return nil
}
