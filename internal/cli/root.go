// Package cli provides the data validation command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/danieldeleo/professional-services-data-validator/internal/cli/commands"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "datavalidation",
		Short: "Data Validation - matched source/target query comparison",
		Long: `Data Validation builds matched aggregate queries for a source and a target
database from one declarative config, runs both, and compares the results.

Aggregates (count, sum, min, max, avg, bit_xor, bit_and, bit_or) and grouping
columns are declared once; the tool renders them in each database's dialect.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
Built with Go
`)

	// Global persistent flags. The name overrides (table-name, limit, ...)
	// are layered over the config file by the config loader.
	rootCmd.PersistentFlags().StringP("config", "c", "", "Validation config file (YAML)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table|json|csv)")
	rootCmd.PersistentFlags().String("state", "", "Path to the run history database (empty disables history)")
	rootCmd.PersistentFlags().String("type", "", "Validation type (Column|GroupedColumn)")
	rootCmd.PersistentFlags().String("table-name", "", "Source table name")
	rootCmd.PersistentFlags().String("schema-name", "", "Source schema name")
	rootCmd.PersistentFlags().String("target-table-name", "", "Target table name (defaults to the source table)")
	rootCmd.PersistentFlags().String("target-schema-name", "", "Target schema name (defaults to the source schema)")
	rootCmd.PersistentFlags().Int64("limit", 0, "Row limit applied to both queries")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json", "csv"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewRenderCommand())
	rootCmd.AddCommand(commands.NewAdaptersCommand())
	rootCmd.AddCommand(commands.NewRunsCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for datavalidation.

Bash:
  $ source <(datavalidation completion bash)

Zsh:
  $ datavalidation completion zsh > "${fpath[1]}/_datavalidation"

Fish:
  $ datavalidation completion fish | source

PowerShell:
  PS> datavalidation completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
