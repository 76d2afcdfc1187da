// Package commands implements the data validation subcommands.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Globals holds the values of the root command's persistent flags.
type Globals struct {
	ConfigFile string
	Verbose    bool
	Output     string
	StatePath  string
}

// rootFlags reads the persistent flags shared by all subcommands.
func rootFlags(cmd *cobra.Command) Globals {
	f := cmd.Root().PersistentFlags()
	g := Globals{}
	g.ConfigFile, _ = f.GetString("config")
	g.Verbose, _ = f.GetBool("verbose")
	g.Output, _ = f.GetString("output")
	g.StatePath, _ = f.GetString("state")
	return g
}

// persistentFlags returns the flag set handed to the config loader so
// explicitly-set overrides win over the config file.
func persistentFlags(cmd *cobra.Command) *pflag.FlagSet {
	return cmd.Root().PersistentFlags()
}

// newLogger builds the command logger. Verbose mode enables debug output.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
