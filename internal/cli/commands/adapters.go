package commands

import (
	"github.com/danieldeleo/professional-services-data-validator/pkg/adapter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewAdaptersCommand creates the adapters command.
func NewAdaptersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adapters",
		Short: "List registered database adapters",
		Run: func(cmd *cobra.Command, _ []string) {
			g := rootFlags(cmd)
			logger := newLogger(cmd, g.Verbose)

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Adapter", "Default Schema", "Identifier Quote"})

			for _, name := range adapter.ListAdapters() {
				factory, ok := adapter.Get(name)
				if !ok {
					continue
				}
				d := factory(logger).Dialect()
				schema := d.DefaultSchema
				if schema == "" {
					schema = "-"
				}
				t.AppendRow(table.Row{name, schema, string(d.IdentQuote)})
			}
			t.Render()
		},
	}
	return cmd
}
