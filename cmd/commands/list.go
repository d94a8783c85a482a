package commands

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available components",
		RunE: func(cmd *cobra.Command, args []string) error {
			writeList("Operations", []string{"mean", "sum", "max", "min", "gini", "multiply", "weighted_sum", "add_default", "subtract"})
			writeList("Weight maps", []string{"pop_weight", "ling_weight"})
			writeList("Default sets", []string{"all_lang"})
			writeList("Trends", []string{"increase", "all"})
			writeList("Formats", []string{"table", "json", "html", "markdown", "csv"})
			return nil
		},
	}
	return cmd
}

func writeList(title string, items []string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{title})
	for _, item := range items {
		table.Append([]string{item})
	}
	table.Render()
}
