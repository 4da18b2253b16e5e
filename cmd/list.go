package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/factories/core/factory"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered factory types and their implementations",
	RunE:  listRegistry,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func listRegistry(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	entries, err := factory.Entries(newScope(cfg))
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintln(cmd.OutOrStdout(), e.FactoryType)
		for _, impl := range e.Implementations {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", impl)
		}
	}
	return nil
}
