package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nodectl",
	Short: "Admin CLI for a powchain node",
}

// Execute runs the CLI, returning any error cobra reports.
func Execute() error {
	return rootCmd.Execute()
}
