package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "weddingplanner",
	Short: "Wedding planning API, reminder worker and admin tooling",
	Long: `weddingplanner serves the wedding planning HTTP API, runs the task reminder
worker, applies database migrations and bootstraps admin accounts.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd, workerCmd, migrateCmd, createAdminCmd)
}
