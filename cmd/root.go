package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFile string

// rootCmd runs the HTTP server when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "restaurant",
	Short: "Restaurant ordering and reservation API",
	Long: `Backend for a single restaurant: menus and categories, checkout,
table reservations, reviews, campaigns, contact messages and newsletter
subscriptions.

Commands:
  serve             - run the HTTP API (default)
  migrate           - create or update the database schema
  create-superuser  - create a staff+superuser account`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file before .env")
}
