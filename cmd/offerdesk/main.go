package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "offerdesk",
	Short:         "offerdesk: users, orders and offers over HTTP",
	Long:          "offerdesk serves a JSON API over users, orders and offers. Run without a command to start the server.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateRollbackCmd)
	rootCmd.AddCommand(migrateStatusCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(seedExportCmd)

	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "", "bind host (overrides APP_HOST)")
	rootCmd.PersistentFlags().StringVar(&portFlag, "port", "", "bind port (overrides APP_PORT)")
}
