package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/offerdesk/database/seeders"
	"github.com/shashiranjanraj/offerdesk/pkg/app"
)

// withDB boots the database, runs fn and releases it.
func withDB(cmd *cobra.Command, fn func(ctx context.Context, a *app.Application) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := app.BootDB(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

// offerdesk migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(_ context.Context, a *app.Application) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
			return a.Migrate(cmd.OutOrStdout())
		})
	},
}

// offerdesk migrate:rollback
var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Rollback the last batch of migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(_ context.Context, a *app.Application) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
			return a.Migrator(cmd.OutOrStdout()).Rollback()
		})
	},
}

// offerdesk migrate:status
var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of each migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(_ context.Context, a *app.Application) error {
			return a.Migrator(cmd.OutOrStdout()).Status(cmd.OutOrStdout())
		})
	},
}

// offerdesk seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load users, orders and offers from the seed files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, a *app.Application) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
			return a.Seed(ctx, cmd.OutOrStdout())
		})
	},
}

// offerdesk seed:export
var seedExportCmd = &cobra.Command{
	Use:   "seed:export",
	Short: "Write the current tables back out as seed files",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, a *app.Application) error {
			src := a.SeedSource()
			if err := seeders.Export(ctx, a.DB, src); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported seed files to %s\n", src.Dir)
			return nil
		})
	},
}
