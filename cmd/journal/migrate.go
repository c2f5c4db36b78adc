package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pkordes/travel-journal/backend/internal/app"
	"github.com/pkordes/travel-journal/backend/internal/config"
	"github.com/pkordes/travel-journal/backend/internal/repo"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the Postgres schema migrations",
	Long: `Connect to DATABASE_URL and apply any pending migrations for the kv_slots
table used by STORE_BACKEND=postgres. Already-applied migrations are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required")
		}

		pool, err := app.OpenPool(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer pool.Close()

		results, err := repo.Migrate(cmd.Context(), pool)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
			return nil
		}
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "Applied %s (%s)\n", r.Source.Path, r.Duration)
		}
		return nil
	},
}
