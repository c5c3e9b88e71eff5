package main

import (
	"fmt"
	"time"

	"storefront/internal/app"
	"storefront/internal/seed"

	"github.com/spf13/cobra"
)

// migrateはwithEnvの中で済んでいる
func newMigrateCmd(withEnv runWithEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, e *env, _ *app.App) error {
			fmt.Fprintf(cmd.OutOrStdout(), "schema is up to date (%s)\n", e.cfg.DBDriver)
			return nil
		}),
	}
}

func newSeedCmd(withEnv runWithEnv) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert categories and demo stores from a YAML fixture file",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, e *env, a *app.App) error {
			f, err := loadFixtures(file)
			if err != nil {
				return err
			}
			rep, err := a.Seeder.Run(cmd.Context(), f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "categories: %d, subcategories: %d, stores: %d, products: %d\n",
				rep.Categories, rep.Subcategories, rep.Stores, rep.Products)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "fixture file (default: built-in categories)")
	return cmd
}

func loadFixtures(file string) (seed.Fixtures, error) {
	if file == "" {
		return seed.Default()
	}
	return seed.LoadFile(file)
}

func newCartsCmd(withEnv runWithEnv) *cobra.Command {
	carts := &cobra.Command{
		Use:   "carts",
		Short: "Cart maintenance",
	}

	var olderThan time.Duration
	reap := &cobra.Command{
		Use:   "reap",
		Short: "Delete guest carts that have not been touched for a while",
		Args:  cobra.NoArgs,
		RunE: withEnv(func(cmd *cobra.Command, _ *env, a *app.App) error {
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive")
			}
			n, err := a.Carts.ReapGuestCarts(cmd.Context(), olderThan)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d guest carts\n", n)
			return nil
		}),
	}
	reap.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "age of the last update")

	carts.AddCommand(reap)
	return carts
}
