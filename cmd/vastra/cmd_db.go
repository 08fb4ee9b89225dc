package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/database/seeders"
	"github.com/shashiranjanraj/vastra/pkg/database"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// vastra db:indexes
var dbIndexesCmd = &cobra.Command{
	Use:   "db:indexes",
	Short: "Create the MongoDB indexes the application relies on",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		fmt.Println("Ensuring indexes…")
		return database.EnsureIndexes(ctx)
	},
}

// vastra db:seed
var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		fmt.Println("Running seeders…")
		return seeders.RunAll(ctx, database.DB())
	},
}
