package main

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"leave-backend/config"
	"leave-backend/internal/database"
	"leave-backend/internal/logger"
)

var password string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Database setup for the leave backend",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load .env manual karena ini script terpisah
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: File .env tidak ditemukan, menggunakan environment variables sistem.")
		}
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		_, err := config.ConnectDB(cfg.DatabaseDSN)
		return err
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Migrate and fill the database with demo people, a department and the settings row",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		l, err := logger.New(cfg.AppEnv)
		if err != nil {
			return err
		}
		defer func() { _ = l.Sync() }()

		db, err := config.ConnectDB(cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		return database.SeedAll(db, database.SeedOptions{Password: password, Mail: cfg.Mail}, l.Named("seeder"))
	},
}

func init() {
	seedCmd.Flags().StringVar(&password, "password", "secret123", "password of every seeded account")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
}
