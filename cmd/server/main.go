package main

import (
	"context"
	"fmt"
	"os"

	"aerozone_backend/internal/config"
	"aerozone_backend/internal/database"
	"aerozone_backend/pkg/utils"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "aerozone",
	Short:         "AEROZONE store backend: stock ledger, point of sale and reports",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "optional .env file to load (default .env)")
	rootCmd.AddCommand(serveCmd, migrateCmd, createAdminCmd)
}

// loadConfig loads the configuration and initializes the logger.
func loadConfig() (*config.Config, error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

// openDatabase connects and applies the embedded schema.
func openDatabase(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.ApplySchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	utils.LogInfo("Database initialized", map[string]interface{}{"driver": cfg.Database.Driver})
	return db, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		utils.LogError(err, "Command failed")
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
