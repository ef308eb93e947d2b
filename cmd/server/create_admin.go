package main

import (
	"fmt"

	"aerozone_backend/internal/repositories"
	"aerozone_backend/internal/services"
	"aerozone_backend/pkg/utils"

	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminPassword string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account (admins cannot self-register)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := openDatabase(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		// The token manager is unused for account creation.
		authService := services.NewAuthService(repositories.NewAuthRepository(db), db, utils.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL))
		user, err := authService.CreateAdmin(cmd.Context(), adminUsername, adminPassword)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created admin %q (id %d)\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "admin username")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password (min 8 characters)")
	createAdminCmd.MarkFlagRequired("username")
	createAdminCmd.MarkFlagRequired("password")
}
