package main

import (
	"context"
	"fmt"

	"github.com/SundayYogurt/pim_service/config"
	"github.com/SundayYogurt/pim_service/internal/audit"
	"github.com/SundayYogurt/pim_service/internal/database"
	"github.com/SundayYogurt/pim_service/internal/domain"
	"github.com/SundayYogurt/pim_service/internal/dto"
	"github.com/SundayYogurt/pim_service/internal/helper"
	"github.com/SundayYogurt/pim_service/internal/logger"
	"github.com/SundayYogurt/pim_service/internal/repository"
	"github.com/SundayYogurt/pim_service/internal/services"
	"github.com/spf13/cobra"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE:  runUserCreate,
}

var (
	userEmail    string
	userPassword string
	userName     string
	userRole     string
)

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)

	userCreateCmd.Flags().StringVarP(&userEmail, "email", "e", "", "User email (required)")
	userCreateCmd.Flags().StringVarP(&userPassword, "password", "p", "", "User password (required)")
	userCreateCmd.Flags().StringVarP(&userName, "name", "n", "", "Display name")
	userCreateCmd.Flags().StringVarP(&userRole, "role", "r", domain.RoleEditor, "ADMIN or EDITOR")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()
	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	// Inline recorder: the process exits right after, nothing may stay queued.
	recorder := audit.NewRecorder(repository.NewAuditRepository(db), nil, log, audit.Options{})
	svc := services.NewUserService(repository.NewUserRepository(db), helper.SetupAuth(cfg.AccessSecret), recorder, log)

	user, err := svc.Create(context.Background(), 0, dto.UserCreateRequest{
		Email:    userEmail,
		Password: userPassword,
		Name:     userName,
		Role:     userRole,
	})
	if err != nil {
		_, msg := services.StatusOf(err)
		return fmt.Errorf("create user: %s", msg)
	}

	fmt.Printf("User %s created (id %d, role %s)\n", user.Email, user.ID, user.Role)
	return nil
}
