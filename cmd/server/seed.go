package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"internship-service/internal/application/services"
	"internship-service/internal/infrastructure/db/mongodb"
)

func newSeedAdminCommand() *cobra.Command {
	var (
		name     string
		email    string
		password string
	)

	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an admin account unless the email is already registered",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("ADMIN_PASSWORD")
			}
			if password == "" {
				return errors.New("--password flag or ADMIN_PASSWORD environment variable is required")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			client := mongodb.NewClient(cfg.MongoConfig())
			defer client.Close(context.Background())

			if err := client.EnsureIndexes(ctx); err != nil {
				return err
			}

			user, created, err := services.EnsureAdmin(ctx, mongodb.NewUserRepo(client), name, email, password)
			if err != nil {
				return err
			}
			if created {
				fmt.Printf("created admin %s (%s)\n", user.Email, user.Id)
			} else {
				fmt.Printf("%s already registered as %s, nothing to do\n", user.Email, user.Role)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Administrator", "Display name of the admin")
	cmd.Flags().StringVar(&email, "email", "admin@example.com", "Email of the admin")
	cmd.Flags().StringVar(&password, "password", "", "Password of the admin (or set ADMIN_PASSWORD)")
	return cmd
}
