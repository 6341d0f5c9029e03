package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"internship-service/internal/infrastructure/db/mongodb"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the MongoDB indexes the service relies on",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			log.Info().Str("database", cfg.Mongo.Database).Msg("Indexes ensured")
			return nil
		},
	}
}
