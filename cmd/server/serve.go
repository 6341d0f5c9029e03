package main

import (
	"context"
	"errors"
	"net/http"

	natsgo "github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"internship-service/internal/application/services"
	"internship-service/internal/application/session"
	"internship-service/internal/config"
	"internship-service/internal/delivery/handler"
	natsdelivery "internship-service/internal/delivery/nats"
	"internship-service/internal/events"
	"internship-service/internal/infrastructure"
	"internship-service/internal/infrastructure/db/mongodb"
	"internship-service/internal/messaging"
)

func newServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.HTTP.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "HTTP server port (or set PORT)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	log.Info().
		Str("version", version).
		Str("port", cfg.HTTP.Port).
		Str("database", cfg.Mongo.Database).
		Msg("Starting internship-service")

	client := mongodb.NewClient(cfg.MongoConfig())
	defer client.Close(context.Background())
	if err := client.EnsureIndexes(ctx); err != nil {
		return err
	}

	redisService := infrastructure.NewRedisService(ctx, cfg.RedisConfig())
	defer redisService.Close()

	jwtService := infrastructure.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL, redisService)

	loginLimiter := infrastructure.NewRateLimiter(cfg.RateLimit.Window, cfg.RateLimit.Max)
	defer loginLimiter.Stop()
	submitLimiter := infrastructure.NewRateLimiter(cfg.RateLimit.Window, cfg.RateLimit.Max)
	defer submitLimiter.Stop()

	var publisher events.Publisher = events.NopPublisher{}
	var nc *natsgo.Conn
	if cfg.NATS.URL != "" {
		conn, err := messaging.Connect(messaging.Config{URL: cfg.NATS.URL})
		if err != nil {
			log.Warn().Err(err).Msg("NATS unavailable, domain events disabled")
		} else {
			nc = conn
			defer messaging.Close(nc)
			publisher = messaging.NewPublisher(nc)

			notifier := infrastructure.NewNotificationService(cfg.Email.APIKey, cfg.Email.Sender)
			if notifier.Enabled() {
				subscriber, err := natsdelivery.NewHandler(nc, notifier)
				if err != nil {
					return err
				}
				defer subscriber.Unsubscribe()
			}
		}
	}

	userRepo := mongodb.NewUserRepo(client)
	internshipRepo := mongodb.NewInternshipRepo(client)
	applicationRepo := mongodb.NewApplicationRepo(client)
	guard := session.NewGuard(nil)

	userService := services.NewUserService(userRepo, internshipRepo, guard, jwtService, loginLimiter)
	internshipService := services.NewInternshipService(internshipRepo, applicationRepo, userRepo, client, guard, publisher)
	applicationService := services.NewApplicationService(applicationRepo, internshipRepo, userRepo, guard, publisher)

	checks := map[string]handler.HealthCheck{
		"mongo": client.Ping,
	}
	if nc != nil {
		checks["nats"] = func(context.Context) error {
			if status := messaging.Status(nc); status != "connected" {
				return errors.New(status)
			}
			return nil
		}
	}

	h := handler.NewHandler(userService, internshipService, applicationService, submitLimiter, checks)
	e := handler.NewServer(h, jwtService, handler.Options{
		GlobalRPS:   cfg.HTTP.GlobalRPS,
		GlobalBurst: cfg.HTTP.GlobalBurst,
	})

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ":"+cfg.HTTP.Port).Msg("HTTP server listening")
		if err := e.Start(":" + cfg.HTTP.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		log.Info().Msg("Shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownGrace)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
