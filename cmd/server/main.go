package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cyklo2/autoresponder/internal/config"
	"github.com/cyklo2/autoresponder/internal/database"
	"github.com/cyklo2/autoresponder/internal/email"
	"github.com/cyklo2/autoresponder/internal/handler"
	"github.com/cyklo2/autoresponder/internal/logger"
	"github.com/cyklo2/autoresponder/internal/middleware"
	"github.com/cyklo2/autoresponder/internal/router"
	"github.com/cyklo2/autoresponder/internal/service"
)

func main() {
	// Load configuration; a missing API key or sender address stops the
	// process before any listener is opened
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Str("version", "0.1.0").Msg("starting Cyklo2 autoresponder")

	// Initialize the email provider
	sender, err := newSender(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize email provider")
	}
	log.Info().Str("provider", cfg.Email.Provider).Str("from", cfg.Email.FromEmail).Msg("email provider initialized")

	// Connect to Redis only when rate limiting needs it
	var rdb *database.Redis
	if cfg.Security.RateLimiting.Enabled {
		rdb, err = database.NewRedis(cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("connected to Redis")
	}

	// Initialize services
	confirmSvc := service.NewConfirmationService(sender, log)

	// Initialize handlers
	h := handler.New(log, cfg, confirmSvc)

	// Initialize middleware
	mw := middleware.New(rdb, log, cfg)

	// Set up router
	r := router.New(h, mw, cfg)

	// Create HTTP server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// newSender builds the provider selected in configuration.
func newSender(cfg *config.Config) (email.Sender, error) {
	switch cfg.Email.Provider {
	case "sendgrid":
		return email.NewSendGridSender(email.SendGridConfig{
			APIKey:        cfg.Email.SendGrid.APIKey,
			SenderAddress: cfg.Email.FromEmail,
			SenderName:    cfg.Email.SenderName,
		})
	case "gmail":
		if cfg.Email.Gmail.RefreshToken != "" {
			return email.NewGmailSenderWithToken(
				context.Background(),
				cfg.Email.Gmail.ClientID,
				cfg.Email.Gmail.ClientSecret,
				cfg.Email.Gmail.RefreshToken,
				cfg.Email.FromEmail,
				cfg.Email.SenderName,
			)
		}
		return email.NewGmailSender(context.Background(), email.GmailConfig{
			CredentialsJSON: cfg.Email.Gmail.CredentialsJSON,
			SenderAddress:   cfg.Email.FromEmail,
			SenderName:      cfg.Email.SenderName,
		})
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Email.Provider)
	}
}
