package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tablecreole/contact-api/internal/config"
	"github.com/tablecreole/contact-api/internal/httpserver"
	"github.com/tablecreole/contact-api/internal/logging"
	"github.com/tablecreole/contact-api/internal/notify"
	"github.com/tablecreole/contact-api/internal/pipeline"
	"github.com/tablecreole/contact-api/internal/ratelimit"
	"github.com/tablecreole/contact-api/internal/verify"
)

// main boots the service: env → config → collaborators → HTTP server.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Setup(false)
		logging.Fatal("invalid configuration", "error", err)
	}
	logging.Setup(cfg.Debug)

	if cfg.ChallengeSecret == "" {
		slog.Info("challenge verification disabled (no TURNSTILE_SECRET_KEY)")
	}

	limiter := ratelimit.New(ratelimit.DefaultMax, ratelimit.DefaultWindow)
	verifier := verify.New(cfg.ChallengeSecret)
	notifier := notify.NewResend(cfg.ResendAPIKey, cfg.ContactFrom, cfg.ContactTo)
	pipe := pipeline.New(verifier, notifier)

	router := httpserver.NewRouter(cfg, limiter, pipe)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatal("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
