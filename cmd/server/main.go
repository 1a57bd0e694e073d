package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	router "github.com/dkeye/MeetChat/internal/adapters/http"
	"github.com/dkeye/MeetChat/internal/adapters/signal"
	"github.com/dkeye/MeetChat/internal/app"
	"github.com/dkeye/MeetChat/internal/app/orch"
	"github.com/dkeye/MeetChat/internal/auth"
	"github.com/dkeye/MeetChat/internal/config"
	"github.com/dkeye/MeetChat/internal/store"
)

func main() {
	ctx, cancel := ossignal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize zerolog global logger early so config.Load can use it.
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg)

	meetings, err := store.Open(cfg.Store)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("failed to open meeting store")
	}

	var jwtm *auth.JWTManager
	if cfg.Auth.JWTSecret != "" {
		jwtm = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	}

	lifecycle := app.NewLifecycle(meetings, cfg.Room.LifecycleTimeout)
	coordinator := orch.New(meetings, lifecycle, app.PolicyByName(cfg.Room.Backpressure), orch.Options{
		JoinTimeout:       cfg.Room.JoinTimeout,
		RequireMembership: cfg.Room.RequireMembership,
		MaxMessageLen:     cfg.Room.MaxMessageLen,
	})

	ws := signal.NewSignalWSController(coordinator, signal.SettingsFrom(cfg))
	r := router.SetupRouter(ctx, cfg, coordinator, meetings, jwtm, ws)
	addr := fmt.Sprintf(":%d", cfg.Port)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("MeetChat server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	// ctx is done, so every connection is closing; their disconnects may still end meetings
	ws.Wait()
	lifecycle.Wait()
	if err := meetings.Close(); err != nil {
		log.Error().Err(err).Msg("close meeting store")
	}
	log.Info().Msg("Server exited gracefully")
}

func setupLogger(cfg *config.Config) {
	if cfg.Mode != "debug" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, keeping info")
		return
	}
	zerolog.SetGlobalLevel(level)
}
