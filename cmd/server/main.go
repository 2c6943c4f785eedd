// @title BrokerBook API
// @version 1.0
// @description Deal and delivery ledger for commodity brokers.
// @BasePath /
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brokerbook/internal/config"
	"brokerbook/internal/infra"
	"brokerbook/internal/middleware"
	"brokerbook/internal/repository"
	"brokerbook/internal/router"
	"brokerbook/internal/service"
	"brokerbook/internal/store"
	"brokerbook/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.IsProduction() {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	kv, err := store.Open(store.Options{
		Driver:      cfg.StoreDriver,
		BadgerPath:  cfg.BadgerPath,
		DatabaseURL: cfg.DatabaseURL,
		RedisURL:    cfg.RedisURL,
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	st := store.New(kv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Background jobs are wired here (composition root) with the same store
	// the handlers use.
	var flushed <-chan struct{}
	var breaker *infra.CircuitBreaker
	if cached, ok := kv.(*store.Cached); ok {
		breaker = infra.NewCircuitBreaker(infra.DefaultCBConfig())
		flushed = worker.NewFlusher(cached, cfg.FlushInterval, breaker).Start(ctx)
	}

	dashboardSvc := service.NewDashboardService(repository.NewDealRepository(st))
	alerts, err := worker.NewAlertScheduler(cfg.AlertSchedule, dashboardSvc)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.AlertSchedule).Msg("invalid ALERT_SCHEDULE")
	}
	if to := cfg.AlertRecipients(); len(to) > 0 {
		alerts.MailTo(infra.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword), to)
	}
	alerts.Start()

	var limiter *middleware.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute)
		go limiter.RunPurge(ctx)
	}

	r := router.New(cfg, st, limiter, breaker)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Str("driver", cfg.StoreDriver).Msgf("BrokerBook listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	alerts.Stop()
	cancel()
	if flushed != nil {
		<-flushed
	}
	if err := st.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close store")
	}
	log.Info().Msg("server exited")
}
