package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warungpos/internal/config"
	"warungpos/internal/infra"
	"warungpos/internal/repository"
	"warungpos/internal/router"
	"warungpos/internal/worker"

	"github.com/rs/zerolog"
)

// @title WarungPOS API
// @version 1.0
// @description Point-of-sale backend: products, purchasing, sales carts,
// @description pending transactions, reports and receipts.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg)

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	db, err := infra.NewDatabase(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("database setup failed")
	}
	log.Info().Str("path", cfg.DatabasePath).Msg("database ready")

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	log.Info().Msg("redis ready")

	mailer := infra.NewMailer(cfg)

	engine, _ := router.New(router.Deps{
		Cfg:    cfg,
		DB:     db,
		Redis:  rdb,
		Mailer: mailer,
		Log:    log,
	})

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	pool := worker.NewPool(
		rdb,
		cfg,
		repository.NewTransactionRepository(db),
		repository.NewProductRepository(db),
		repository.NewLogRepository(db),
		mailer,
		log,
	)
	pool.Start(workerCtx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	stopWorkers()
	pool.Wait()

	if err := rdb.Close(); err != nil {
		log.Error().Err(err).Msg("redis close failed")
	}
	log.Info().Msg("bye")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.Env == "production" {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()
}
