package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cafemanagement/internal/cache"
	"cafemanagement/internal/config"
	"cafemanagement/internal/infra"
	"cafemanagement/internal/repository"
	"cafemanagement/internal/router"
	"cafemanagement/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Pretty console logs in development, JSON in production.
	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	db, err := infra.NewDatabase(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := infra.SeedIfEmpty(db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	files, err := infra.NewFileStore(cfg.UploadPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init file store")
	}
	mailer := infra.NewMailer(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis is optional: without it email jobs are delivered synchronously
	// instead of through the worker pool.
	var dispatcher *worker.Dispatcher
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		dispatcher = worker.NewDispatcher(rdb)
		handlers := &worker.Handlers{Email: worker.NewEmailWorker(mailer)}
		worker.StartWorkerPool(ctx, rdb, handlers, cfg.WorkerPoolSize)
	}

	// Reactive caches — primed once so early subscribers see real data.
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	caches := cache.NewCollections(userRepo, productRepo, orderRepo)
	if err := caches.RefreshUsers(ctx); err != nil {
		log.Warn().Err(err).Msg("initial users cache load failed")
	}
	if err := caches.RefreshProducts(ctx); err != nil {
		log.Warn().Err(err).Msg("initial products cache load failed")
	}
	if err := caches.RefreshOrders(ctx); err != nil {
		log.Warn().Err(err).Msg("initial orders cache load failed")
	}

	r := router.New(cfg, router.Deps{
		DB:         db,
		Redis:      rdb,
		Caches:     caches,
		Files:      files,
		Mailer:     mailer,
		Dispatcher: dispatcher,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("cafemanagement backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
