package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"leadforge-worker/internal/broadcast"
	"leadforge-worker/internal/config"
	"leadforge-worker/internal/logging"
	"leadforge-worker/internal/persistence"
	"leadforge-worker/internal/processor"
	"leadforge-worker/internal/queue"
	"leadforge-worker/internal/scraper"
	"leadforge-worker/internal/worker"
)

func main() {
	queueName := "leads"
	if len(os.Args) > 1 {
		queueName = os.Args[1]
	}

	cfg, err := config.Load("configs/config.yaml", queueName)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := logging.InitializeLogging(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		log.Fatalf("failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("starting leadforge worker", map[string]interface{}{"queue": cfg.Queue.Name})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient, err := queue.Connect(ctx, cfg.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Error("failed to connect to redis", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer redisClient.Close()

	store, err := persistence.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer store.Close()

	scr := scraper.New(scraper.Config{
		UserAgent:      cfg.Scraper.UserAgent,
		RequestTimeout: cfg.Scraper.RequestTimeout,
		RateLimitRPM:   cfg.Scraper.RateLimit,
		ViewportWidth:  cfg.BrowserPool.ViewportWidth,
		ViewportHeight: cfg.BrowserPool.ViewportHeight,
	})
	defer func() {
		if err := scr.Close(); err != nil {
			logger.Warn("error closing scraper browser", map[string]interface{}{"error": err.Error()})
		}
	}()

	bc := broadcast.New(cfg.Backend.URL)
	q := queue.New(redisClient, cfg.Queue.Name)
	proc := processor.New(store, scr, bc)
	w := worker.New(q, proc)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Info("shutdown signal received, draining worker loop", nil)
		cancel()
	}()

	if err := w.Run(ctx); err != nil {
		logger.Error("worker loop exited with error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	logger.Info("worker loop exited cleanly", nil)
}
