package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/devagn611/Daily-Murli-Reader/internal/config"
	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
	"github.com/devagn611/Daily-Murli-Reader/internal/metrics"
	"github.com/devagn611/Daily-Murli-Reader/internal/publisher"
	"github.com/devagn611/Daily-Murli-Reader/internal/sanitize"
	"github.com/devagn611/Daily-Murli-Reader/internal/scheduler"
	"github.com/devagn611/Daily-Murli-Reader/internal/service"
	"github.com/devagn611/Daily-Murli-Reader/internal/source/madhuban"
	"github.com/devagn611/Daily-Murli-Reader/internal/storage/postgres"
	"github.com/devagn611/Daily-Murli-Reader/internal/web"
)

const version = "1.0.0"

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)
	metrics.Init("murli-server", version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// The fetch log and event bus are optional. Left nil, the load
	// pipeline skips recording and publishing.
	var (
		events    service.FetchEventStore
		stats     service.SelectionStatsStore
		txManager service.TransactionManager
		pub       service.Publisher
		fetchLog  *postgres.FetchLog
	)

	if cfg.Database.Enabled {
		db, err := sqlx.Connect("postgres", cfg.Database.DSN())
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		logger.Info("connected to database")

		eventStore := postgres.NewFetchEventStore(db)
		statsStore := postgres.NewSelectionStatsStore(db)
		events = eventStore
		stats = statsStore
		txManager = postgres.NewTransactionManager(db)
		fetchLog = postgres.NewFetchLog(eventStore, statsStore)

		pruner := service.NewPruneService(eventStore, cfg.Retention.MaxAge, logger)
		sched := scheduler.NewScheduler(pruner, cfg.Retention.Interval, cfg.Retention.Timeout, logger)
		go func() {
			if err := sched.Start(ctx); err != nil && err != context.Canceled {
				logger.Error("scheduler error", "error", err)
			}
		}()
	}

	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			logger.Error("failed to connect to rabbitmq", "error", err)
			os.Exit(1)
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	source := madhuban.New(madhuban.Config{
		BaseURL:      cfg.Source.BaseURL,
		Timeout:      cfg.Source.Timeout,
		UserAgent:    cfg.Source.UserAgent,
		MaxBodyBytes: cfg.Source.MaxBodyBytes,
	}, logger)

	loadService := service.NewLoadService(
		source,
		sanitize.New(),
		events,
		stats,
		txManager,
		pub,
		logger,
	)

	app, err := web.New(web.Config{
		Version:         version,
		BaseURL:         cfg.Source.BaseURL,
		DefaultLanguage: domain.Language(cfg.Viewer.DefaultLanguage),
		RateLimit:       cfg.Server.RateLimit.Enabled,
		RPS:             cfg.Server.RateLimit.RPS,
		Burst:           cfg.Server.RateLimit.Burst,
	}, loadService, logger)
	if err != nil {
		logger.Error("failed to build web application", "error", err)
		os.Exit(1)
	}
	if fetchLog != nil {
		app.WithFetchLog(fetchLog)
	}

	logger.Info("starting murli server",
		"source", source.Name(),
		"database", cfg.Database.Enabled,
		"rabbitmq", cfg.RabbitMQ.Enabled,
	)

	err = app.Serve(ctx, web.ServerConfig{
		Port:            cfg.Server.Port,
		Environment:     cfg.Server.Environment,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
