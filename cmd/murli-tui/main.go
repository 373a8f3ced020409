package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devagn611/Daily-Murli-Reader/internal/config"
	"github.com/devagn611/Daily-Murli-Reader/internal/domain"
	"github.com/devagn611/Daily-Murli-Reader/internal/sanitize"
	"github.com/devagn611/Daily-Murli-Reader/internal/service"
	"github.com/devagn611/Daily-Murli-Reader/internal/source/madhuban"
	"github.com/devagn611/Daily-Murli-Reader/internal/tui"
	"github.com/devagn611/Daily-Murli-Reader/internal/viewer"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to config file")
	date := flag.String("date", "", "murli date (YYYY-MM-DD), defaults to today")
	lang := flag.String("lang", "", "language code: gu, hi or en")
	logPath := flag.String("log", "murli-tui.log", "log file; the terminal belongs to the UI")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := setupLogger(cfg.LogLevel, logFile)

	language := domain.Language(cfg.Viewer.DefaultLanguage)
	if *lang != "" {
		language, err = domain.ParseLanguage(*lang)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -lang: %v\n", err)
			os.Exit(1)
		}
	}

	source := madhuban.New(madhuban.Config{
		BaseURL:      cfg.Source.BaseURL,
		Timeout:      cfg.Source.Timeout,
		UserAgent:    cfg.Source.UserAgent,
		MaxBodyBytes: cfg.Source.MaxBodyBytes,
	}, logger)

	loadService := service.NewLoadService(source, sanitize.New(), nil, nil, nil, nil, logger)

	v := viewer.New(loadService,
		viewer.WithLogger(logger),
		viewer.WithBaseURL(cfg.Source.BaseURL),
		viewer.WithLanguage(language),
	)
	defer v.Close()

	if *date != "" {
		d, err := domain.ParseDate(*date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -date: %v\n", err)
			os.Exit(1)
		}
		if err := v.SetDate(d); err != nil {
			fmt.Fprintf(os.Stderr, "invalid -date: %v\n", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := v.Start(ctx); err != nil {
		logger.Error("failed to start viewer", "error", err)
		os.Exit(1)
	}

	program := tea.NewProgram(tui.NewModel(v), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(level string, w io.Writer) *slog.Logger {
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
	handler := slog.NewJSONHandler(w, opts)
	return slog.New(handler)
}
