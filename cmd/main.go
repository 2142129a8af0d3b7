package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"newsbrief/internal/config"
	"newsbrief/internal/extractor"
	"newsbrief/internal/llm"
	"newsbrief/internal/pipeline"
	"newsbrief/internal/server"
	"newsbrief/internal/summarizer"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMB  = 100
	logFileMaxBackups = 5
	logFileMaxAgeDays = 30
)

func main() {
	bootLog := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		bootLog.WarnContext(ctx, "Failed to load .env file",
			"error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		bootLog.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return
	}

	log, closeLog := initLogger(&cfg)
	defer closeLog()
	slog.SetDefault(log)

	if !cfg.HasOpenAICredentials() {
		log.WarnContext(ctx, "OPENAI_API_KEY is missing so every summary request will fail",
			"envVar", "OPENAI_API_KEY")
	}

	client := llm.NewClient(&cfg)

	transcriber := extractor.NewOpenAITranscriber(client, cfg.VisionModel, log)
	ext := extractor.New(transcriber, cfg.MaxImageDimension, log)
	sum := summarizer.NewOpenAISummarizer(client, cfg.SummaryModel, log)

	p := pipeline.New(&cfg, ext, sum, log)
	log.InfoContext(ctx, "Pipeline is initialized",
		"summaryModel", cfg.SummaryModel,
		"visionModel", cfg.VisionModel,
		"maxRetries", cfg.OpenAIMaxRetries,
		"requestTimeout", cfg.OpenAIRequestTimeout.String())

	srv := server.New(&cfg, p, log)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start(ctx)
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
	case err = <-serveErr:
		if err != nil {
			log.ErrorContext(ctx, "HTTP server stopped unexpectedly",
				"error", err,
				"addr", cfg.ListenAddr)
		}
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(shutdownCtx, "Failed to shut down HTTP server",
			"error", err,
			"shutdownTimeout", cfg.ShutdownTimeout.String())
	}

	log.InfoContext(shutdownCtx, "Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())
}

func initLogger(cfg *config.Config) (*slog.Logger, func()) {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}

	if cfg.LogFile == "" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts)), func() {}
	}

	file := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    logFileMaxSizeMB,
		MaxBackups: logFileMaxBackups,
		MaxAge:     logFileMaxAgeDays,
		Compress:   true,
	}

	log := slog.New(slog.NewJSONHandler(io.MultiWriter(os.Stdout, file), opts))

	return log, func() {
		_ = file.Close()
	}
}
