package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parkify/internal/api"
	"parkify/internal/config"
	"parkify/internal/logger"
	"parkify/internal/telemetry"
	"parkify/internal/validation"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	// Проверяем, нужно ли запустить валидацию
	if len(os.Args) > 1 && os.Args[1] == "validate" {
		fs := flag.NewFlagSet("validate", flag.ExitOnError)
		baseURL := fs.String("url", "http://localhost:8080", "Base URL for API validation")
		_ = fs.Parse(os.Args[2:])

		if err := validation.RunValidation(*baseURL); err != nil {
			logger.Fatal("API validation failed", "error", err)
		}
		return
	}

	// Загружаем конфигурацию
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	shutdownTracing := telemetry.Setup("parkify-api", cfg.OTelEndpoint, cfg.OTelInsecure)

	// Создаем и настраиваем сервер
	server, err := api.NewServer(cfg)
	if err != nil {
		logger.Fatal("Failed to create server", "error", err)
	}

	if err := server.StartJobs(); err != nil {
		logger.Fatal("Failed to start background jobs", "error", err)
	}

	// Создаем HTTP сервер
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelhttp.NewHandler(server.GetRouter(), "parkify-api"),
		ReadTimeout:  cfg.RequestTimeout,
		WriteTimeout: cfg.RequestTimeout,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		slog.Info("Starting server", "port", cfg.Port, "storage", cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Ждем сигнал для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")

	// Graceful shutdown с таймаутом
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	// Закрываем соединения
	if err := server.Cleanup(); err != nil {
		slog.Error("Error during cleanup", "error", err)
	}

	if err := shutdownTracing(ctx); err != nil {
		slog.Error("Failed to flush traces", "error", err)
	}

	slog.Info("Server stopped")
}
