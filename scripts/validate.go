package main

import (
	"flag"
	"log/slog"

	"parkify/internal/logger"
	"parkify/internal/validation"
)

func main() {
	var baseURL, date string
	flag.StringVar(&baseURL, "url", "http://localhost:8080", "Base URL for API validation")
	flag.StringVar(&date, "date", "", "Booking date to use, YYYY-MM-DD (default tomorrow)")
	flag.Parse()

	logger.Init("info", "text")

	validator := validation.NewSmokeValidator(baseURL)
	if date != "" {
		validator.WithDate(date)
	}
	if err := validator.ValidateAll(); err != nil {
		logger.Fatal("Validation failed", "error", err)
	}

	slog.Info("Validation passed", "url", baseURL)
}
