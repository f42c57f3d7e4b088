package logger_test

import (
	"errors"

	"github.com/wonny/chartbook/pkg/config"
	"github.com/wonny/chartbook/pkg/logger"
)

// Example_basic demonstrates basic logger usage
func Example_basic() {
	// Load config
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "info",
		LogFormat: "console",
	}

	// Create logger (SSOT)
	log := logger.New(cfg)

	// Basic logging
	log.Debug("This won't appear (level is info)")
	log.Info("Report run started")
	log.Warn("Empty history, skipping symbol")
	log.Error("Failed to fetch candidates")

	// Formatted logging
	log.Infof("Added %s page to %s", "AAPL", "report.pdf")
	log.Warnf("Retry attempt %d of %d", 3, 5)
}

// Example_withFields demonstrates structured logging with fields
func Example_withFields() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	// Add single field
	symLog := log.WithField("symbol", "AAPL")
	symLog.Info("History fetched")

	// Add multiple fields
	pageLog := log.WithFields(map[string]interface{}{
		"symbol": "NVDA",
		"sector": "Technology",
		"bars":   252,
		"page":   4,
	})
	pageLog.Info("Page rendered")
}

// Example_withError demonstrates error logging
func Example_withError() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "error",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	// Log with error
	err := errors.New("database connection timeout")
	log.WithError(err).Error("Failed to fetch candidates")

	// Combine error with fields
	log.WithError(err).
		WithFields(map[string]interface{}{
			"retry_count": 3,
			"timeout_ms":  5000,
		}).
		Error("Connection failed after retries")
}

// Example_environments demonstrates different log formats
func Example_environments() {
	// Development: Pretty console logs
	devCfg := &config.Config{
		Env:       "development",
		LogLevel:  "debug",
		LogFormat: "console",
	}
	devLog := logger.New(devCfg)
	devLog.Debug("Debugging screener query")
	devLog.Info("Candidates loaded")

	// Production: JSON logs
	prodCfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}
	prodLog := logger.New(prodCfg)
	prodLog.Info("Report run started")
	prodLog.Warn("Price history cache disabled")
}
