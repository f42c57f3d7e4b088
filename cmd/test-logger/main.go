package main

import (
	"errors"
	"fmt"

	"github.com/wonny/chartbook/pkg/config"
	"github.com/wonny/chartbook/pkg/logger"
)

func main() {
	fmt.Println("=== Chartbook Logger Test ===")

	// Test 1: JSON Format (Production)
	fmt.Println("1. JSON Format (Production)")
	fmt.Println("--------------------------------")
	testJSONFormat()
	fmt.Println()

	// Test 2: Console Format (Development)
	fmt.Println("2. Console Format (Development)")
	fmt.Println("--------------------------------")
	testConsoleFormat()
	fmt.Println()

	// Test 3: Structured Logging
	fmt.Println("3. Structured Logging with Fields")
	fmt.Println("--------------------------------")
	testStructuredLogging()
	fmt.Println()

	// Test 4: Error Logging
	fmt.Println("4. Error Logging")
	fmt.Println("--------------------------------")
	testErrorLogging()
	fmt.Println()

	fmt.Println("✅ All logger tests completed!")
}

func testJSONFormat() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)
	log.Info("Report run started")
	log.Warn("Empty history, skipping symbol")
	log.Error("Failed to fetch candidates")
}

func testConsoleFormat() {
	cfg := &config.Config{
		Env:       "development",
		LogLevel:  "debug",
		LogFormat: "console",
	}

	log := logger.New(cfg)
	log.Debug("History cache miss")
	log.Info("Candidate screen returned rows")
	log.Warn("Rate limit reached, waiting")
}

func testStructuredLogging() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "info",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	// Single field
	symbolLog := log.WithField("symbol", "AAPL")
	symbolLog.Info("History fetched")

	// Multiple fields
	pageLog := log.WithFields(map[string]interface{}{
		"symbol": "MSFT",
		"bars":   252,
		"page":   3,
		"status": "RENDERED",
	})
	pageLog.Info("Chart page composed")

	// Chained fields
	log.WithField("module", "report").
		WithField("source", "yahoo").
		Info("Report run started")
}

func testErrorLogging() {
	cfg := &config.Config{
		Env:       "production",
		LogLevel:  "error",
		LogFormat: "json",
	}

	log := logger.New(cfg)

	// Simple error
	err := errors.New("connection timeout")
	log.WithError(err).Error("Failed to fetch daily history")

	// Error with context
	log.WithError(err).
		WithFields(map[string]interface{}{
			"retry_count": 3,
			"timeout_ms":  5000,
			"symbol":      "NVDA",
		}).
		Error("Fetch failed after retries")
}
