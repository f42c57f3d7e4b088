package config_test

import (
	"fmt"

	"github.com/wonny/chartbook/pkg/config"
)

// Example demonstrates how to use the config package
func Example() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}

	// Access configuration values
	fmt.Printf("Environment: %s\n", cfg.Env)
	fmt.Printf("Market data source: %s\n", cfg.MarketData.Source)
	fmt.Printf("Recommendation key: %s\n", cfg.Report.RecommendationKey)
	fmt.Printf("Min market cap: %.1f\n", cfg.Report.MinMarketCap)
}
