package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/wonny/chartbook/pkg/config"
	"github.com/wonny/chartbook/pkg/database"
)

func main() {
	fmt.Println("=== Chartbook Database Connection Test ===")

	// Load configuration
	fmt.Println("Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	if err := cfg.RequireDatabase(); err != nil {
		log.Fatalf("❌ %v", err)
	}
	fmt.Printf("✅ Config loaded (ENV: %s)\n", cfg.Env)
	fmt.Printf("   Database URL: %s\n\n", maskPassword(cfg.Database.URL))

	// Create database connection
	fmt.Println("Connecting to database...")
	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()
	fmt.Println("✅ Database connection established")

	// Check connection
	fmt.Println("Testing connection (Ping)...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Ping(ctx); err != nil {
		log.Fatalf("❌ Failed to ping database: %v", err)
	}
	fmt.Println("✅ Ping successful")

	// Probe the stocks table the screener reads
	fmt.Println("Checking stocks table...")
	var stockCount int
	if err := db.Pool.QueryRow(ctx, "SELECT COUNT(*) FROM stocks").Scan(&stockCount); err != nil {
		log.Fatalf("❌ Failed to query stocks table: %v", err)
	}
	fmt.Printf("✅ stocks table reachable (%d rows)\n\n", stockCount)

	// Pool statistics
	stats := db.Pool.Stat()
	fmt.Println("📊 Connection Pool Statistics:")
	fmt.Printf("   Max Connections: %d\n", stats.MaxConns())
	fmt.Printf("   Total Connections: %d\n", stats.TotalConns())
	fmt.Printf("   Acquired Connections: %d\n", stats.AcquiredConns())
	fmt.Printf("   Idle Connections: %d\n", stats.IdleConns())
	fmt.Printf("   Acquire Count: %d\n", stats.AcquireCount())
	fmt.Printf("   Acquire Duration: %v\n", stats.AcquireDuration())

	fmt.Println("\n✅ All tests passed!")
}

// maskPassword masks the password in the database URL for display
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
