package screener

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/chartbook/internal/contracts"
	"github.com/wonny/chartbook/pkg/config"
	"github.com/wonny/chartbook/pkg/database"
	"github.com/wonny/chartbook/pkg/logger"
)

func fptr(v float64) *float64 { return &v }
func sptr(v string) *string   { return &v }

func TestNormalizeRow(t *testing.T) {
	row := candidateRow{
		Symbol:     sptr("AAPL"),
		Sector:     sptr("Technology"),
		TargetLow:  fptr(165.5),
		TargetMean: fptr(195.0),
		Analysts:   fptr(38),
		RecMean:    fptr(1.8),
		MarketCap:  fptr(2890.4),
		MTDChange:  fptr(3.4),
		YTDChange:  fptr(12.1),
	}

	candidate, err := normalizeRow(row)
	require.NoError(t, err)

	assert.Equal(t, "AAPL", candidate.Symbol)
	assert.Equal(t, "Technology", candidate.Sector)
	assert.Equal(t, 165.5, candidate.TargetLow)
	assert.Equal(t, 2890.4, candidate.MarketCap)
}

func TestNormalizeRow_NullNumericsBecomeZero(t *testing.T) {
	row := candidateRow{
		Symbol:    sptr("NEWCO"),
		Sector:    nil,
		TargetLow: nil,
		Analysts:  nil,
		MarketCap: fptr(25.0),
	}

	candidate, err := normalizeRow(row)
	require.NoError(t, err)

	assert.Equal(t, "", candidate.Sector)
	assert.Equal(t, 0.0, candidate.TargetLow)
	assert.Equal(t, 0.0, candidate.TargetMean)
	assert.Equal(t, 0.0, candidate.Analysts)
	assert.Equal(t, 0.0, candidate.MTDChange)
	assert.False(t, candidate.HasTargets())
}

func TestNormalizeRow_MissingSymbolIsInvalid(t *testing.T) {
	tests := []struct {
		name string
		row  candidateRow
	}{
		{"nil symbol", candidateRow{Symbol: nil, MarketCap: fptr(30)}},
		{"empty symbol", candidateRow{Symbol: sptr(""), MarketCap: fptr(30)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := normalizeRow(tt.row)
			require.Error(t, err)
			assert.True(t, contracts.IsValidation(err))
		})
	}
}

func TestRepository_Fetch(t *testing.T) {
	// Needs a populated stocks table
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	db, err := database.New(cfg)
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db.Pool, logger.Nop())

	candidates, err := repo.Fetch(context.Background(), contracts.ScreenFilter{
		RecommendationKey: "strong_buy",
		MinMarketCap:      20.0,
	})
	require.NoError(t, err)

	// Symbols must come back sorted and valid
	for i, c := range candidates {
		assert.NotEmpty(t, c.Symbol)
		if i > 0 {
			assert.LessOrEqual(t, candidates[i-1].Symbol, c.Symbol)
		}
	}

	t.Logf("Fetched %d candidates", len(candidates))
}
