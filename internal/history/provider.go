package history

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/chartbook/internal/contracts"
	"github.com/wonny/chartbook/internal/external/alpaca"
	"github.com/wonny/chartbook/internal/external/yahoo"
	"github.com/wonny/chartbook/pkg/config"
	"github.com/wonny/chartbook/pkg/httputil"
	"github.com/wonny/chartbook/pkg/logger"
	"github.com/wonny/chartbook/pkg/redis"
)

// Compile-time check: the provider is itself a history source.
var _ contracts.HistorySource = (*Provider)(nil)

// Provider selects the configured market data source and layers the
// optional Redis cache over it. With the cache disabled every call goes
// straight to the source.
// SSOT: history source selection happens only here.
type Provider struct {
	source     contracts.HistorySource
	sourceName string
	cache      *redis.Cache
	ttl        time.Duration
	logger     *logger.Logger
}

// NewProvider builds the provider for the configured source.
func NewProvider(cfg *config.Config, httpClient *httputil.Client, cache *redis.Cache, log *logger.Logger) (*Provider, error) {
	var source contracts.HistorySource

	switch cfg.MarketData.Source {
	case "yahoo":
		source = yahoo.NewClient(httpClient, log).WithBaseURL(cfg.MarketData.YahooBaseURL)
	case "alpaca":
		source = alpaca.NewClient(cfg.MarketData.AlpacaAPIKey, cfg.MarketData.AlpacaAPISecret, log)
	default:
		return nil, fmt.Errorf("unknown market data source: %s", cfg.MarketData.Source)
	}

	return &Provider{
		source:     source,
		sourceName: cfg.MarketData.Source,
		cache:      cache,
		ttl:        cfg.Report.CacheTTL,
		logger:     log,
	}, nil
}

// FetchDaily returns one symbol's daily bars, from cache when possible.
// Empty histories are never cached: a symbol with no data today may have
// data tomorrow.
func (p *Provider) FetchDaily(ctx context.Context, symbol string, start time.Time) (*contracts.PriceSeries, error) {
	key := redis.HistoryKey(p.sourceName, symbol, start.Format("2006-01-02"))

	if p.cache != nil {
		var cached contracts.PriceSeries
		found, err := p.cache.Get(ctx, key, &cached)
		if err != nil {
			p.logger.WithError(err).WithField("symbol", symbol).Warn("History cache read failed")
		}
		if found && !cached.Empty() {
			p.logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"bars":   cached.Len(),
			}).Debug("History cache hit")
			return &cached, nil
		}
	}

	series, err := p.source.FetchDaily(ctx, symbol, start)
	if err != nil {
		return nil, err
	}

	if p.cache != nil && !series.Empty() {
		if err := p.cache.Set(ctx, key, series, p.ttl); err != nil {
			p.logger.WithError(err).WithField("symbol", symbol).Warn("History cache write failed")
		}
	}

	return series, nil
}

// SourceName returns the name of the active market data source
func (p *Provider) SourceName() string {
	return p.sourceName
}
