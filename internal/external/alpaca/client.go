package alpaca

import (
	"context"
	"sort"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"github.com/wonny/chartbook/internal/contracts"
	"github.com/wonny/chartbook/pkg/logger"
)

// Compile-time check: the client is a usable history source.
var _ contracts.HistorySource = (*Client)(nil)

// barGetter is the slice of the marketdata client we depend on.
type barGetter interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

// Client handles communication with the Alpaca market data API.
// SSOT: Alpaca calls go through this client only.
type Client struct {
	md     barGetter
	logger *logger.Logger
	feed   marketdata.Feed
}

// NewClient creates a new Alpaca market data client.
// The free IEX feed covers daily bars for US equities.
func NewClient(apiKey, apiSecret string, log *logger.Logger) *Client {
	return &Client{
		md: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
		logger: log,
		feed:   marketdata.IEX,
	}
}

// FetchDaily fetches daily bars for one symbol from the start date to now.
func (c *Client) FetchDaily(ctx context.Context, symbol string, start time.Time) (*contracts.PriceSeries, error) {
	// The SDK client carries no context, so honor cancellation up front.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bars, err := c.md.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     start,
		End:       time.Now(),
		Feed:      c.feed,
	})
	if err != nil {
		return nil, &contracts.ProviderError{Symbol: symbol, Transient: true, Err: err}
	}

	if len(bars) == 0 {
		return nil, &contracts.EmptyDataError{Symbol: symbol}
	}

	out := make([]contracts.PriceBar, 0, len(bars))
	for _, b := range bars {
		out = append(out, contracts.PriceBar{
			Time:   b.Timestamp.UTC(),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: int64(b.Volume),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"bars":   len(out),
	}).Debug("Fetched daily bars")

	return &contracts.PriceSeries{Symbol: symbol, Bars: out}, nil
}
