package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/wonny/chartbook/internal/contracts"
	"github.com/wonny/chartbook/pkg/httputil"
)

// Compile-time check: the client is a usable history source.
var _ contracts.HistorySource = (*Client)(nil)

// chartResponse mirrors the v8 chart API envelope.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []chartQuote `json:"quote"`
	} `json:"indicators"`
}

// chartQuote columns are nullable: halted days come back as JSON null.
type chartQuote struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// FetchDaily fetches daily bars for one symbol from the start date to now.
// SSOT: Yahoo chart API calls happen only here.
func (c *Client) FetchDaily(ctx context.Context, symbol string, start time.Time) (*contracts.PriceSeries, error) {
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=history",
		c.baseURL, symbol, start.Unix(), time.Now().Unix())

	resp, err := c.httpClient.GetWithHeaders(ctx, fullURL, map[string]string{
		"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36",
	})
	if err != nil {
		return nil, &contracts.ProviderError{Symbol: symbol, Transient: true, Err: err}
	}
	defer resp.Body.Close()

	// Unknown and delisted symbols come back as 404 with an error envelope.
	if resp.StatusCode == http.StatusNotFound {
		return nil, &contracts.EmptyDataError{Symbol: symbol}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &contracts.ProviderError{
			Symbol:    symbol,
			Transient: httputil.IsRetryableError(resp.StatusCode),
			Err:       fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &contracts.ProviderError{Symbol: symbol, Transient: true, Err: fmt.Errorf("read response body failed: %w", err)}
	}

	series, err := c.parseChartResponse(symbol, body)
	if err != nil {
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"bars":   series.Len(),
	}).Debug("Fetched daily bars")
	return series, nil
}

// parseChartResponse converts the chart envelope into a price series.
func (c *Client) parseChartResponse(symbol string, body []byte) (*contracts.PriceSeries, error) {
	var decoded chartResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &contracts.ProviderError{Symbol: symbol, Transient: false, Err: fmt.Errorf("parse response failed: %w", err)}
	}

	if decoded.Chart.Error != nil {
		return nil, &contracts.ProviderError{
			Symbol:    symbol,
			Transient: false,
			Err:       fmt.Errorf("chart API error %s: %s", decoded.Chart.Error.Code, decoded.Chart.Error.Description),
		}
	}

	if len(decoded.Chart.Result) == 0 {
		return nil, &contracts.EmptyDataError{Symbol: symbol}
	}

	result := decoded.Chart.Result[0]
	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return nil, &contracts.EmptyDataError{Symbol: symbol}
	}

	quote := result.Indicators.Quote[0]
	bars := make([]contracts.PriceBar, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		// Skip bars with any null column (halted or partial days)
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			continue
		}
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}

		var volume int64
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			volume = *quote.Volume[i]
		}

		bars = append(bars, contracts.PriceBar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   *quote.Open[i],
			High:   *quote.High[i],
			Low:    *quote.Low[i],
			Close:  *quote.Close[i],
			Volume: volume,
		})
	}

	if len(bars) == 0 {
		return nil, &contracts.EmptyDataError{Symbol: symbol}
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Time.Before(bars[j].Time)
	})

	return &contracts.PriceSeries{Symbol: symbol, Bars: bars}, nil
}
