package contracts

import "fmt"

// Candidate represents one screened equity row passed from the screener to
// the report assembler.
// SSOT: screener -> assembler candidate data
type Candidate struct {
	Symbol     string  `json:"symbol"`
	Sector     string  `json:"sector"`
	TargetLow  float64 `json:"target_low"`
	TargetMean float64 `json:"target_mean"`
	Analysts   float64 `json:"analysts"`
	RecMean    float64 `json:"rec_mean"`
	MarketCap  float64 `json:"market_cap"` // billions USD
	MTDChange  float64 `json:"mtd_change"` // percent
	YTDChange  float64 `json:"ytd_change"` // percent
}

// ScreenFilter narrows the candidate query.
// Zero Country means "United States".
type ScreenFilter struct {
	RecommendationKey string  `json:"recommendation_key"`
	MinMarketCap      float64 `json:"min_market_cap"`
	Country           string  `json:"country"`
}

// WithDefaults fills the blanks a caller left open.
func (f ScreenFilter) WithDefaults() ScreenFilter {
	if f.RecommendationKey == "" {
		f.RecommendationKey = "strong_buy"
	}
	if f.Country == "" {
		f.Country = "United States"
	}
	return f
}

// Validate checks the fields a chart page cannot be built without.
func (c *Candidate) Validate() error {
	if c.Symbol == "" {
		return &ValidationError{Field: "symbol", Reason: "must not be empty"}
	}
	return nil
}

// PageTitle builds the chart page headline for this candidate.
func (c *Candidate) PageTitle(recKey string) string {
	return fmt.Sprintf("%s - %s - (%s) - Anlsts: %.0f, Rec_Mean: %.2f, Market_Cap: %.1f, MTD: %.2f%%, YTD: %.2f%%",
		c.Symbol, c.Sector, recKey, c.Analysts, c.RecMean, c.MarketCap, c.MTDChange, c.YTDChange)
}

// HasTargets reports whether any analyst target line is drawable.
// Targets normalized to zero are treated as absent.
func (c *Candidate) HasTargets() bool {
	return c.TargetLow > 0 || c.TargetMean > 0
}
