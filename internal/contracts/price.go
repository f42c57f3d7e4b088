package contracts

import "time"

// PriceBar represents one daily OHLCV bar.
type PriceBar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// Up reports whether the bar closed at or above its open.
func (b *PriceBar) Up() bool {
	return b.Close >= b.Open
}

// PriceSeries represents one symbol's daily history in ascending time order.
// SSOT: history source -> indicator engine -> chart composer price data
type PriceSeries struct {
	Symbol string     `json:"symbol"`
	Bars   []PriceBar `json:"bars"`
}

// Len returns the number of bars
func (s *PriceSeries) Len() int {
	return len(s.Bars)
}

// Empty reports whether the series has no bars
func (s *PriceSeries) Empty() bool {
	return len(s.Bars) == 0
}

// Closes returns the close column
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Times returns the time column
func (s *PriceSeries) Times() []time.Time {
	times := make([]time.Time, len(s.Bars))
	for i, b := range s.Bars {
		times[i] = b.Time
	}
	return times
}

// Last returns the most recent bar
func (s *PriceSeries) Last() (PriceBar, bool) {
	if len(s.Bars) == 0 {
		return PriceBar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// PriceRange returns the lowest low and highest high across all bars.
func (s *PriceSeries) PriceRange() (lo, hi float64, ok bool) {
	if len(s.Bars) == 0 {
		return 0, 0, false
	}
	lo, hi = s.Bars[0].Low, s.Bars[0].High
	for _, b := range s.Bars[1:] {
		if b.Low < lo {
			lo = b.Low
		}
		if b.High > hi {
			hi = b.High
		}
	}
	return lo, hi, true
}
