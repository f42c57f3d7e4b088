package contracts

import "math"

// IndicatorSet holds the derived series for one symbol. Every slice has the
// same length as the price series it was computed from. Oscillator entries
// before the warm-up period completes are NaN.
// SSOT: indicator engine -> chart composer derived data
//
// No JSON tags: NaN does not survive encoding/json, and these values are
// recomputed from bars rather than cached.
type IndicatorSet struct {
	MAFast     []float64 // trailing mean, short window
	MASlow     []float64 // trailing mean, long window
	Oscillator []float64 // bounded momentum, [0,100] or NaN
}

// Len returns the series length
func (s *IndicatorSet) Len() int {
	return len(s.Oscillator)
}

// OscillatorDefined reports whether the oscillator has a value at index i.
func (s *IndicatorSet) OscillatorDefined(i int) bool {
	return i >= 0 && i < len(s.Oscillator) && !math.IsNaN(s.Oscillator[i])
}

// LatestOscillator returns the most recent oscillator value, if defined.
func (s *IndicatorSet) LatestOscillator() (float64, bool) {
	n := len(s.Oscillator)
	if n == 0 {
		return 0, false
	}
	v := s.Oscillator[n-1]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
