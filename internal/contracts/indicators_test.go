package contracts

import (
	"math"
	"testing"
)

func TestIndicatorSet_OscillatorDefined(t *testing.T) {
	nan := math.NaN()
	s := IndicatorSet{
		Oscillator: []float64{nan, nan, 55.2, 61.0},
	}

	tests := []struct {
		index int
		want  bool
	}{
		{-1, false},
		{0, false},
		{1, false},
		{2, true},
		{3, true},
		{4, false},
	}

	for _, tt := range tests {
		if got := s.OscillatorDefined(tt.index); got != tt.want {
			t.Errorf("OscillatorDefined(%d) = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestIndicatorSet_LatestOscillator(t *testing.T) {
	defined := IndicatorSet{Oscillator: []float64{math.NaN(), 48.7}}
	v, ok := defined.LatestOscillator()
	if !ok || v != 48.7 {
		t.Errorf("LatestOscillator() = (%v, %v), want (48.7, true)", v, ok)
	}

	// Short series never completes the warm-up, every entry stays NaN
	undefined := IndicatorSet{Oscillator: []float64{math.NaN(), math.NaN()}}
	if _, ok := undefined.LatestOscillator(); ok {
		t.Error("LatestOscillator() on all-NaN series should report ok=false")
	}

	empty := IndicatorSet{}
	if _, ok := empty.LatestOscillator(); ok {
		t.Error("LatestOscillator() on empty series should report ok=false")
	}
}
