package indicators

import (
	"math"

	"github.com/wonny/chartbook/internal/contracts"
	"github.com/wonny/chartbook/pkg/logger"
)

// Default windows for daily bars.
const (
	DefaultFastWindow       = 50
	DefaultSlowWindow       = 200
	DefaultOscillatorPeriod = 14
)

// Engine computes derived series from daily closes.
// SSOT: indicator math lives only here.
type Engine struct {
	logger     *logger.Logger
	fastWindow int
	slowWindow int
	oscPeriod  int
}

// NewEngine creates an engine with the default windows
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{
		logger:     log,
		fastWindow: DefaultFastWindow,
		slowWindow: DefaultSlowWindow,
		oscPeriod:  DefaultOscillatorPeriod,
	}
}

// WithWindows overrides the moving average windows
func (e *Engine) WithWindows(fast, slow int) *Engine {
	if fast > 0 {
		e.fastWindow = fast
	}
	if slow > 0 {
		e.slowWindow = slow
	}
	return e
}

// WithOscillatorPeriod overrides the oscillator look-back period
func (e *Engine) WithOscillatorPeriod(period int) *Engine {
	if period > 0 {
		e.oscPeriod = period
	}
	return e
}

// Compute derives the moving averages and the oscillator for one series.
// Every output slice has the same length as the input bars. The input is
// never modified.
func (e *Engine) Compute(series *contracts.PriceSeries) *contracts.IndicatorSet {
	closes := series.Closes()

	set := &contracts.IndicatorSet{
		MAFast:     trailingMean(closes, e.fastWindow),
		MASlow:     trailingMean(closes, e.slowWindow),
		Oscillator: oscillator(closes, e.oscPeriod),
	}

	e.logger.WithFields(map[string]interface{}{
		"symbol":      series.Symbol,
		"bars":        len(closes),
		"fast_window": e.fastWindow,
		"slow_window": e.slowWindow,
		"osc_period":  e.oscPeriod,
	}).Debug("Computed indicator set")

	return set
}

// trailingMean computes the mean over the trailing window ending at each
// index. Near the start, where fewer than window values exist, the window
// shrinks instead of yielding a hole, so out[0] == values[0].
func trailingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}

		n := i + 1
		if n > window {
			n = window
		}
		out[i] = sum / float64(n)
	}

	return out
}

// oscillator computes a bounded momentum series over close-to-close deltas.
// Entries are NaN until a full period of deltas exists, so the first defined
// index is period. When the window holds no losses the value saturates to
// 100; that covers the all-flat window as well.
func oscillator(closes []float64, period int) []float64 {
	n := len(closes)
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	if n < period+1 {
		return out
	}

	var gainSum, lossSum float64

	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gainSum += delta
		} else {
			lossSum += -delta
		}

		// Drop the delta that left the window
		if i > period {
			old := closes[i-period] - closes[i-period-1]
			if old > 0 {
				gainSum -= old
			} else {
				lossSum -= -old
			}
		}

		if i < period {
			continue
		}

		avgGain := gainSum / float64(period)
		avgLoss := lossSum / float64(period)

		if avgLoss == 0 {
			out[i] = 100.0
			continue
		}

		rs := avgGain / avgLoss
		out[i] = 100.0 - 100.0/(1.0+rs)
	}

	return out
}
