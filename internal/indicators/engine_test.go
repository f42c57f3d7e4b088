package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/chartbook/internal/contracts"
	"github.com/wonny/chartbook/pkg/logger"
)

// seriesFromCloses builds a daily series where only the close matters.
func seriesFromCloses(symbol string, closes []float64) *contracts.PriceSeries {
	bars := make([]contracts.PriceBar, len(closes))
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = contracts.PriceBar{
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return &contracts.PriceSeries{Symbol: symbol, Bars: bars}
}

// ascending returns n closes increasing by one from 100.
func ascending(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 100.0 + float64(i)
	}
	return closes
}

func TestCompute_LengthsMatchInput(t *testing.T) {
	engine := NewEngine(logger.Nop())
	series := seriesFromCloses("AAPL", ascending(60))

	set := engine.Compute(series)

	require.Len(t, set.MAFast, 60)
	require.Len(t, set.MASlow, 60)
	require.Len(t, set.Oscillator, 60)
}

func TestCompute_EmptySeries(t *testing.T) {
	engine := NewEngine(logger.Nop())
	series := &contracts.PriceSeries{Symbol: "AAPL"}

	set := engine.Compute(series)

	assert.Len(t, set.MAFast, 0)
	assert.Len(t, set.MASlow, 0)
	assert.Len(t, set.Oscillator, 0)
}

func TestTrailingMean_FirstElement(t *testing.T) {
	closes := []float64{42.5, 43.0, 41.0}
	ma := trailingMean(closes, 50)

	assert.Equal(t, closes[0], ma[0], "first mean must equal first close")
}

func TestTrailingMean_ShrinkingWindow(t *testing.T) {
	// 20 closes of 100..119 against a 50-wide window: every prefix mean
	ma := trailingMean(ascending(20), 50)

	assert.InDelta(t, 100.0, ma[0], 1e-9)
	assert.InDelta(t, 100.5, ma[1], 1e-9)
	assert.InDelta(t, 109.5, ma[19], 1e-9, "mean of 100..119")
}

func TestTrailingMean_FullWindow(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5, 6}
	ma := trailingMean(closes, 3)

	want := []float64{1, 1.5, 2, 3, 4, 5}
	for i, w := range want {
		assert.InDelta(t, w, ma[i], 1e-9, "index %d", i)
	}
}

func TestOscillator_WarmUpIsNaN(t *testing.T) {
	osc := oscillator(ascending(40), 14)

	for i := 0; i < 14; i++ {
		assert.True(t, math.IsNaN(osc[i]), "index %d should be undefined", i)
	}
	for i := 14; i < 40; i++ {
		assert.False(t, math.IsNaN(osc[i]), "index %d should be defined", i)
	}
}

func TestOscillator_ShortSeriesAllNaN(t *testing.T) {
	// 14 bars yield only 13 deltas, one short of a full period
	osc := oscillator(ascending(14), 14)

	for i, v := range osc {
		assert.True(t, math.IsNaN(v), "index %d should be undefined", i)
	}
}

func TestOscillator_Bounds(t *testing.T) {
	closes := []float64{
		100, 103, 101, 105, 104, 108, 107, 111, 106, 112,
		115, 113, 118, 114, 120, 117, 123, 119, 125, 122,
	}
	osc := oscillator(closes, 14)

	for i, v := range osc {
		if math.IsNaN(v) {
			continue
		}
		assert.GreaterOrEqual(t, v, 0.0, "index %d", i)
		assert.LessOrEqual(t, v, 100.0, "index %d", i)
	}
}

func TestOscillator_SaturatesWithoutLosses(t *testing.T) {
	// Monotonically increasing closes: no losses in any window
	osc := oscillator(ascending(20), 14)

	assert.InDelta(t, 100.0, osc[19], 1e-9)
	for i := 14; i < 20; i++ {
		assert.InDelta(t, 100.0, osc[i], 1e-9, "index %d", i)
	}
}

func TestOscillator_FlatSeriesSaturates(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 50.0
	}

	// Zero gains and zero losses saturate rather than divide by zero
	osc := oscillator(closes, 14)
	assert.InDelta(t, 100.0, osc[19], 1e-9)
}

func TestOscillator_BalancedDeltas(t *testing.T) {
	// Alternating +1/-1 closes: average gain equals average loss, so the
	// oscillator sits at 50 once defined.
	closes := []float64{100, 101, 100, 101, 100, 101, 100}
	osc := oscillator(closes, 2)

	for i := 2; i < len(closes); i++ {
		assert.InDelta(t, 50.0, osc[i], 1e-9, "index %d", i)
	}
}

func TestOscillator_KnownDescent(t *testing.T) {
	// One loss inside an otherwise rising window pulls the value below 100.
	closes := append(ascending(15), 110.0) // last delta is -4
	osc := oscillator(closes, 14)

	last := osc[len(osc)-1]
	require.False(t, math.IsNaN(last))
	assert.Less(t, last, 100.0)
	assert.Greater(t, last, 0.0)

	// 13 gains of +1 and one loss of 4: rs = (13/14)/(4/14)
	rs := 13.0 / 4.0
	want := 100.0 - 100.0/(1.0+rs)
	assert.InDelta(t, want, last, 1e-9)
}

func TestWithWindows(t *testing.T) {
	engine := NewEngine(logger.Nop()).WithWindows(5, 10).WithOscillatorPeriod(3)

	assert.Equal(t, 5, engine.fastWindow)
	assert.Equal(t, 10, engine.slowWindow)
	assert.Equal(t, 3, engine.oscPeriod)

	// Non-positive overrides are ignored
	engine.WithWindows(0, -1).WithOscillatorPeriod(0)
	assert.Equal(t, 5, engine.fastWindow)
	assert.Equal(t, 10, engine.slowWindow)
	assert.Equal(t, 3, engine.oscPeriod)
}

func TestCompute_InputUnchanged(t *testing.T) {
	engine := NewEngine(logger.Nop())
	closes := ascending(30)
	series := seriesFromCloses("AAPL", closes)

	_ = engine.Compute(series)

	for i, b := range series.Bars {
		assert.Equal(t, closes[i], b.Close, "bar %d modified", i)
	}
}
