package chart

import (
	"math"
	"time"
)

// axis maps data values onto a vertical span of the page. top is the device
// coordinate of max, bottom the device coordinate of min (PDF y grows down).
type axis struct {
	min, max    float64
	top, bottom float64
}

// newAxis builds a price axis padded by 5% on each side so bars never touch
// the panel frame. A degenerate range (all bars at one price) is widened
// around its value.
func newAxis(min, max, top, bottom float64) axis {
	if max < min {
		min, max = max, min
	}
	span := max - min
	if span == 0 {
		span = math.Max(math.Abs(max)*0.1, 1.0)
		min -= span / 2
		max += span / 2
	} else {
		pad := span * 0.05
		min -= pad
		max += pad
	}
	return axis{min: min, max: max, top: top, bottom: bottom}
}

// newFixedAxis builds an axis with no padding, for panels with a fixed
// data range such as the 0..100 oscillator.
func newFixedAxis(min, max, top, bottom float64) axis {
	return axis{min: min, max: max, top: top, bottom: bottom}
}

// y converts a data value to a device y coordinate.
func (a axis) y(v float64) float64 {
	frac := (v - a.min) / (a.max - a.min)
	return a.bottom - frac*(a.bottom-a.top)
}

// contains reports whether v falls inside the visible range.
func (a axis) contains(v float64) bool {
	return v >= a.min && v <= a.max
}

// xscale spreads n bars evenly across the horizontal plot span, centering
// each bar in its slot.
type xscale struct {
	left, right float64
	n           int
}

func (s xscale) slot() float64 {
	if s.n == 0 {
		return s.right - s.left
	}
	return (s.right - s.left) / float64(s.n)
}

// x returns the device x coordinate of bar i.
func (s xscale) x(i int) float64 {
	return s.left + (float64(i)+0.5)*s.slot()
}

// candleWidth sizes the candle body to 60% of its slot, clamped so a short
// history does not produce slabs and a long one keeps a visible body.
func (s xscale) candleWidth() float64 {
	w := s.slot() * 0.6
	if w > 4.0 {
		w = 4.0
	}
	if w < 0.2 {
		w = 0.2
	}
	return w
}

// niceTicks returns ascending tick values covering [min, max] at a step from
// the 1/2/5 ladder, aiming for roughly want intervals.
func niceTicks(min, max float64, want int) []float64 {
	if want < 1 {
		want = 1
	}
	span := max - min
	if span <= 0 {
		return []float64{min}
	}
	step := niceStep(span / float64(want))
	first := math.Ceil(min/step) * step
	var ticks []float64
	for v := first; v <= max+step*1e-9; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}

// niceStep rounds raw up to the nearest 1, 2 or 5 times a power of ten.
func niceStep(raw float64) float64 {
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	norm := raw / mag
	switch {
	case norm <= 1:
		return mag
	case norm <= 2:
		return 2 * mag
	case norm <= 5:
		return 5 * mag
	}
	return 10 * mag
}

// tickPrecision picks how many decimals a tick label needs for a given step.
func tickPrecision(step float64) int {
	switch {
	case step >= 1:
		return 0
	case step >= 0.1:
		return 1
	}
	return 2
}

// monthTicks returns the indices of bars that open a new calendar month,
// plus index 0 so short histories still get at least one date label.
func monthTicks(times []time.Time) []int {
	var ticks []int
	for i, t := range times {
		if i == 0 || t.Month() != times[i-1].Month() || t.Year() != times[i-1].Year() {
			ticks = append(ticks, i)
		}
	}
	return ticks
}

// thinTicks drops every n-th tick until at most limit remain, keeping the
// first. Long histories would otherwise overlap their rotated labels.
func thinTicks(ticks []int, limit int) []int {
	if limit < 1 || len(ticks) <= limit {
		return ticks
	}
	stride := (len(ticks) + limit - 1) / limit
	var out []int
	for i := 0; i < len(ticks); i += stride {
		out = append(out, ticks[i])
	}
	return out
}
