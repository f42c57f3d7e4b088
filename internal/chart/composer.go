package chart

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/wonny/chartbook/internal/contracts"
	"github.com/wonny/chartbook/pkg/logger"
)

// ErrNoPriceData marks a candidate whose history came back empty. Callers
// treat it as the skip cue, not a failure.
var ErrNoPriceData = errors.New("no price data to chart")

// Page geometry in millimeters on an A4 landscape sheet (297 x 210).
// The price panel takes three quarters of the plot height, the oscillator
// panel the rest, with the date labels below both.
const (
	plotLeft   = 18.0
	plotRight  = 289.0
	titleY     = 13.0
	plotTop    = 22.0
	plotBottom = 182.0
	panelGap   = 7.0
	priceShare = 0.75

	priceBottom = plotTop + (plotBottom-plotTop-panelGap)*priceShare
	oscTop      = priceBottom + panelGap

	maxDateTicks = 18
)

type rgb struct{ r, g, b int }

var (
	upColor         = rgb{0, 153, 51}
	downColor       = rgb{204, 0, 0}
	maFastColor     = rgb{0, 0, 255}
	maSlowColor     = rgb{255, 0, 0}
	oscColor        = rgb{128, 0, 128}
	targetLowColor  = rgb{255, 107, 107}
	targetMeanColor = rgb{78, 205, 196}
	gridColor       = rgb{215, 215, 215}
	frameColor      = rgb{70, 70, 70}
	bandColor       = rgb{128, 128, 128}
	statsFillColor  = rgb{245, 222, 179}
)

// PageSink hands out a fresh drawing surface per chart page.
type PageSink interface {
	AddPage() *fpdf.Fpdf
}

// Composer draws one two-panel analysis page per candidate: candlesticks
// with moving-average overlays and analyst target lines on top, the bounded
// momentum oscillator below, sharing a monthly date axis.
// SSOT: chart page rendering
type Composer struct {
	logger *logger.Logger
	recKey string
}

// NewComposer creates a chart composer.
func NewComposer(log *logger.Logger) *Composer {
	return &Composer{
		logger: log,
		recKey: "strong_buy",
	}
}

// WithRecommendationKey sets the screen key shown in each page title.
func (cp *Composer) WithRecommendationKey(key string) *Composer {
	if key != "" {
		cp.recKey = key
	}
	return cp
}

// Render adds one page to the sink and draws the candidate's chart on it.
// An empty series returns ErrNoPriceData before any page is added, so a
// skipped candidate never leaves a blank page behind.
func (cp *Composer) Render(sink PageSink, candidate contracts.Candidate, series *contracts.PriceSeries, ind *contracts.IndicatorSet) error {
	if series == nil || series.Empty() {
		return ErrNoPriceData
	}
	if ind == nil {
		return fmt.Errorf("no indicators for %s", series.Symbol)
	}
	if ind.Len() != series.Len() {
		return fmt.Errorf("indicator length %d does not match %d bars for %s", ind.Len(), series.Len(), series.Symbol)
	}

	pdf := sink.AddPage()

	lo, hi, _ := series.PriceRange()
	price := newAxis(lo, hi, plotTop, priceBottom)
	osc := newFixedAxis(0, 100, oscTop, plotBottom)
	xs := xscale{left: plotLeft, right: plotRight, n: series.Len()}
	ticks := thinTicks(monthTicks(series.Times()), maxDateTicks)

	cp.drawTitle(pdf, candidate.PageTitle(cp.recKey))
	cp.drawPricePanel(pdf, price, xs, candidate, series, ind)
	cp.drawOscPanel(pdf, osc, xs, ind)
	cp.drawDateAxis(pdf, xs, series, ticks)

	cp.logger.WithFields(map[string]interface{}{
		"symbol":     candidate.Symbol,
		"bars":       series.Len(),
		"date_ticks": len(ticks),
	}).Debug("Chart page composed")

	return nil
}

func (cp *Composer) drawTitle(pdf *fpdf.Fpdf, title string) {
	size := 14.0
	pdf.SetFont("Arial", "B", size)
	for pdf.GetStringWidth(title) > plotRight-plotLeft && size > 9 {
		size -= 0.5
		pdf.SetFont("Arial", "B", size)
	}
	pdf.SetTextColor(0, 0, 0)
	x := plotLeft + (plotRight-plotLeft-pdf.GetStringWidth(title))/2
	pdf.Text(x, titleY, title)
}

func (cp *Composer) drawPricePanel(pdf *fpdf.Fpdf, ax axis, xs xscale, candidate contracts.Candidate, series *contracts.PriceSeries, ind *contracts.IndicatorSet) {
	ticks := niceTicks(ax.min, ax.max, 6)
	step := 1.0
	if len(ticks) > 1 {
		step = ticks[1] - ticks[0]
	}
	prec := tickPrecision(step)

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(60, 60, 60)
	setDraw(pdf, gridColor)
	pdf.SetLineWidth(0.15)
	for _, tv := range ticks {
		y := ax.y(tv)
		pdf.Line(plotLeft, y, plotRight, y)
		label := fmt.Sprintf("%.*f", prec, tv)
		pdf.Text(plotLeft-1.5-pdf.GetStringWidth(label), y+1.2, label)
	}

	w := xs.candleWidth()
	pdf.SetLineWidth(0.2)
	for i := range series.Bars {
		b := &series.Bars[i]
		c := downColor
		if b.Up() {
			c = upColor
		}
		setDraw(pdf, c)
		setFill(pdf, c)
		x := xs.x(i)
		pdf.Line(x, ax.y(b.High), x, ax.y(b.Low))
		top := ax.y(math.Max(b.Open, b.Close))
		bot := ax.y(math.Min(b.Open, b.Close))
		if bot-top < 0.3 {
			// doji, body too thin to fill
			pdf.Line(x-w/2, top, x+w/2, top)
			continue
		}
		pdf.Rect(x-w/2, top, w, bot-top, "F")
	}

	cp.drawSeriesLine(pdf, ax, xs, ind.MASlow, maSlowColor, 0.5)
	cp.drawSeriesLine(pdf, ax, xs, ind.MAFast, maFastColor, 0.5)

	cp.drawTargetLine(pdf, ax, candidate.TargetLow, targetLowColor)
	cp.drawTargetLine(pdf, ax, candidate.TargetMean, targetMeanColor)

	setDraw(pdf, frameColor)
	pdf.SetLineWidth(0.3)
	pdf.Rect(plotLeft, ax.top, plotRight-plotLeft, ax.bottom-ax.top, "D")

	cp.drawYTitle(pdf, "Price ($)", (ax.top+ax.bottom)/2)
	cp.drawPriceLegend(pdf, candidate)
	cp.drawStatsBox(pdf, series, ind)
}

func (cp *Composer) drawOscPanel(pdf *fpdf.Fpdf, ax axis, xs xscale, ind *contracts.IndicatorSet) {
	// neutral band between the guide levels
	pdf.SetAlpha(0.1, "Normal")
	setFill(pdf, bandColor)
	pdf.Rect(plotLeft, ax.y(70), plotRight-plotLeft, ax.y(30)-ax.y(70), "F")
	pdf.SetAlpha(1.0, "Normal")

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(60, 60, 60)
	for _, tv := range []float64{0, 30, 70, 100} {
		y := ax.y(tv)
		label := fmt.Sprintf("%.0f", tv)
		pdf.Text(plotLeft-1.5-pdf.GetStringWidth(label), y+1.2, label)
	}
	setDraw(pdf, gridColor)
	pdf.SetLineWidth(0.15)
	pdf.Line(plotLeft, ax.y(50), plotRight, ax.y(50))

	pdf.SetDashPattern([]float64{2, 1.5}, 0)
	pdf.SetLineWidth(0.4)
	setDraw(pdf, downColor)
	pdf.Line(plotLeft, ax.y(70), plotRight, ax.y(70))
	setDraw(pdf, upColor)
	pdf.Line(plotLeft, ax.y(30), plotRight, ax.y(30))
	pdf.SetDashPattern([]float64{}, 0)

	cp.drawSeriesLine(pdf, ax, xs, ind.Oscillator, oscColor, 0.45)

	setDraw(pdf, frameColor)
	pdf.SetLineWidth(0.3)
	pdf.Rect(plotLeft, ax.top, plotRight-plotLeft, ax.bottom-ax.top, "D")

	cp.drawYTitle(pdf, "RSI", (ax.top+ax.bottom)/2)
	cp.drawOscLegend(pdf, ax)
}

// drawSeriesLine draws a polyline, skipping segments with an undefined end.
func (cp *Composer) drawSeriesLine(pdf *fpdf.Fpdf, ax axis, xs xscale, values []float64, c rgb, width float64) {
	setDraw(pdf, c)
	pdf.SetLineWidth(width)
	for i := 1; i < len(values); i++ {
		if math.IsNaN(values[i-1]) || math.IsNaN(values[i]) {
			continue
		}
		pdf.Line(xs.x(i-1), ax.y(values[i-1]), xs.x(i), ax.y(values[i]))
	}
}

// drawTargetLine draws a dashed analyst target level. Zero targets are the
// normalized-absent sentinel and off-scale targets are simply not visible.
func (cp *Composer) drawTargetLine(pdf *fpdf.Fpdf, ax axis, value float64, c rgb) {
	if value <= 0 || !ax.contains(value) {
		return
	}
	setDraw(pdf, c)
	pdf.SetLineWidth(0.5)
	pdf.SetDashPattern([]float64{2, 1.5}, 0)
	y := ax.y(value)
	pdf.Line(plotLeft, y, plotRight, y)
	pdf.SetDashPattern([]float64{}, 0)
}

type legendEntry struct {
	label  string
	color  rgb
	dashed bool
}

func (cp *Composer) drawPriceLegend(pdf *fpdf.Fpdf, candidate contracts.Candidate) {
	entries := []legendEntry{
		{label: "200-Day MA", color: maSlowColor},
		{label: "50-Day MA", color: maFastColor},
	}
	if candidate.TargetLow > 0 {
		entries = append(entries, legendEntry{
			label:  fmt.Sprintf("Target_LP: %.1f", candidate.TargetLow),
			color:  targetLowColor,
			dashed: true,
		})
	}
	if candidate.TargetMean > 0 {
		entries = append(entries, legendEntry{
			label:  fmt.Sprintf("Target_Mean_P: %.1f", candidate.TargetMean),
			color:  targetMeanColor,
			dashed: true,
		})
	}
	cp.drawLegend(pdf, entries, plotLeft+2.5, plotTop+2.5)
}

func (cp *Composer) drawOscLegend(pdf *fpdf.Fpdf, ax axis) {
	entries := []legendEntry{
		{label: "Overbought (70)", color: downColor, dashed: true},
		{label: "Oversold (30)", color: upColor, dashed: true},
	}
	pdf.SetFont("Arial", "", 7.5)
	boxW := cp.legendWidth(pdf, entries)
	cp.drawLegend(pdf, entries, plotRight-boxW-2.5, ax.top+2)
}

func (cp *Composer) legendWidth(pdf *fpdf.Fpdf, entries []legendEntry) float64 {
	wMax := 0.0
	for _, e := range entries {
		if w := pdf.GetStringWidth(e.label); w > wMax {
			wMax = w
		}
	}
	return wMax + 14
}

func (cp *Composer) drawLegend(pdf *fpdf.Fpdf, entries []legendEntry, x, y float64) {
	const row = 4.2
	pdf.SetFont("Arial", "", 7.5)
	boxW := cp.legendWidth(pdf, entries)
	boxH := row*float64(len(entries)) + 2

	pdf.SetFillColor(255, 255, 255)
	setDraw(pdf, frameColor)
	pdf.SetLineWidth(0.2)
	pdf.Rect(x, y, boxW, boxH, "FD")

	pdf.SetTextColor(0, 0, 0)
	for i, e := range entries {
		cy := y + 1 + (float64(i)+0.5)*row
		setDraw(pdf, e.color)
		pdf.SetLineWidth(0.5)
		if e.dashed {
			pdf.SetDashPattern([]float64{1.5, 1}, 0)
		}
		pdf.Line(x+2, cy, x+10, cy)
		if e.dashed {
			pdf.SetDashPattern([]float64{}, 0)
		}
		pdf.Text(x+12, cy+1.1, e.label)
	}
}

// drawStatsBox places the latest-values callout under the legend.
func (cp *Composer) drawStatsBox(pdf *fpdf.Fpdf, series *contracts.PriceSeries, ind *contracts.IndicatorSet) {
	n := series.Len()
	last := series.Bars[n-1]
	changePct := 0.0
	if n > 1 && series.Bars[n-2].Close != 0 {
		changePct = (last.Close - series.Bars[n-2].Close) / series.Bars[n-2].Close * 100
	}
	rsi := "n/a"
	if v, ok := ind.LatestOscillator(); ok {
		rsi = fmt.Sprintf("%.1f", v)
	}

	lines := []string{
		fmt.Sprintf("Current: $%.2f (%+.2f%%)", last.Close, changePct),
		fmt.Sprintf("50 MA: $%.2f", ind.MAFast[n-1]),
		fmt.Sprintf("200 MA: $%.2f", ind.MASlow[n-1]),
		fmt.Sprintf("RSI: %s", rsi),
	}

	const row = 4.0
	pdf.SetFont("Arial", "", 8)
	wMax := 0.0
	for _, s := range lines {
		if w := pdf.GetStringWidth(s); w > wMax {
			wMax = w
		}
	}
	x := plotLeft + 2.5
	y := plotTop + (priceBottom-plotTop)*0.22
	boxW := wMax + 5
	boxH := row*float64(len(lines)) + 3

	setFill(pdf, statsFillColor)
	setDraw(pdf, frameColor)
	pdf.SetLineWidth(0.2)
	pdf.RoundedRect(x, y, boxW, boxH, 1.5, "1234", "FD")

	pdf.SetTextColor(0, 0, 0)
	for i, s := range lines {
		pdf.Text(x+2.5, y+2+(float64(i)+0.5)*row+1, s)
	}
}

// drawDateAxis marks month boundaries on both panels and writes the angled
// date labels under the lower one.
func (cp *Composer) drawDateAxis(pdf *fpdf.Fpdf, xs xscale, series *contracts.PriceSeries, ticks []int) {
	times := series.Times()
	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(60, 60, 60)
	setDraw(pdf, frameColor)
	pdf.SetLineWidth(0.25)
	for _, i := range ticks {
		x := xs.x(i)
		pdf.Line(x, priceBottom, x, priceBottom+1.2)
		pdf.Line(x, plotBottom, x, plotBottom+1.5)

		label := times[i].Format("2006-01-02")
		pdf.TransformBegin()
		pdf.TransformRotate(45, x, plotBottom+3.5)
		pdf.Text(x-pdf.GetStringWidth(label), plotBottom+3.5, label)
		pdf.TransformEnd()
	}

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(0, 0, 0)
	caption := "Date"
	pdf.Text(plotLeft+(plotRight-plotLeft-pdf.GetStringWidth(caption))/2, 203, caption)
}

func (cp *Composer) drawYTitle(pdf *fpdf.Fpdf, title string, centerY float64) {
	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(0, 0, 0)
	x := plotLeft - 12.0
	pdf.TransformBegin()
	pdf.TransformRotate(90, x, centerY)
	pdf.Text(x-pdf.GetStringWidth(title)/2, centerY, title)
	pdf.TransformEnd()
}

func setDraw(pdf *fpdf.Fpdf, c rgb) { pdf.SetDrawColor(c.r, c.g, c.b) }
func setFill(pdf *fpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }
