package chart

import (
	"bytes"
	"fmt"
	"math"

	"RangeScope/internal/model"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 1000
	DefaultHeight = 400

	// targetLabels is roughly how many x labels a chart gets regardless of tick size.
	targetLabels = 10
	// axisReserve is the horizontal space kept for padding and the y axis.
	axisReserve = 120
)

// Renderer draws one histogram per call. It holds only dimensions; every
// Render builds its own canvas and buffer, so calls never share drawing state.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer creates a Renderer, falling back to defaults for non-positive sizes.
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Renderer{Width: width, Height: height}
}

// Render draws the bins of one direction as a PNG bar chart.
func (r *Renderer) Render(dir model.Direction, bins []model.Bin) ([]byte, error) {
	if len(bins) == 0 {
		return nil, fmt.Errorf("render %s histogram: no bins", dir)
	}

	total, maxCount := 0, 0
	for _, b := range bins {
		total += b.Count
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	slot := (r.Width - axisReserve) / len(bins)
	if slot < 3 {
		slot = 3
	}
	spacing := slot / 5
	if spacing < 1 {
		spacing = 1
	}
	width := r.Width
	if need := slot*len(bins) + axisReserve; need > width {
		width = need
	}

	col := directionColor(dir)
	step := labelStep(bins[len(bins)-1].Upper)
	bars := make([]gochart.Value, len(bins))
	for i, b := range bins {
		label := ""
		if i == 0 || strideIndex(b.Lower, step) > strideIndex(bins[i-1].Lower, step) {
			label = formatTick(b.Lower)
		}
		bars[i] = gochart.Value{
			Value: float64(b.Count),
			Label: label,
			Style: gochart.Style{FillColor: col, StrokeColor: col, StrokeWidth: 1},
		}
	}

	yTicks := countTicks(maxCount)
	bc := gochart.BarChart{
		Title:      fmt.Sprintf("%s candles: range distribution (n=%d)", directionTitle(dir), total),
		Width:      width,
		Height:     r.Height,
		BarWidth:   slot - spacing,
		BarSpacing: spacing,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: gochart.YAxis{
			Range:          &gochart.ContinuousRange{Min: 0, Max: yTicks[len(yTicks)-1].Value},
			Ticks:          yTicks,
			ValueFormatter: gochart.IntValueFormatter,
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := bc.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s histogram: %w", dir, err)
	}
	if total == 0 {
		return annotate(buf.Bytes(), "no samples for this direction")
	}
	return buf.Bytes(), nil
}

func directionColor(dir model.Direction) drawing.Color {
	if dir == model.DirectionUp {
		return drawing.ColorFromHex("2ca02c")
	}
	return drawing.ColorFromHex("d62728")
}

func directionTitle(dir model.Direction) string {
	if dir == model.DirectionUp {
		return "Up"
	}
	return "Down"
}

// labelStep picks a 1/2/2.5/5/10 step so the x axis carries about targetLabels labels.
func labelStep(span float64) float64 {
	if span <= 0 {
		return 1
	}
	raw := span / targetLabels
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, c := range []float64{1, 2, 2.5, 5, 10} {
		if c*mag >= raw {
			return c * mag
		}
	}
	return 10 * mag
}

func strideIndex(v, step float64) int {
	return int(math.Floor(v/step + 1e-9))
}

// countTicks returns integer y ticks from 0 up to the first tick >= maxCount.
func countTicks(maxCount int) []gochart.Tick {
	if maxCount < 1 {
		maxCount = 1
	}
	step := int(math.Ceil(labelStep(float64(maxCount))))
	var ticks []gochart.Tick
	for v := 0; ; v += step {
		ticks = append(ticks, gochart.Tick{Value: float64(v), Label: fmt.Sprintf("%d", v)})
		if v >= maxCount {
			break
		}
	}
	return ticks
}

func formatTick(v float64) string {
	av := math.Abs(v)
	switch {
	case v == 0:
		return "0"
	case av >= 100:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
