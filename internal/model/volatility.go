package model

// Direction is the candle direction of a bar.
type Direction string

const (
	DirectionUp   Direction = "UP"
	DirectionDown Direction = "DOWN"
)

// Sample is the range of one bar, raw and rounded to the tick size.
type Sample struct {
	Range     float64
	Rounded   float64
	Direction Direction
}

// Bin is a half-open price interval [Lower, Upper) with its sample count.
type Bin struct {
	Lower float64
	Upper float64
	Count int
}

// Summary holds central tendency over the rounded ranges of one direction.
type Summary struct {
	Count  int
	Mean   float64
	Median float64
}

// RankedBin is one entry of a top-N ranking.
type RankedBin struct {
	Label string // "lower-upper", two decimals
	Lower float64
	Count int
}

// DirectionReport is everything computed for one candle direction.
// Summary is only meaningful when Err is nil.
type DirectionReport struct {
	Direction Direction
	Summary   Summary
	Err       error
	Bins      []Bin
	Top       []RankedBin
	Image     []byte // PNG
}

// Available reports whether the summary statistics could be computed.
func (d *DirectionReport) Available() bool { return d.Err == nil }

// VolatilityReport is the result of one query.
type VolatilityReport struct {
	Query    Query
	BarCount int
	Edges    []float64
	Up       DirectionReport
	Down     DirectionReport
}
