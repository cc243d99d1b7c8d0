package web

import (
	"encoding/base64"
	"html/template"

	"RangeScope/internal/collector"
	"RangeScope/internal/model"

	"github.com/shopspring/decimal"
)

type formValues struct {
	Ticker   string
	Period   string
	Interval string
	TickSize string
}

type pageData struct {
	Form      formValues
	Periods   []string
	Intervals []string
	Error     string
	Result    *resultView
}

type resultView struct {
	Symbol   string
	Period   string
	Interval string
	TickSize string
	Bars     int
	Up       directionView
	Down     directionView
}

type directionView struct {
	Title     string
	Available bool
	Count     int
	Mean      string
	Median    string
	Top       []model.RankedBin
	Image     template.URL
}

func newPage(form formValues) pageData {
	return pageData{
		Form:      form,
		Periods:   collector.Periods(),
		Intervals: collector.Intervals(),
	}
}

func newResultView(rep *model.VolatilityReport) *resultView {
	return &resultView{
		Symbol:   rep.Query.Symbol,
		Period:   rep.Query.Period,
		Interval: rep.Query.Interval,
		TickSize: decimal.NewFromFloat(rep.Query.TickSize).String(),
		Bars:     rep.BarCount,
		Up:       newDirectionView("上昇足 (UP)", &rep.Up),
		Down:     newDirectionView("下落足 (DOWN)", &rep.Down),
	}
}

func newDirectionView(title string, d *model.DirectionReport) directionView {
	v := directionView{
		Title:     title,
		Available: d.Available(),
		Count:     d.Summary.Count,
		Mean:      UserMessage(d.Err),
		Median:    UserMessage(d.Err),
		Top:       d.Top,
	}
	if v.Available {
		v.Mean = formatStat(d.Summary.Mean)
		v.Median = formatStat(d.Summary.Median)
	}
	if len(d.Image) > 0 {
		// data: URLs are rejected by html/template unless explicitly trusted.
		v.Image = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(d.Image))
	}
	return v
}

func formatStat(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

type apiRank struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type apiBin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

type apiDirection struct {
	Available bool      `json:"available"`
	Count     int       `json:"count"`
	Mean      *float64  `json:"mean"`
	Median    *float64  `json:"median"`
	Top       []apiRank `json:"top"`
	Bins      []apiBin  `json:"bins"`
	Image     string    `json:"image_png_base64"`
}

type apiReport struct {
	Symbol   string       `json:"symbol"`
	Period   string       `json:"period"`
	Interval string       `json:"interval"`
	TickSize float64      `json:"tick_size"`
	Bars     int          `json:"bars"`
	Edges    []float64    `json:"edges"`
	Up       apiDirection `json:"up"`
	Down     apiDirection `json:"down"`
}

type apiError struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func newAPIReport(rep *model.VolatilityReport) apiReport {
	return apiReport{
		Symbol:   rep.Query.Symbol,
		Period:   rep.Query.Period,
		Interval: rep.Query.Interval,
		TickSize: rep.Query.TickSize,
		Bars:     rep.BarCount,
		Edges:    rep.Edges,
		Up:       newAPIDirection(&rep.Up),
		Down:     newAPIDirection(&rep.Down),
	}
}

func newAPIDirection(d *model.DirectionReport) apiDirection {
	out := apiDirection{
		Available: d.Available(),
		Count:     d.Summary.Count,
		Top:       make([]apiRank, 0, len(d.Top)),
		Bins:      make([]apiBin, 0, len(d.Bins)),
		Image:     base64.StdEncoding.EncodeToString(d.Image),
	}
	if out.Available {
		mean, median := d.Summary.Mean, d.Summary.Median
		out.Mean, out.Median = &mean, &median
	}
	for _, r := range d.Top {
		out.Top = append(out.Top, apiRank{Label: r.Label, Count: r.Count})
	}
	for _, b := range d.Bins {
		out.Bins = append(out.Bins, apiBin{Lower: b.Lower, Upper: b.Upper, Count: b.Count})
	}
	return out
}
