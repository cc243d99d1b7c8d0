package calculator

import (
	"errors"
	"reflect"
	"testing"

	"RangeScope/internal/model"
)

func TestBinEdges(t *testing.T) {
	tests := []struct {
		max  float64
		tick float64
		want []float64
	}{
		{23, 5, []float64{0, 5, 10, 15, 20, 25}},
		{25, 5, []float64{0, 5, 10, 15, 20, 25}},
		{0, 5, []float64{0, 5}},
		{0.3, 0.1, []float64{0, 0.1, 0.2, 0.3}},
		{4, 1, []float64{0, 1, 2, 3, 4}},
	}
	for _, tt := range tests {
		got, err := BinEdges(tt.max, tt.tick)
		if err != nil {
			t.Fatalf("BinEdges(%v, %v): %v", tt.max, tt.tick, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("BinEdges(%v, %v): expected %v, got %v", tt.max, tt.tick, tt.want, got)
		}
	}
}

func TestBinEdges_Invariants(t *testing.T) {
	for _, tick := range []float64{0.01, 0.25, 1, 7} {
		edges, err := BinEdges(37.5, tick)
		if err != nil {
			t.Fatalf("tick %v: %v", tick, err)
		}
		if edges[0] != 0 {
			t.Errorf("tick %v: first edge %v, expected 0", tick, edges[0])
		}
		if edges[len(edges)-1] < 37.5 {
			t.Errorf("tick %v: last edge %v does not cover max", tick, edges[len(edges)-1])
		}
		for i := 1; i < len(edges); i++ {
			if edges[i] <= edges[i-1] {
				t.Fatalf("tick %v: edges not increasing at %d", tick, i)
			}
			gap := edges[i] - edges[i-1]
			if d := gap - tick; d > 1e-9 || d < -1e-9 {
				t.Errorf("tick %v: gap %v at %d", tick, gap, i)
			}
		}
	}
}

func TestBinEdges_Errors(t *testing.T) {
	if _, err := BinEdges(10, 0); !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("zero tick: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := BinEdges(-1, 1); !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("negative max: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := BinEdges(1e6, 0.001); !errors.Is(err, model.ErrTooManyBins) || !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("too many bins: expected ErrTooManyBins, got %v", err)
	}
	if _, err := BinEdges(10, 0.001); err != nil {
		t.Errorf("exactly MaxBins bins should be accepted: %v", err)
	}
}

func TestCountBins(t *testing.T) {
	edges := []float64{0, 1, 2, 3, 4}
	bins, err := CountBins([]float64{1, 4, 1, 1, 0, 3}, edges)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{1, 3, 0, 2}
	for i, b := range bins {
		if b.Count != want[i] {
			t.Errorf("bin %d [%v,%v): expected %d, got %d", i, b.Lower, b.Upper, want[i], b.Count)
		}
		if b.Lower != edges[i] || b.Upper != edges[i+1] {
			t.Errorf("bin %d: bounds [%v,%v) do not match edges", i, b.Lower, b.Upper)
		}
	}
	if TotalCount(bins) != 6 {
		t.Errorf("expected total 6, got %d", TotalCount(bins))
	}
}

func TestCountBins_DegenerateSingleBin(t *testing.T) {
	bins, err := CountBins([]float64{0, 0, 0}, []float64{0, 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bins) != 1 || bins[0].Count != 3 {
		t.Errorf("expected one bin with 3 samples, got %+v", bins)
	}
}

func TestCountBins_NeedsTwoEdges(t *testing.T) {
	if _, err := CountBins([]float64{1}, []float64{0}); !errors.Is(err, model.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestTopBins_OrderAndTieBreak(t *testing.T) {
	bins := []model.Bin{
		{Lower: 0, Upper: 1, Count: 2},
		{Lower: 1, Upper: 2, Count: 5},
		{Lower: 2, Upper: 3, Count: 2},
		{Lower: 3, Upper: 4, Count: 0},
		{Lower: 4, Upper: 5, Count: 5},
		{Lower: 5, Upper: 6, Count: 1},
		{Lower: 6, Upper: 7, Count: 2},
	}
	got := TopBins(bins, 5)
	want := []model.RankedBin{
		{Label: "1.00-2.00", Lower: 1, Count: 5},
		{Label: "4.00-5.00", Lower: 4, Count: 5},
		{Label: "0.00-1.00", Lower: 0, Count: 2},
		{Label: "2.00-3.00", Lower: 2, Count: 2},
		{Label: "6.00-7.00", Lower: 6, Count: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	for i := 0; i < 10; i++ {
		if again := TopBins(bins, 5); !reflect.DeepEqual(again, got) {
			t.Fatalf("ranking not deterministic on run %d", i)
		}
	}
}

func TestTopBins_SkipsEmptyBins(t *testing.T) {
	bins := []model.Bin{{Lower: 0, Upper: 1}, {Lower: 1, Upper: 2, Count: 1}}
	got := TopBins(bins, 5)
	if len(got) != 1 || got[0].Label != "1.00-2.00" {
		t.Errorf("expected only the filled bin, got %+v", got)
	}
	if got := TopBins(nil, 5); len(got) != 0 {
		t.Errorf("expected empty ranking, got %+v", got)
	}
}

func TestFormatRange(t *testing.T) {
	if got := FormatRange(0.05, 0.1); got != "0.05-0.10" {
		t.Errorf("expected 0.05-0.10, got %s", got)
	}
	if got := FormatRange(20, 25); got != "20.00-25.00" {
		t.Errorf("expected 20.00-25.00, got %s", got)
	}
}
