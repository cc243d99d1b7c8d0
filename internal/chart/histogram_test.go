package chart

import (
	"bytes"
	"image/png"
	"sync"
	"testing"

	"RangeScope/internal/model"
)

func sampleBins(counts ...int) []model.Bin {
	bins := make([]model.Bin, len(counts))
	for i, c := range counts {
		bins[i] = model.Bin{Lower: float64(i), Upper: float64(i + 1), Count: c}
	}
	return bins
}

func TestRender_ProducesPNG(t *testing.T) {
	r := NewRenderer(800, 300)
	for _, dir := range []model.Direction{model.DirectionUp, model.DirectionDown} {
		data, err := r.Render(dir, sampleBins(1, 4, 2, 0, 1))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", dir, err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("%s: output is not a PNG: %v", dir, err)
		}
		if img.Bounds().Dx() != 800 || img.Bounds().Dy() != 300 {
			t.Errorf("%s: unexpected size %v", dir, img.Bounds())
		}
	}
}

func TestRender_EmptyGroupStillRenders(t *testing.T) {
	data, err := NewRenderer(0, 0).Render(model.DirectionUp, sampleBins(0, 0, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
}

func TestRender_ManyBinsWidensCanvas(t *testing.T) {
	counts := make([]int, 600)
	for i := range counts {
		counts[i] = i % 7
	}
	data, err := NewRenderer(800, 300).Render(model.DirectionDown, sampleBins(counts...))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() <= 800 {
		t.Errorf("expected a widened canvas, got width %d", img.Bounds().Dx())
	}
}

func TestRender_NoBins(t *testing.T) {
	if _, err := NewRenderer(0, 0).Render(model.DirectionUp, nil); err == nil {
		t.Error("expected error for empty bin list")
	}
}

func TestRender_Concurrent(t *testing.T) {
	r := NewRenderer(400, 200)
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			dir := model.DirectionUp
			if i%2 == 1 {
				dir = model.DirectionDown
			}
			if _, err := r.Render(dir, sampleBins(i, 1, 2)); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent render failed: %v", err)
	}
}

func TestLabelStep(t *testing.T) {
	tests := []struct {
		span float64
		want float64
	}{
		{100, 10},
		{25, 2.5},
		{0.3, 0.05},
		{7, 1},
		{0, 1},
	}
	for _, tt := range tests {
		if got := labelStep(tt.span); got < tt.want*0.999 || got > tt.want*1.001 {
			t.Errorf("labelStep(%v): expected %v, got %v", tt.span, tt.want, got)
		}
	}
}

func TestCountTicks(t *testing.T) {
	ticks := countTicks(47)
	last := ticks[len(ticks)-1].Value
	if ticks[0].Value != 0 || last < 47 {
		t.Errorf("ticks do not cover [0, 47]: %v", ticks)
	}
	if got := countTicks(0); len(got) != 2 || got[1].Value != 1 {
		t.Errorf("expected ticks [0 1] for an empty chart, got %v", got)
	}
}
