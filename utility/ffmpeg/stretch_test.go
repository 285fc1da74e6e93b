package ffmpeg

import (
	"math"
	"testing"
	"time"
)

func TestAtempoChainProduct(t *testing.T) {
	ratios := []float64{0.1, 0.25, 0.49, 0.5, 0.85, 1.0, 1.15, 1.9, 2.0, 2.3, 3.7, 5.0, 8.4}
	for _, ratio := range ratios {
		stages := AtempoChain(ratio)
		product := 1.0
		for _, s := range stages {
			if s < atempoMin-1e-9 || s > atempoMax+1e-9 {
				t.Errorf("ratio %.2f: stage %.4f outside atempo band", ratio, s)
			}
			product *= s
		}
		if math.Abs(product-ratio) > 1e-3 {
			t.Errorf("ratio %.2f: chain product %.6f", ratio, product)
		}
	}
}

func TestAtempoChainSingleStage(t *testing.T) {
	stages := AtempoChain(1.3)
	if len(stages) != 1 {
		t.Errorf("in-band ratio should be one stage, got %v", stages)
	}
}

// A zero or negative ratio has no decomposition; it must return nil
// promptly rather than loop. The watchdog catches a regression to
// non-termination, which a zero-length input would otherwise reach
// through TimeStretch.
func TestAtempoChainNonPositiveRatio(t *testing.T) {
	for _, ratio := range []float64{0, -0.5, -2.0} {
		done := make(chan []float64, 1)
		go func() { done <- AtempoChain(ratio) }()
		select {
		case stages := <-done:
			if stages != nil {
				t.Errorf("AtempoChain(%.2f) = %v, want nil", ratio, stages)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("AtempoChain(%.2f) did not return within 2s", ratio)
		}
	}
}

func TestClampGentle(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.5, 0.85},
		{0.85, 0.85},
		{1.0, 1.0},
		{1.15, 1.15},
		{1.2, 1.15},
		{3.0, 1.15},
	}
	for _, c := range cases {
		if got := ClampGentle(c.in); got != c.want {
			t.Errorf("ClampGentle(%.2f) = %.2f, want %.2f", c.in, got, c.want)
		}
	}
}
