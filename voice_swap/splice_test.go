package voice_swap

import (
	"math"
	"testing"
)

func TestPlanSegmentFitSpeedUp(t *testing.T) {
	// 3s of speech into a 2s window that starts at cumulative 4.0.
	plan := planSegmentFit(3.0, 4.0, 6.0, 4.0)
	if plan.mode != fitSpeedUp {
		t.Errorf("expected speed-up, got mode %d", plan.mode)
	}
	// target = min(0.95 * (6.0-4.0), 2.0) = 1.9
	if math.Abs(plan.target-1.9) > 1e-9 {
		t.Errorf("target = %f, want 1.9", plan.target)
	}
}

func TestPlanSegmentFitSlowDown(t *testing.T) {
	// 1s of speech into a 2s window: ratio 1.0/1.9 ~ 0.53, inside [0.4, 0.85).
	plan := planSegmentFit(1.0, 4.0, 6.0, 4.0)
	if plan.mode != fitSlowDown {
		t.Errorf("expected slow-down, got mode %d", plan.mode)
	}
}

func TestPlanSegmentFitNearFit(t *testing.T) {
	// Ratio within [0.85, 1.02]: leave the clip alone.
	plan := planSegmentFit(1.9, 4.0, 6.0, 4.0)
	if plan.mode != fitNone {
		t.Errorf("expected no fitting, got mode %d", plan.mode)
	}
}

func TestPlanSegmentFitVeryShortClipLeftAlone(t *testing.T) {
	// Ratio below 0.4 is left alone rather than stretched absurdly.
	plan := planSegmentFit(0.3, 4.0, 6.0, 4.0)
	if plan.mode != fitNone {
		t.Errorf("expected no fitting for tiny ratio, got mode %d", plan.mode)
	}
}

func TestPlanSegmentFitBehindSchedule(t *testing.T) {
	// Cumulative already past the window end: the 0.2s floor applies.
	plan := planSegmentFit(1.0, 4.0, 6.0, 6.5)
	want := gapHeadroom * minTimeAvailable
	if math.Abs(plan.target-want) > 1e-9 {
		t.Errorf("target = %f, want %f", plan.target, want)
	}
	if plan.mode != fitSpeedUp {
		t.Errorf("expected speed-up when behind schedule, got mode %d", plan.mode)
	}
}

func TestPlanSegmentFitTargetCappedBySegmentDuration(t *testing.T) {
	// Plenty of room ahead, but the window itself is short.
	plan := planSegmentFit(0.5, 1.0, 1.5, 0.0)
	if math.Abs(plan.target-0.5) > 1e-9 {
		t.Errorf("target = %f, want segment duration 0.5", plan.target)
	}
}

func TestPlanGap(t *testing.T) {
	// Ahead of the next window: the difference becomes inserted silence.
	silence, driftMs := planGap(4.0, 6.0)
	if math.Abs(silence-2.0) > 1e-9 || driftMs != 0 {
		t.Errorf("planGap(4.0, 6.0) = (%f, %f)", silence, driftMs)
	}
	// Overrun: no audio inserted, overrun reported for the breaker.
	silence, driftMs = planGap(3.2, 3.0)
	if silence != 0 {
		t.Errorf("overrun must not insert silence, got %f", silence)
	}
	if math.Abs(driftMs-200) > 1e-9 {
		t.Errorf("driftMs = %f, want 200", driftMs)
	}
	// Exactly on time: nothing inserted, nothing masked.
	silence, driftMs = planGap(3.0, 3.0)
	if silence != 0 || driftMs != 0 {
		t.Errorf("planGap(3.0, 3.0) = (%f, %f)", silence, driftMs)
	}
}

// An overrun on one segment snaps the timeline position to the next
// window's start, so the following segment still plans against its full
// window instead of being compressed harder.
func TestGapSnapKeepsNextWindowFull(t *testing.T) {
	_, driftMs := planGap(3.2, 3.0)
	if driftMs <= 0 {
		t.Fatal("expected masked overrun")
	}
	// Position after the snap is the window start, 3.0.
	plan := planSegmentFit(1.9, 3.0, 5.0, 3.0)
	if plan.mode != fitNone {
		t.Errorf("full window should need no fitting, got mode %d", plan.mode)
	}
	// Without the snap the stale position would shrink the window and
	// force a speed-up.
	stale := planSegmentFit(1.9, 3.0, 5.0, 3.2)
	if stale.mode != fitSpeedUp {
		t.Errorf("shrunken window should force speed-up, got mode %d", stale.mode)
	}
}

func TestPlanCorrection(t *testing.T) {
	cases := []struct {
		measured, target float64
		want             correction
	}{
		{10.0, 10.0, correctionNone},
		{10.05, 10.0, correctionNone},
		{9.95, 10.0, correctionNone},
		{10.2, 10.0, correctionTrim},
		{9.7, 10.0, correctionPad},
		{10.43, 10.0, correctionTrim},
	}
	for _, c := range cases {
		if got := planCorrection(c.measured, c.target); got != c.want {
			t.Errorf("planCorrection(%.2f, %.2f) = %d, want %d", c.measured, c.target, got, c.want)
		}
	}
}

func TestDistributeGapSlot(t *testing.T) {
	// 2s surplus around 3 segments: 4 slots of 0.5s.
	if got := distributeGapSlot(2.0, 3); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("slot = %f, want 0.5", got)
	}
	if got := distributeGapSlot(-1.0, 3); got != 0 {
		t.Errorf("negative delta should yield 0, got %f", got)
	}
	if got := distributeGapSlot(2.0, 0); got != 0 {
		t.Errorf("no segments should yield 0, got %f", got)
	}
}
