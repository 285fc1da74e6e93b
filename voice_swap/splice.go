package voice_swap

import (
	"context"
	"fmt"

	log "github.com/GodingWal/famflix-voice-io/logger"
	"github.com/GodingWal/famflix-voice-io/utility/ffmpeg"
)

// timedClip is one utterance clip together with its allotted window on the
// video timeline. Dur is the measured duration of the file at Path.
type timedClip struct {
	Path  string
	Dur   float64
	Start float64
	End   float64
}

type fitMode int

const (
	fitNone fitMode = iota
	fitSpeedUp
	fitSlowDown
)

type fitPlan struct {
	target float64
	mode   fitMode
}

// planSegmentFit decides how a clip gets fitted into its window given how
// much of the timeline has actually been written so far. The 0.95 headroom
// factor leaves room for the trailing gap-insertion step.
func planSegmentFit(clipDur, segStart, segEnd, cumulative float64) fitPlan {
	timeAvailable := segEnd - cumulative
	if timeAvailable < minTimeAvailable {
		timeAvailable = minTimeAvailable
	}
	target := gapHeadroom * timeAvailable
	if segDur := segEnd - segStart; segDur < target {
		target = segDur
	}
	ratio := clipDur / target
	switch {
	case ratio > stretchTriggerRatio:
		return fitPlan{target: target, mode: fitSpeedUp}
	case ratio >= slowDownLowRatio && ratio < slowDownHighRatio:
		return fitPlan{target: target, mode: fitSlowDown}
	default:
		return fitPlan{target: target, mode: fitNone}
	}
}

// planGap decides what fills the space before the next window. A positive
// silence is inserted audio; when the written timeline has already overrun
// the window start, nothing is inserted and the overrun is reported in
// milliseconds for the circuit breaker. Either way the caller's position
// snaps to the window start, so one late segment never shrinks the
// windows that follow it.
func planGap(cumulative, nextStart float64) (silence float64, driftMs float64) {
	gap := nextStart - cumulative
	if gap > 0 {
		return gap, 0
	}
	return 0, -gap * 1000
}

// spliceClips lays the clips onto the output timeline: leading silence up
// to the first window, calculated silence gaps between windows, per-clip
// stretch or trim into each window, trailing silence out to the video
// duration, all joined with short crossfades.
//
// Returns ok=false (not a fatal status) when accumulated gap corrections
// exceed the circuit-breaker bound; the caller falls through to the next
// strategy tier.
func spliceClips(ctx context.Context, ws *Workspace, clips []timedClip, videoDuration float64) (string, bool, *log.Status) {
	if len(clips) == 0 {
		return "", false, log.ErrorNoErr(ctx, 400, "spliceClips called with no clips")
	}
	var parts []string
	cumulative := 0.0
	maxDriftMs := 0.0

	if clips[0].Start > 0.01 {
		lead := ws.Clip("lead")
		status := ffmpeg.GenerateSilence(ctx, clips[0].Start, lead)
		if status != nil {
			return "", false, status
		}
		parts = append(parts, lead)
		cumulative = clips[0].Start
	}

	for i, clip := range clips {
		plan := planSegmentFit(clip.Dur, clip.Start, clip.End, cumulative)
		path, dur := clip.Path, clip.Dur
		switch plan.mode {
		case fitSpeedUp:
			if clip.Dur/plan.target <= maxStretchRatio {
				stretched := ws.Clip("fit")
				achieved, status := ffmpeg.TimeStretchGently(ctx, path, plan.target, stretched)
				if status != nil {
					return "", false, status
				}
				path, dur = stretched, achieved
			}
			if dur > plan.target+0.02 {
				trimmed := ws.Clip("trim")
				status := ffmpeg.HardTrim(ctx, path, plan.target, trimmed)
				if status != nil {
					return "", false, status
				}
				path = trimmed
				// Force the bookkeeping to the planned target so the
				// downstream gap math never drifts off the plan.
				dur = plan.target
			}
		case fitSlowDown:
			filled := ws.Clip("fill")
			achieved, status := ffmpeg.TimeStretchGently(ctx, path, plan.target, filled)
			if status != nil {
				return "", false, status
			}
			path, dur = filled, achieved
		}
		parts = append(parts, path)
		cumulative += dur

		if i < len(clips)-1 {
			gap, driftMs := planGap(cumulative, clips[i+1].Start)
			if gap > 0 {
				silence := ws.Clip("gap")
				status := ffmpeg.GenerateSilence(ctx, gap, silence)
				if status != nil {
					return "", false, status
				}
				parts = append(parts, silence)
			} else if driftMs > 0 {
				if driftMs > maxDriftMs {
					maxDriftMs = driftMs
				}
				if maxDriftMs > maxGapDriftMs {
					log.Warn(ctx, fmt.Sprintf("splice drift %.0fms exceeds %.0fms, abandoning tier",
						maxDriftMs, maxGapDriftMs))
					return "", false, nil
				}
			}
			// Snap to the next window's start: an overrun is masked, not
			// carried into the following segment's time budget.
			cumulative = clips[i+1].Start
		}
	}

	if trailing := videoDuration - cumulative; trailing > 0.01 {
		tail := ws.Clip("tail")
		status := ffmpeg.GenerateSilence(ctx, trailing, tail)
		if status != nil {
			return "", false, status
		}
		parts = append(parts, tail)
	}

	out := ws.Clip("spliced")
	status := ffmpeg.ConcatenateWithFades(ctx, parts, crossfadeDuration, out)
	if status != nil {
		return "", false, status
	}
	return out, true, nil
}
