package voice_swap

import (
	"context"
	"fmt"

	log "github.com/GodingWal/famflix-voice-io/logger"
	"github.com/GodingWal/famflix-voice-io/utility/ffmpeg"
)

type correction int

const (
	correctionNone correction = iota
	correctionTrim
	correctionPad
)

// planCorrection maps a measured duration to the corrective primitive, if
// any. Drift is measured - target, in milliseconds.
func planCorrection(measured, target float64) correction {
	driftMs := (measured - target) * 1000
	switch {
	case driftMs > FinalToleranceMs:
		return correctionTrim
	case driftMs < -FinalToleranceMs:
		return correctionPad
	default:
		return correctionNone
	}
}

// verifyDuration measures the track against the target duration and trims
// or pads until within tolerance, bounded at maxVerifyAttempts. Exhausting
// the attempts logs a critical warning and returns the best-effort track;
// a slightly desynced result is preferred over no result.
func verifyDuration(ctx context.Context, ws *Workspace, trackPath string, target float64) (string, *log.Status) {
	current := trackPath
	for attempt := 0; attempt < maxVerifyAttempts; attempt++ {
		measured, status := ffmpeg.GetDuration(ctx, current)
		if status != nil {
			return "", status
		}
		switch planCorrection(measured, target) {
		case correctionNone:
			return current, nil
		case correctionTrim:
			trimmed := ws.Clip("verify_trim")
			status = ffmpeg.HardTrim(ctx, current, target, trimmed)
			if status != nil {
				return "", status
			}
			current = trimmed
		case correctionPad:
			pad := ws.Clip("verify_pad")
			status = ffmpeg.GenerateSilence(ctx, target-measured, pad)
			if status != nil {
				return "", status
			}
			padded := ws.Clip("verify_padded")
			status = ffmpeg.Concatenate(ctx, []string{current, pad}, padded)
			if status != nil {
				return "", status
			}
			current = padded
		}
	}
	measured, status := ffmpeg.GetDuration(ctx, current)
	if status != nil {
		return "", status
	}
	log.Warn(ctx, fmt.Sprintf(
		"drift correction exhausted %d attempts, delivering %.3fs against target %.3fs",
		maxVerifyAttempts, measured, target))
	return current, nil
}
