package voice_swap

import (
	"context"

	log "github.com/GodingWal/famflix-voice-io/logger"
	"github.com/GodingWal/famflix-voice-io/utility/ffmpeg"
)

// padStretchStrategy is the terminal tier. It unconditionally pads a short
// track or gently stretches a long one; the drift verifier squares up the
// residue afterward. There is no tier below this one, so it never declines.
type padStretchStrategy struct{}

func (padStretchStrategy) Name() string { return "simple_pad_or_stretch" }

func (padStretchStrategy) Attempt(ctx context.Context, st *pipelineState) (string, bool, *log.Status) {
	deltaMs := (st.synthDuration - st.videoDuration) * 1000

	if deltaMs > FinalToleranceMs {
		// Too long: gentle stretch gets at most 1.15x closer; the
		// verifier hard-trims whatever remains.
		fitted := st.ws.Clip("pad_stretch_fit")
		achieved, status := ffmpeg.TimeStretchGently(ctx, st.synthAudio, st.videoDuration, fitted)
		if status != nil {
			return "", false, status
		}
		log.Debug(ctx, "pad/stretch tier achieved", achieved, "target", st.videoDuration)
		return fitted, true, nil
	}

	if deltaMs < -FinalToleranceMs {
		pad := st.ws.Clip("pad_tail")
		status := ffmpeg.GenerateSilence(ctx, st.videoDuration-st.synthDuration, pad)
		if status != nil {
			return "", false, status
		}
		padded := st.ws.Clip("padded")
		status = ffmpeg.Concatenate(ctx, []string{st.synthAudio, pad}, padded)
		if status != nil {
			return "", false, status
		}
		return padded, true, nil
	}

	return st.synthAudio, true, nil
}
