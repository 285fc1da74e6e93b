package voice_swap

import (
	"context"
	"math"

	"github.com/GodingWal/famflix-voice-io/align"
	log "github.com/GodingWal/famflix-voice-io/logger"
	"github.com/GodingWal/famflix-voice-io/utility/ffmpeg"
)

// syntheticStrategy is the third tier, for videos with no transcript
// segments but a synthesized track with word timings: sentence-shaped
// synthetic segments are cut at punctuation and the duration surplus is
// distributed evenly across the N+1 gap slots around them. No per-segment
// stretch decisions are made in this tier.
type syntheticStrategy struct{}

func (syntheticStrategy) Name() string { return "synthetic_segment_distribution" }

// distributeGapSlot returns the silence inserted into each of the N+1 slots
// around N segments when delta seconds must be absorbed.
func distributeGapSlot(delta float64, numSegments int) float64 {
	if numSegments < 1 || delta <= 0 {
		return 0
	}
	return delta / float64(numSegments+1)
}

func (syntheticStrategy) Attempt(ctx context.Context, st *pipelineState) (string, bool, *log.Status) {
	if len(st.segments) > 0 || len(st.wordTimings) == 0 {
		return "", false, nil
	}

	// A track longer than the video has no surplus to distribute: stretch
	// it toward the target and let the verifier trim the residue.
	if st.synthDuration > st.videoDuration {
		fitted := st.ws.Clip("synthetic_fit")
		achieved, status := ffmpeg.TimeStretchGently(ctx, st.synthAudio, st.videoDuration, fitted)
		if status != nil {
			return "", false, status
		}
		log.Debug(ctx, "synthetic tier stretched whole track to", achieved)
		return fitted, true, nil
	}

	sentences := align.SplitSynthetic(st.wordTimings, st.videoDuration, st.synthDuration)
	if len(sentences) == 0 {
		return "", false, nil
	}
	slot := distributeGapSlot(st.videoDuration-st.synthDuration, len(sentences))

	var parts []string
	written := 0.0
	for _, sentence := range sentences {
		if slot > 0.01 {
			silence := st.ws.Clip("slot")
			status := ffmpeg.GenerateSilence(ctx, slot, silence)
			if status != nil {
				return "", false, status
			}
			parts = append(parts, silence)
			written += slot
		}
		clip := st.ws.Clip("sentence")
		dur := sentence.TTSEnd - sentence.TTSStart
		status := ffmpeg.ExtractSegment(ctx, st.synthAudio, sentence.TTSStart, dur, clip)
		if status != nil {
			return "", false, status
		}
		parts = append(parts, clip)
		written += dur
	}
	if trailing := st.videoDuration - written; trailing > 0.01 {
		tail := st.ws.Clip("slot_tail")
		status := ffmpeg.GenerateSilence(ctx, trailing, tail)
		if status != nil {
			return "", false, status
		}
		parts = append(parts, tail)
	}

	track := st.ws.Clip("synthetic")
	status := ffmpeg.ConcatenateWithFades(ctx, parts, crossfadeDuration, track)
	if status != nil {
		return "", false, status
	}

	measured, status := ffmpeg.GetDuration(ctx, track)
	if status != nil {
		return "", false, status
	}
	if math.Abs(measured-st.videoDuration)*1000 > FinalToleranceMs {
		log.Info(ctx, "synthetic distribution drift too large, declining tier")
		return "", false, nil
	}
	return track, true, nil
}
