package voice_swap

import (
	"context"

	"github.com/GodingWal/famflix-voice-io/align"
	log "github.com/GodingWal/famflix-voice-io/logger"
	"github.com/GodingWal/famflix-voice-io/tts"
)

// pipelineState carries everything the strategy tiers need: the job
// workspace, the probed video, the transcript, and the synthesized track.
type pipelineState struct {
	ws            *Workspace
	videoPath     string
	videoDuration float64
	segments      []align.TranscriptSegment
	synthAudio    string
	synthDuration float64
	wordTimings   []align.WordTiming
	tts           tts.Provider
	voiceRef      string
}

// Strategy is one alignment tier. Attempt returns ok=false, with a nil
// Status, when the tier's own validation rejects its output; that signals
// the orchestrator to fall through to the next tier. A non-nil Status is a
// fatal error that aborts the job.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, st *pipelineState) (string, bool, *log.Status)
}

// strategyOrder is the fixed fallback cascade. The last tier cannot fail.
func strategyOrder() []Strategy {
	return []Strategy{
		perSegmentStrategy{},
		gapAdjustStrategy{},
		syntheticStrategy{},
		padStretchStrategy{},
	}
}

// runStrategies walks the cascade until one tier produces a track.
func runStrategies(ctx context.Context, st *pipelineState, strategies []Strategy) (string, *log.Status) {
	for _, strategy := range strategies {
		track, ok, status := strategy.Attempt(ctx, st)
		if status != nil {
			return "", status
		}
		if ok {
			log.Info(ctx, "alignment strategy succeeded:", strategy.Name())
			return track, nil
		}
		log.Info(ctx, "alignment strategy declined:", strategy.Name())
	}
	// Unreachable: padStretchStrategy always succeeds.
	return "", log.ErrorNoErr(ctx, 500, "all alignment strategies declined")
}
