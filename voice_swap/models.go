// Package voice_swap replaces the narration of a video with a synthesized
// voice track, keeping the new audio frame-accurately aligned to the
// original video's duration and utterance timing. Alignment runs through a
// cascade of strategies, each validating its own output and falling through
// to the next when it cannot meet tolerance.
package voice_swap

import (
	"context"

	log "github.com/GodingWal/famflix-voice-io/logger"
)

const (
	// FinalToleranceMs is how far the delivered track may drift from the
	// video duration.
	FinalToleranceMs = 100.0
	// SegmentToleranceMs is the per-segment scheduling tolerance; the
	// compositor's circuit breaker trips at five times this value.
	SegmentToleranceMs = 40.0
	maxGapDriftMs      = 5 * SegmentToleranceMs

	// Splice parameters for the per-segment path.
	minTimeAvailable    = 0.2
	gapHeadroom         = 0.95
	stretchTriggerRatio = 1.02
	maxStretchRatio     = 3.0
	slowDownLowRatio    = 0.4
	slowDownHighRatio   = 0.85
	crossfadeDuration   = 0.010

	// Band of synthesized/original speech-rate ratios within which gap
	// adjustment is attempted without stretching the whole track first.
	speedRatioLow  = 0.7
	speedRatioHigh = 1.4

	maxVerifyAttempts = 3
)

// Job progress stages reported to the state store.
const (
	StageStarting        = "starting"
	StageTranscribing    = "transcribing"
	StageTranscriptReady = "transcript_ready"
	StagePipelineSpawn   = "pipeline_spawn"
	StageTTSSynthesis    = "tts_synthesis"
	StageCompleted       = "completed"
	StageFailed          = "failed"
)

// ProgressReporter receives discrete job milestones. The orchestrator keeps
// no job state of its own beyond the current invocation.
type ProgressReporter interface {
	ReportProgress(ctx context.Context, jobID string, stage string, percentage int, message string) *log.Status
}

// NopReporter discards progress; used when no state store is wired.
type NopReporter struct{}

func (NopReporter) ReportProgress(context.Context, string, string, int, string) *log.Status {
	return nil
}

// Options controls the optional behaviors of a processing job.
type Options struct {
	// OutputPath is where the final video lands. Empty derives a
	// "_voiced" sibling of the input.
	OutputPath string
	// MixBackground ducks the original audio under the new voice
	// instead of discarding it.
	MixBackground bool
	// DuckLevelDb is the attenuation applied to the background inside
	// speech windows. Zero means the default of -12 dB.
	DuckLevelDb float64
}

func (o *Options) duckLevel() float64 {
	if o.DuckLevelDb == 0 {
		return -12
	}
	return o.DuckLevelDb
}
