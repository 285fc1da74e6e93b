// Package tts defines the synthesis backend interface consumed by the
// voice-replacement pipeline, plus the stdio worker adapter that drives a
// local synthesis helper process.
package tts

import (
	"context"

	"github.com/GodingWal/famflix-voice-io/align"
	log "github.com/GodingWal/famflix-voice-io/logger"
)

// SynthesisResult is the output of a timestamped synthesis call.
// WordTimings is empty, not an error, when the backend has no alignment data.
type SynthesisResult struct {
	AudioPath     string
	WordTimings   []align.WordTiming
	TotalDuration float64
}

// Provider is the synthesis backend. The orchestrator receives one at
// construction so tests can substitute a double.
type Provider interface {
	// SynthesizeWithTimestamps renders text in the cloned voice and
	// returns the audio path plus word-level timings when available.
	SynthesizeWithTimestamps(ctx context.Context, text string, voiceRef string) (SynthesisResult, *log.Status)

	// Synthesize renders text without timing data. Used only by the
	// per-segment re-synthesis fallback.
	Synthesize(ctx context.Context, text string, voiceRef string) (string, *log.Status)
}
