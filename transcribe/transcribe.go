// Package transcribe defines the speech-to-text backend interface used to
// obtain per-utterance timestamps from the original video.
package transcribe

import (
	"context"

	"github.com/GodingWal/famflix-voice-io/align"
	log "github.com/GodingWal/famflix-voice-io/logger"
)

// Transcript is the timestamped transcription of a source video.
type Transcript struct {
	FullText string                    `json:"full_text"`
	Segments []align.TranscriptSegment `json:"segments"`
	Duration float64                   `json:"duration"`
}

// Provider is the transcription backend, injected into the orchestrator.
type Provider interface {
	TranscribeVideo(ctx context.Context, videoPath string) (Transcript, *log.Status)
}
