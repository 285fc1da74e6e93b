package voice_swap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/GodingWal/famflix-voice-io/align"
	log "github.com/GodingWal/famflix-voice-io/logger"
	"github.com/GodingWal/famflix-voice-io/transcribe"
	"github.com/GodingWal/famflix-voice-io/tts"
	"github.com/GodingWal/famflix-voice-io/utility/ffmpeg"
)

// Orchestrator runs the voice-replacement pipeline for one video at a
// time. Providers are injected at construction so tests can substitute
// doubles; the orchestrator holds no state between jobs.
type Orchestrator struct {
	tts      tts.Provider
	asr      transcribe.Provider
	reporter ProgressReporter
	options  Options
}

func NewOrchestrator(ttsProvider tts.Provider, asrProvider transcribe.Provider,
	reporter ProgressReporter, options Options) *Orchestrator {
	if reporter == nil {
		reporter = NopReporter{}
	}
	return &Orchestrator{tts: ttsProvider, asr: asrProvider, reporter: reporter, options: options}
}

// Request describes one voice-replacement job. Segments and TranscriptText
// are optional; missing pieces are obtained from the transcription backend.
type Request struct {
	JobID          string
	VideoPath      string
	VoiceRef       string
	TranscriptText string
	Segments       []align.TranscriptSegment
}

// ProcessVideo produces a copy of the video with its narration replaced by
// the synthesized voice, duration-matched to within tolerance. All
// intermediates are removed before return on success and failure alike.
func (o *Orchestrator) ProcessVideo(ctx context.Context, req Request) (string, *log.Status) {
	o.report(ctx, req.JobID, StageStarting, 5, "")

	ws, status := NewWorkspace(ctx, req.JobID)
	if status != nil {
		return "", o.fail(ctx, req.JobID, status)
	}
	defer ws.Cleanup()

	videoDuration, status := ffmpeg.GetDuration(ctx, req.VideoPath)
	if status != nil {
		return "", o.fail(ctx, req.JobID, status)
	}

	transcriptText := req.TranscriptText
	segments := req.Segments
	if transcriptText == "" {
		if o.asr == nil {
			return "", o.fail(ctx, req.JobID,
				log.ErrorNoErr(ctx, 400, "No transcript text and no transcription backend configured"))
		}
		o.report(ctx, req.JobID, StageTranscribing, 15, "")
		transcript, status := o.asr.TranscribeVideo(ctx, req.VideoPath)
		if status != nil {
			return "", o.fail(ctx, req.JobID, status)
		}
		transcriptText = transcript.FullText
		if len(segments) == 0 {
			segments = transcript.Segments
		}
	}
	o.report(ctx, req.JobID, StageTranscriptReady, 25, "")

	o.report(ctx, req.JobID, StageTTSSynthesis, 40, "")
	synth, status := o.tts.SynthesizeWithTimestamps(ctx, transcriptText, req.VoiceRef)
	if status != nil {
		return "", o.fail(ctx, req.JobID, status)
	}
	synthWav := ws.Clip("synth")
	status = ffmpeg.ConvertToWav(ctx, synth.AudioPath, synthWav)
	if status != nil {
		return "", o.fail(ctx, req.JobID, status)
	}
	synthDuration, status := ffmpeg.GetDuration(ctx, synthWav)
	if status != nil {
		return "", o.fail(ctx, req.JobID, status)
	}

	o.report(ctx, req.JobID, StagePipelineSpawn, 60, "")
	state := &pipelineState{
		ws:            ws,
		videoPath:     req.VideoPath,
		videoDuration: videoDuration,
		segments:      segments,
		synthAudio:    synthWav,
		synthDuration: synthDuration,
		wordTimings:   synth.WordTimings,
		tts:           o.tts,
		voiceRef:      req.VoiceRef,
	}
	track, status := runStrategies(ctx, state, strategyOrder())
	if status != nil {
		return "", o.fail(ctx, req.JobID, status)
	}

	track, status = verifyDuration(ctx, ws, track, videoDuration)
	if status != nil {
		return "", o.fail(ctx, req.JobID, status)
	}

	if o.options.MixBackground {
		track, status = o.mixBackground(ctx, ws, req.VideoPath, track, segments)
		if status != nil {
			return "", o.fail(ctx, req.JobID, status)
		}
	}

	outputPath := o.options.OutputPath
	if outputPath == "" {
		ext := filepath.Ext(req.VideoPath)
		outputPath = strings.TrimSuffix(req.VideoPath, ext) + "_voiced" + ext
	}
	status = ffmpeg.Mux(ctx, req.VideoPath, track, outputPath)
	if status != nil {
		return "", o.fail(ctx, req.JobID, status)
	}

	o.report(ctx, req.JobID, StageCompleted, 100, outputPath)
	return outputPath, nil
}

// mixBackground ducks the original audio under the voice track inside the
// original speech windows. Synthetic segments never mask the ducking; with
// no original segments the background is skipped entirely.
func (o *Orchestrator) mixBackground(ctx context.Context, ws *Workspace, videoPath string,
	voiceTrack string, segments []align.TranscriptSegment) (string, *log.Status) {
	if len(segments) == 0 {
		log.Warn(ctx, "background mix requested but no original segments; skipping mix")
		return voiceTrack, nil
	}
	extracted := ws.Clip("bg_stereo")
	status := ffmpeg.ExtractAudio(ctx, videoPath, extracted)
	if status != nil {
		return "", status
	}
	background := ws.Clip("bg_mono")
	status = ffmpeg.ConvertToWav(ctx, extracted, background)
	if status != nil {
		return "", status
	}
	windows := make([]ffmpeg.SpeechWindow, len(segments))
	for i, seg := range segments {
		windows[i] = ffmpeg.SpeechWindow{Start: seg.Start, End: seg.End}
	}
	mixed := ws.Clip("mixed")
	status = ffmpeg.DuckAndMix(ctx, background, voiceTrack, windows, o.options.duckLevel(), mixed)
	if status != nil {
		return "", status
	}
	return mixed, nil
}

func (o *Orchestrator) report(ctx context.Context, jobID string, stage string, percentage int, message string) {
	status := o.reporter.ReportProgress(ctx, jobID, stage, percentage, message)
	if status != nil {
		log.Warn(ctx, "progress report failed:", status.Message)
	}
}

func (o *Orchestrator) fail(ctx context.Context, jobID string, cause *log.Status) *log.Status {
	o.report(ctx, jobID, StageFailed, 100, fmt.Sprintf("%v", cause))
	return cause
}
