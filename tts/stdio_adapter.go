package tts

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/GodingWal/famflix-voice-io/align"
	log "github.com/GodingWal/famflix-voice-io/logger"
	"github.com/GodingWal/famflix-voice-io/utility/stdio_exec"
)

// StdioAdapter drives a long-lived synthesis helper over the stdio line
// protocol. One JSON request per line in, one JSON response per line out.
type StdioAdapter struct {
	ctx     context.Context
	worker  *stdio_exec.Worker
	tempDir string
}

type synthesisRequest struct {
	Text       string `json:"text"`
	VoiceRef   string `json:"voice_ref"`
	OutputPath string `json:"output_path"`
	Timestamps bool   `json:"timestamps"`
}

type synthesisResponse struct {
	Error       string             `json:"error,omitempty"`
	OutputPath  string             `json:"output_path"`
	Duration    float64            `json:"duration"`
	WordTimings []align.WordTiming `json:"word_timings"`
}

// NewStdioAdapter starts the helper named by FAMFLIX_VOICE_TTS_EXE with
// FAMFLIX_VOICE_TTS_PYTHON (default python3). Missing configuration is a
// ConfigurationError surfaced before any media work begins.
func NewStdioAdapter(ctx context.Context) (*StdioAdapter, *log.Status) {
	script := os.Getenv("FAMFLIX_VOICE_TTS_EXE")
	if script == "" {
		return nil, log.ErrorNoErr(ctx, 500, "FAMFLIX_VOICE_TTS_EXE environment variable not set")
	}
	if _, err := os.Stat(script); os.IsNotExist(err) {
		return nil, log.Error(ctx, 500, err, "TTS helper script not found", script)
	}
	python := os.Getenv("FAMFLIX_VOICE_TTS_PYTHON")
	if python == "" {
		python = "python3"
	}
	tempDir, err := os.MkdirTemp(os.Getenv("FAMFLIX_VOICE_TMP"), "tts_")
	if err != nil {
		return nil, log.Error(ctx, 500, err, "Error creating temp directory for TTS")
	}
	worker, status := stdio_exec.NewWorker(ctx, python, script)
	if status != nil {
		return nil, status
	}
	return &StdioAdapter{ctx: ctx, worker: worker, tempDir: tempDir}, nil
}

func (a *StdioAdapter) SynthesizeWithTimestamps(ctx context.Context, text string, voiceRef string) (SynthesisResult, *log.Status) {
	var result SynthesisResult
	response, status := a.call(ctx, text, voiceRef, true)
	if status != nil {
		return result, status
	}
	result.AudioPath = response.OutputPath
	result.TotalDuration = response.Duration
	result.WordTimings = response.WordTimings
	return result, nil
}

func (a *StdioAdapter) Synthesize(ctx context.Context, text string, voiceRef string) (string, *log.Status) {
	response, status := a.call(ctx, text, voiceRef, false)
	if status != nil {
		return "", status
	}
	return response.OutputPath, nil
}

func (a *StdioAdapter) call(ctx context.Context, text string, voiceRef string, timestamps bool) (synthesisResponse, *log.Status) {
	var response synthesisResponse
	request := synthesisRequest{
		Text:       text,
		VoiceRef:   voiceRef,
		OutputPath: filepath.Join(a.tempDir, fmt.Sprintf("synth_%s.wav", uuid.NewString())),
		Timestamps: timestamps,
	}
	requestJSON, err := json.Marshal(request)
	if err != nil {
		return response, log.Error(ctx, 500, err, "Error marshaling TTS request")
	}
	responseJSON, status := a.worker.Process(string(requestJSON))
	if status != nil {
		return response, status
	}
	if err = json.Unmarshal([]byte(responseJSON), &response); err != nil {
		return response, log.Error(ctx, 500, err, "Error parsing TTS response", responseJSON)
	}
	if response.Error != "" {
		return response, log.ErrorNoErr(ctx, 500, "TTS generation error:", response.Error)
	}
	if response.OutputPath == "" {
		return response, log.ErrorNoErr(ctx, 500, "TTS response missing output_path")
	}
	return response, nil
}

// Close stops the helper process and removes the adapter's temp files.
func (a *StdioAdapter) Close() {
	if a.worker != nil {
		a.worker.Close()
	}
	if a.tempDir != "" {
		_ = os.RemoveAll(a.tempDir)
	}
}
