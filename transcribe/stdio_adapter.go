package transcribe

import (
	"context"
	"encoding/json"
	"os"

	log "github.com/GodingWal/famflix-voice-io/logger"
	"github.com/GodingWal/famflix-voice-io/utility/stdio_exec"
)

// StdioAdapter drives a long-lived ASR helper (whisper-style) over the
// stdio line protocol.
type StdioAdapter struct {
	ctx    context.Context
	worker *stdio_exec.Worker
}

type transcribeRequest struct {
	VideoPath string `json:"video_path"`
}

type transcribeResponse struct {
	Error string `json:"error,omitempty"`
	Transcript
}

// NewStdioAdapter starts the helper named by FAMFLIX_VOICE_ASR_EXE with
// FAMFLIX_VOICE_ASR_PYTHON (default python3).
func NewStdioAdapter(ctx context.Context) (*StdioAdapter, *log.Status) {
	script := os.Getenv("FAMFLIX_VOICE_ASR_EXE")
	if script == "" {
		return nil, log.ErrorNoErr(ctx, 500, "FAMFLIX_VOICE_ASR_EXE environment variable not set")
	}
	if _, err := os.Stat(script); os.IsNotExist(err) {
		return nil, log.Error(ctx, 500, err, "ASR helper script not found", script)
	}
	python := os.Getenv("FAMFLIX_VOICE_ASR_PYTHON")
	if python == "" {
		python = "python3"
	}
	worker, status := stdio_exec.NewWorker(ctx, python, script)
	if status != nil {
		return nil, status
	}
	return &StdioAdapter{ctx: ctx, worker: worker}, nil
}

func (a *StdioAdapter) TranscribeVideo(ctx context.Context, videoPath string) (Transcript, *log.Status) {
	var response transcribeResponse
	requestJSON, err := json.Marshal(transcribeRequest{VideoPath: videoPath})
	if err != nil {
		return response.Transcript, log.Error(ctx, 500, err, "Error marshaling transcription request")
	}
	responseJSON, status := a.worker.Process(string(requestJSON))
	if status != nil {
		return response.Transcript, status
	}
	if err = json.Unmarshal([]byte(responseJSON), &response); err != nil {
		return response.Transcript, log.Error(ctx, 500, err, "Error parsing transcription response", responseJSON)
	}
	if response.Error != "" {
		return response.Transcript, log.ErrorNoErr(ctx, 500, "Transcription error:", response.Error)
	}
	return response.Transcript, nil
}

func (a *StdioAdapter) Close() {
	if a.worker != nil {
		a.worker.Close()
	}
}
