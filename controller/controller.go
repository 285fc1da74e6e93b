// Package controller runs one voice-replacement job end to end: decode the
// request, assemble providers, enforce the wall-clock timeout, record
// progress, and deliver the terminal notification.
package controller

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/GodingWal/famflix-voice-io/courier"
	"github.com/GodingWal/famflix-voice-io/db"
	"github.com/GodingWal/famflix-voice-io/decode_yaml"
	"github.com/GodingWal/famflix-voice-io/decode_yaml/request"
	log "github.com/GodingWal/famflix-voice-io/logger"
	"github.com/GodingWal/famflix-voice-io/transcribe"
	"github.com/GodingWal/famflix-voice-io/tts"
	"github.com/GodingWal/famflix-voice-io/voice_swap"
)

type Controller struct {
	ctx     context.Context
	req     request.Request
	conn    db.DBAdapter
	courier courier.Courier
}

func NewController(ctx context.Context, yamlContent []byte) (Controller, *log.Status) {
	var c Controller
	c.ctx = ctx
	decoder := decode_yaml.NewRequestDecoder(ctx)
	req, status := decoder.Process(yamlContent)
	if status != nil {
		return c, status
	}
	if req.JobID == `` {
		req.JobID = uuid.NewString()
	}
	c.req = req
	c.courier = courier.NewCourier(ctx, req)
	return c, nil
}

// Process runs the job under its wall-clock timeout and reports the
// terminal state on every configured channel. The output path is returned
// on success.
func (c *Controller) Process() (string, *log.Status) {
	conn, status := db.NewDBAdapter(c.ctx, jobsDBPath())
	if status != nil {
		_ = c.courier.Notification(status)
		return "", status
	}
	c.conn = conn
	defer c.conn.Close()

	stopWatch := courier.LongRunNotify(c.ctx, c.req)
	defer stopWatch()

	timeout := time.Duration(c.req.TimeoutMinutes) * time.Minute
	output, status := c.runWithTimeout(timeout)
	if status == nil {
		_ = c.conn.SetJobOutput(c.req.JobID, output)
		c.courier.AddOutput(output)
	}
	notifyStatus := c.courier.Notification(status)
	if notifyStatus != nil {
		log.Warn(c.ctx, "Terminal notification failed:", notifyStatus.Message)
	}
	return output, status
}

// runWithTimeout cancels the job context at the deadline, which kills any
// ffmpeg or helper subprocess started under it.
func (c *Controller) runWithTimeout(timeout time.Duration) (string, *log.Status) {
	ctx, cancel := context.WithTimeout(c.ctx, timeout)
	defer cancel()

	type result struct {
		output string
		status *log.Status
	}
	done := make(chan result, 1)
	go func() {
		output, status := c.processJob(ctx)
		done <- result{output, status}
	}()

	select {
	case r := <-done:
		return r.output, r.status
	case <-ctx.Done():
		status := log.ErrorNoErr(c.ctx, 504, "Job", c.req.JobID, "exceeded its", timeout.String(), "timeout")
		_ = c.conn.UpsertJobStage(c.req.JobID, c.req.VideoPath, voice_swap.StageFailed, 100, status.Message)
		return "", status
	}
}

func (c *Controller) processJob(ctx context.Context) (string, *log.Status) {
	ttsAdapter, status := tts.NewStdioAdapter(ctx)
	if status != nil {
		return "", status
	}
	defer ttsAdapter.Close()

	var asr transcribe.Provider
	if os.Getenv("FAMFLIX_VOICE_ASR_EXE") != `` {
		asrAdapter, status := transcribe.NewStdioAdapter(ctx)
		if status != nil {
			return "", status
		}
		defer asrAdapter.Close()
		asr = NewCachedTranscriber(&c.conn, asrAdapter)
	}

	reporter := NewDBReporter(&c.conn, c.req.VideoPath)
	options := voice_swap.Options{
		OutputPath:    c.req.OutputPath,
		MixBackground: c.req.MixBackground,
		DuckLevelDb:   c.req.DuckLevelDb,
	}
	orchestrator := voice_swap.NewOrchestrator(ttsAdapter, asr, reporter, options)
	return orchestrator.ProcessVideo(ctx, voice_swap.Request{
		JobID:          c.req.JobID,
		VideoPath:      c.req.VideoPath,
		VoiceRef:       c.req.VoiceRef,
		TranscriptText: c.req.TranscriptText,
		Segments:       c.req.Segments,
	})
}

// jobsDBPath places the shared job database under FAMFLIX_VOICE_FILES,
// falling back to the working directory.
func jobsDBPath() string {
	dir := os.Getenv("FAMFLIX_VOICE_FILES")
	if dir == `` {
		dir = `.`
	}
	return filepath.Join(dir, "famflix_jobs.db")
}
