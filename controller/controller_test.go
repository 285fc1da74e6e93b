package controller

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/GodingWal/famflix-voice-io/db"
	log "github.com/GodingWal/famflix-voice-io/logger"
	"github.com/GodingWal/famflix-voice-io/transcribe"
	"github.com/GodingWal/famflix-voice-io/voice_swap"
)

func testDB(t *testing.T) db.DBAdapter {
	t.Helper()
	ctx := context.Background()
	conn, status := db.NewDBAdapter(ctx, filepath.Join(t.TempDir(), "jobs.db"))
	if status != nil {
		t.Fatal(status)
	}
	t.Cleanup(conn.Close)
	return conn
}

func TestNewControllerRejectsBadRequest(t *testing.T) {
	ctx := context.Background()
	_, status := NewController(ctx, []byte("transcript_text: hello\n"))
	if status == nil {
		t.Fatal("expected a validation error")
	}
}

func TestNewControllerAssignsJobID(t *testing.T) {
	ctx := context.Background()
	content := `video_path: /tmp/v.mp4
voice_ref: /tmp/r.wav
transcript_text: hi
`
	c, status := NewController(ctx, []byte(content))
	if status != nil {
		t.Fatal(status)
	}
	if c.req.JobID == "" {
		t.Error("expected a generated job id")
	}
}

func TestDBReporter(t *testing.T) {
	ctx := context.Background()
	conn := testDB(t)
	reporter := NewDBReporter(&conn, "/tmp/v.mp4")
	status := reporter.ReportProgress(ctx, "job1", voice_swap.StageTranscribing, 15, "")
	if status != nil {
		t.Fatal(status)
	}
	stage, pct, status := conn.SelectJobStage("job1")
	if status != nil {
		t.Fatal(status)
	}
	if stage != voice_swap.StageTranscribing || pct != 15 {
		t.Errorf("stage=%s pct=%d", stage, pct)
	}
}

type countingTranscriber struct {
	calls int
}

func (c *countingTranscriber) TranscribeVideo(ctx context.Context, videoPath string) (transcribe.Transcript, *log.Status) {
	c.calls++
	var result transcribe.Transcript
	result.FullText = "hello world"
	result.Duration = 2.5
	return result, nil
}

func TestCachedTranscriber(t *testing.T) {
	ctx := context.Background()
	conn := testDB(t)
	video := filepath.Join(t.TempDir(), "video.mp4")
	if err := os.WriteFile(video, []byte("fake video bytes"), 0644); err != nil {
		t.Fatal(err)
	}
	backend := &countingTranscriber{}
	cached := NewCachedTranscriber(&conn, backend)

	first, status := cached.TranscribeVideo(ctx, video)
	if status != nil {
		t.Fatal(status)
	}
	second, status := cached.TranscribeVideo(ctx, video)
	if status != nil {
		t.Fatal(status)
	}
	if backend.calls != 1 {
		t.Errorf("backend called %d times, want 1", backend.calls)
	}
	if first.FullText != second.FullText {
		t.Error("stored transcript differs from fresh one")
	}
}

func TestRunWithTimeout(t *testing.T) {
	ctx := context.Background()
	content := `job_id: slowjob
video_path: /tmp/v.mp4
voice_ref: /tmp/r.wav
transcript_text: hi
`
	c, status := NewController(ctx, []byte(content))
	if status != nil {
		t.Fatal(status)
	}
	c.conn = testDB(t)
	// No TTS helper is configured, so the job fails fast rather than
	// timing out.
	os.Unsetenv("FAMFLIX_VOICE_TTS_EXE")
	_, status = c.runWithTimeout(time.Minute)
	if status == nil {
		t.Fatal("expected a configuration error")
	}
	if status.Code != 500 {
		t.Errorf("code = %d, want 500", status.Code)
	}
}
