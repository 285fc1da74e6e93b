package courier

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/GodingWal/famflix-voice-io/decode_yaml/request"
)

func testRequest() request.Request {
	var req request.Request
	req.JobID = "testjob"
	req.Username = "testuser"
	req.VideoPath = "/tmp/video.mp4"
	req.VoiceRef = "/tmp/ref.wav"
	return req
}

func TestPerJobLogging(t *testing.T) {
	tmpDir := t.TempDir()
	os.Setenv("FAMFLIX_VOICE_LOG_DIR", tmpDir)
	defer os.Unsetenv("FAMFLIX_VOICE_LOG_DIR")

	c := NewCourier(context.Background(), testRequest())
	c.IsUnitTest = true

	if c.logFile == "" {
		t.Fatal("Log file was not set")
	}
	if !strings.HasPrefix(c.logFile, tmpDir) {
		t.Errorf("Log file %s is not in expected directory %s", c.logFile, tmpDir)
	}
	basename := filepath.Base(c.logFile)
	if !strings.Contains(basename, "-testuser-testjob") {
		t.Errorf("Log filename %s does not match timestamp-username-jobid.log", basename)
	}
	if !strings.HasSuffix(basename, ".log") {
		t.Errorf("Log filename %s does not end with .log", basename)
	}
	if len(basename) < 1 || (basename[0] < '0' || basename[0] > '9') {
		t.Errorf("Log filename %s should start with timestamp", basename)
	}
}

func TestLegacyLogging(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "test.log")
	if err := os.WriteFile(tmpFile, []byte("old content\n"), 0644); err != nil {
		t.Fatal(err)
	}
	os.Setenv("FAMFLIX_VOICE_LOG_FILE", tmpFile)
	defer os.Unsetenv("FAMFLIX_VOICE_LOG_FILE")
	os.Unsetenv("FAMFLIX_VOICE_LOG_DIR")

	c := NewCourier(context.Background(), testRequest())
	c.IsUnitTest = false
	c.AddLogFile(tmpFile)

	info, err := os.Stat(tmpFile)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Errorf("Legacy log file was not truncated, size: %d", info.Size())
	}
}

func TestMultipleJobsSeparateLogs(t *testing.T) {
	tmpDir := t.TempDir()
	os.Setenv("FAMFLIX_VOICE_LOG_DIR", tmpDir)
	defer os.Unsetenv("FAMFLIX_VOICE_LOG_DIR")

	c1 := NewCourier(context.Background(), testRequest())
	c1.IsUnitTest = true
	time.Sleep(time.Second * 2)
	c2 := NewCourier(context.Background(), testRequest())
	c2.IsUnitTest = true

	if c1.logFile == c2.logFile {
		t.Error("Two jobs created the same log file, expected different files")
	}
	if filepath.Dir(c1.logFile) != filepath.Dir(c2.logFile) {
		t.Error("Log files are in different directories")
	}
}

func TestNoLoggingEnvVar(t *testing.T) {
	os.Unsetenv("FAMFLIX_VOICE_LOG_DIR")
	os.Unsetenv("FAMFLIX_VOICE_LOG_FILE")

	c := NewCourier(context.Background(), testRequest())
	if c.logFile != "" {
		t.Errorf("Expected no log file, got: %s", c.logFile)
	}
}
