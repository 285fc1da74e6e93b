package logger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestErrorStatus(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("disk full")
	status := Error(ctx, 500, cause, "Error writing audio", "/tmp/a.wav")
	if status.Code != 500 {
		t.Error("code =", status.Code)
	}
	if status.Message != "Error writing audio /tmp/a.wav" {
		t.Error("message =", status.Message)
	}
	if !errors.Is(status, cause) {
		t.Error("status should unwrap to its cause")
	}
	if !strings.Contains(status.Trace, "logger_test.go") {
		t.Error("trace should point at the caller, got", status.Trace)
	}
	if !strings.Contains(status.Error(), "disk full") {
		t.Error("Error() should carry the cause, got", status.Error())
	}
}

func TestErrorNoErr(t *testing.T) {
	ctx := context.Background()
	status := ErrorNoErr(ctx, 400, "Required field video_path: is empty")
	if status.Code != 400 {
		t.Error("code =", status.Code)
	}
	if status.Unwrap() != nil {
		t.Error("no underlying error expected")
	}
}

func TestNilStatusError(t *testing.T) {
	var status *Status
	if status.Error() != "" {
		t.Error("nil status should print empty")
	}
}

func TestSetOutputFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "job.log")
	SetOutput(logFile)
	defer SetOutput("stderr")
	Info(context.Background(), "pipeline started")
	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "pipeline started") {
		t.Error("log file missing message:", string(content))
	}
}
