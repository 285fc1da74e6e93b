package media_exec

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	log "github.com/GodingWal/famflix-voice-io/logger"
)

// stderrTailLen bounds how much diagnostic output is carried in a Status.
// ffmpeg writes its whole banner to stderr; the failure reason is at the end.
const stderrTailLen = 500

// Run executes one external media tool invocation and waits for it to exit.
// Every audio primitive goes through here so that a non-zero exit always
// produces a Status carrying the tail of the tool's stderr, never a silent
// fallback. The context bounds the subprocess; a cancelled or timed-out
// context kills the process.
func Run(ctx context.Context, command string, args ...string) *log.Status {
	cmd := exec.CommandContext(ctx, command, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		if ctx.Err() != nil {
			return log.Error(ctx, 500, ctx.Err(), "Media tool killed by context", command)
		}
		return log.Error(ctx, 500, err, "Media tool failed:", command, StderrTail(stderr.Bytes()))
	}
	return nil
}

// RunOutput is Run for tools whose result arrives on stdout, such as ffprobe.
func RunOutput(ctx context.Context, command string, args ...string) (string, *log.Status) {
	cmd := exec.CommandContext(ctx, command, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		if ctx.Err() != nil {
			return "", log.Error(ctx, 500, ctx.Err(), "Media tool killed by context", command)
		}
		return "", log.Error(ctx, 500, err, "Media tool failed:", command, StderrTail(stderr.Bytes()))
	}
	return strings.TrimSpace(stdout.String()), nil
}

// StderrTail returns the last stderrTailLen characters of diagnostic output.
func StderrTail(stderr []byte) string {
	text := strings.TrimSpace(string(stderr))
	if len(text) > stderrTailLen {
		text = text[len(text)-stderrTailLen:]
	}
	return text
}
