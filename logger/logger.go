package logger

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.Mutex
	zl     = newLogger(os.Stderr)
	closer *os.File
)

func newLogger(out *os.File) zerolog.Logger {
	level := zerolog.InfoLevel
	if env := os.Getenv("FAMFLIX_VOICE_LOG_LEVEL"); env != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(env)); err == nil {
			level = parsed
		}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// SetOutput redirects logging to a file path, or to "stdout"/"stderr".
// Used by the courier to give each job its own log file.
func SetOutput(target string) {
	mu.Lock()
	defer mu.Unlock()
	if closer != nil {
		_ = closer.Close()
		closer = nil
	}
	switch target {
	case "stdout":
		zl = newLogger(os.Stdout)
	case "", "stderr":
		zl = newLogger(os.Stderr)
	default:
		file, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			zl = newLogger(os.Stderr)
			zl.Warn().Msg("unable to open log file " + target + ", using stderr")
			return
		}
		closer = file
		zl = newLogger(file)
	}
}

func Debug(ctx context.Context, messages ...any) {
	mu.Lock()
	defer mu.Unlock()
	zl.Debug().Msg(joinMessage(messages))
}

func Info(ctx context.Context, messages ...any) {
	mu.Lock()
	defer mu.Unlock()
	zl.Info().Msg(joinMessage(messages))
}

func Warn(ctx context.Context, messages ...any) {
	mu.Lock()
	defer mu.Unlock()
	zl.Warn().Msg(joinMessage(messages))
}

// Error logs err with its message parts and returns a *Status for the caller
// to propagate. The trace records where in the pipeline the error surfaced.
func Error(ctx context.Context, code int, err error, messages ...any) *Status {
	status := &Status{Code: code, Message: joinMessage(messages), Err: err, Trace: callerTrace()}
	mu.Lock()
	defer mu.Unlock()
	event := zl.Error().Int("code", code).Str("at", status.Trace)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg(status.Message)
	return status
}

// ErrorNoErr is Error for failures that have no underlying error value.
func ErrorNoErr(ctx context.Context, code int, messages ...any) *Status {
	status := &Status{Code: code, Message: joinMessage(messages), Trace: callerTrace()}
	mu.Lock()
	defer mu.Unlock()
	zl.Error().Int("code", code).Str("at", status.Trace).Msg(status.Message)
	return status
}
