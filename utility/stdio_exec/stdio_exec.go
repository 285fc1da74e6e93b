package stdio_exec

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"strings"
	"sync"

	log "github.com/GodingWal/famflix-voice-io/logger"
)

// Worker wraps a long-lived helper process (the TTS or ASR backend) speaking
// a line protocol: one JSON request in on stdin, one JSON response out on
// stdout. Stderr is drained on a goroutine; the last error line is held and
// returned in preference to whatever arrives on stdout, because the helper
// reports its failures there.
type Worker struct {
	ctx       context.Context
	command   string
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    io.ReadCloser
	stderr    io.ReadCloser
	writer    *bufio.Writer
	reader    *bufio.Reader
	stderrWg  sync.WaitGroup
	workerErr *log.Status
	errMutex  sync.Mutex
}

func NewWorker(ctx context.Context, command string, args ...string) (*Worker, *log.Status) {
	var w Worker
	w.ctx = ctx
	w.command = command
	w.cmd = exec.CommandContext(ctx, command, args...)
	var err error
	w.stdin, err = w.cmd.StdinPipe()
	if err != nil {
		return &w, log.Error(ctx, 500, err, "Unable to open stdin of", command)
	}
	w.stdout, err = w.cmd.StdoutPipe()
	if err != nil {
		return &w, log.Error(ctx, 500, err, "Unable to open stdout of", command)
	}
	w.stderr, err = w.cmd.StderrPipe()
	if err != nil {
		return &w, log.Error(ctx, 500, err, "Unable to open stderr of", command)
	}
	err = w.cmd.Start()
	if err != nil {
		return &w, log.Error(ctx, 500, err, "Unable to start", command)
	}
	w.handleStderr()
	w.writer = bufio.NewWriterSize(w.stdin, 4096)
	w.reader = bufio.NewReaderSize(w.stdout, 65536)
	return &w, nil
}

func (w *Worker) handleStderr() {
	w.stderrWg.Add(1)
	go func() {
		defer w.stderrWg.Done()
		scanner := bufio.NewScanner(w.stderr)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if len(line) == 0 {
				continue
			}
			if strings.HasPrefix(line, "ERROR") || strings.Contains(line, "Error") {
				status := log.ErrorNoErr(w.ctx, 500, w.command, line)
				w.errMutex.Lock()
				w.workerErr = status
				w.errMutex.Unlock()
			} else {
				log.Debug(w.ctx, w.command, line)
			}
		}
		if err := scanner.Err(); err != nil {
			_ = log.Error(w.ctx, 500, err, "Error reading stderr of", w.command)
		}
	}()
}

func (w *Worker) getWorkerErr() *log.Status {
	w.errMutex.Lock()
	defer w.errMutex.Unlock()
	return w.workerErr
}

// Process sends one request line and blocks for one response line.
func (w *Worker) Process(input string) (string, *log.Status) {
	if status := w.getWorkerErr(); status != nil {
		return "", status
	}
	_, err := w.writer.WriteString(input + "\n")
	if err != nil {
		return "", log.Error(w.ctx, 500, err, "Error writing to", w.command)
	}
	err = w.writer.Flush()
	if err != nil {
		return "", log.Error(w.ctx, 500, err, "Error flushing to", w.command)
	}
	result, err := w.reader.ReadString('\n')
	if err != nil {
		return "", log.Error(w.ctx, 500, err, "Error reading response from", w.command)
	}
	if status := w.getWorkerErr(); status != nil {
		return "", status
	}
	return strings.TrimRight(result, "\n"), nil
}

func (w *Worker) Close() {
	if w.writer != nil {
		_ = w.writer.Flush()
	}
	if w.stdin != nil {
		_ = w.stdin.Close()
	}
	w.stderrWg.Wait()
	if w.cmd != nil && w.cmd.Process != nil {
		err := w.cmd.Wait()
		if err != nil {
			// Do not return the error, the stderr status already explains it
			_ = log.Error(w.ctx, 500, err, "Worker exited with error", w.command)
		}
	}
}
