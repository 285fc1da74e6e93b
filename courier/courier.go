// Package courier delivers job results and completion notices. It owns
// the per-job log file and the list of output artifacts to report.
package courier

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/GodingWal/famflix-voice-io/decode_yaml/request"
	log "github.com/GodingWal/famflix-voice-io/logger"
)

type Courier struct {
	ctx        context.Context
	IsUnitTest bool // Set to true by notification tests.
	start      time.Time
	jobID      string
	username   string
	notify     request.Notify
	logFile    string
	outputs    []string
}

func NewCourier(ctx context.Context, req request.Request) Courier {
	var c Courier
	c.ctx = ctx
	c.start = time.Now()
	c.jobID = req.JobID
	c.username = req.Username
	c.notify = req.Notify
	logDir := os.Getenv("FAMFLIX_VOICE_LOG_DIR")
	if logDir != `` {
		c.AddPerJobLogFile(logDir)
	} else {
		logFile := os.Getenv("FAMFLIX_VOICE_LOG_FILE")
		if logFile != `` {
			c.AddLogFile(logFile)
		}
	}
	return c
}

// AddLogFile directs logging to one shared file, truncating prior content.
func (c *Courier) AddLogFile(logPath string) {
	c.logFile = logPath
	if !c.IsUnitTest {
		_ = os.Truncate(c.logFile, 0)
	}
}

// AddPerJobLogFile creates a fresh log file for this job under logDir and
// repoints the latest.log symlink at it.
func (c *Courier) AddPerJobLogFile(logDir string) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn(c.ctx, "Failed to create log directory:", err)
		return
	}
	timestamp := time.Now().Format("20060102_150405")
	jobLogFile := filepath.Join(logDir, fmt.Sprintf("%s-%s-%s.log",
		timestamp, c.username, c.jobID))
	c.logFile = jobLogFile
	log.SetOutput(jobLogFile)
	latestLink := filepath.Join(logDir, "latest.log")
	_ = os.Remove(latestLink)
	_ = os.Symlink(filepath.Base(jobLogFile), latestLink)
}

func (c *Courier) AddOutput(outputPath string) {
	if len(outputPath) > 0 {
		c.outputs = append(c.outputs, outputPath)
	}
}

func (c *Courier) GetOutputPaths() []string {
	return c.outputs
}
