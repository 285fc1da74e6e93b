package voice_swap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/GodingWal/famflix-voice-io/logger"
)

// Workspace is one job's private temp-file namespace. Every intermediate
// clip lives here; Cleanup removes all of them on success and failure
// paths alike. Concurrent jobs never share a workspace, so no locking is
// needed anywhere in the pipeline.
type Workspace struct {
	ctx   context.Context
	JobID string
	Dir   string
	seq   int
}

func NewWorkspace(ctx context.Context, jobID string) (*Workspace, *log.Status) {
	dir, err := os.MkdirTemp(os.Getenv("FAMFLIX_VOICE_TMP"), "job_"+jobID+"_")
	if err != nil {
		return nil, log.Error(ctx, 500, err, "Error creating job workspace")
	}
	return &Workspace{ctx: ctx, JobID: jobID, Dir: dir}, nil
}

// Clip hands out the next intermediate file path. The sequence prefix keeps
// listings in pipeline order when debugging a kept workspace.
func (w *Workspace) Clip(tag string) string {
	w.seq++
	return filepath.Join(w.Dir, fmt.Sprintf("%03d_%s.wav", w.seq, tag))
}

// File is Clip for non-wav artifacts.
func (w *Workspace) File(name string) string {
	w.seq++
	return filepath.Join(w.Dir, fmt.Sprintf("%03d_%s", w.seq, name))
}

func (w *Workspace) Cleanup() {
	if w.Dir != "" {
		err := os.RemoveAll(w.Dir)
		if err != nil {
			log.Warn(w.ctx, "Unable to remove job workspace", w.Dir, err)
		}
		w.Dir = ""
	}
}
