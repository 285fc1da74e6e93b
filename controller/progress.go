package controller

import (
	"context"

	"github.com/GodingWal/famflix-voice-io/db"
	log "github.com/GodingWal/famflix-voice-io/logger"
)

// DBReporter persists job milestones so callers polling the job table see
// live progress.
type DBReporter struct {
	conn       *db.DBAdapter
	sourcePath string
}

func NewDBReporter(conn *db.DBAdapter, sourcePath string) *DBReporter {
	return &DBReporter{conn: conn, sourcePath: sourcePath}
}

func (r *DBReporter) ReportProgress(ctx context.Context, jobID string, stage string,
	percentage int, message string) *log.Status {
	log.Info(ctx, "Job", jobID, stage, percentage)
	return r.conn.UpsertJobStage(jobID, r.sourcePath, stage, percentage, message)
}
