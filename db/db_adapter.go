package db

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/GodingWal/famflix-voice-io/align"
	log "github.com/GodingWal/famflix-voice-io/logger"
	"github.com/GodingWal/famflix-voice-io/transcribe"
)

// DBAdapter owns the job-local SQLite database: stored transcripts keyed by
// source hash for reuse across jobs on the same video, and job progress
// milestones.
type DBAdapter struct {
	ctx    context.Context
	DBPath string
	DB     *sql.DB
}

func NewDBAdapter(ctx context.Context, dbPath string) (DBAdapter, *log.Status) {
	var adapter DBAdapter
	adapter.ctx = ctx
	adapter.DBPath = dbPath
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return adapter, log.Error(ctx, 500, err, "Error opening database", dbPath)
	}
	adapter.DB = db
	status := adapter.createTables()
	if status != nil {
		return adapter, status
	}
	return adapter, nil
}

func (d *DBAdapter) createTables() *log.Status {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS transcripts (
			source_hash TEXT PRIMARY KEY,
			full_text TEXT NOT NULL,
			duration REAL NOT NULL,
			created_at TEXT NOT NULL)`,
		`CREATE TABLE IF NOT EXISTS transcript_segments (
			source_hash TEXT NOT NULL,
			seq INTEGER NOT NULL,
			start_ts REAL NOT NULL,
			end_ts REAL NOT NULL,
			segment_text TEXT NOT NULL,
			PRIMARY KEY (source_hash, seq))`,
		`CREATE TABLE IF NOT EXISTS jobs (
			job_id TEXT PRIMARY KEY,
			source_path TEXT NOT NULL,
			stage TEXT NOT NULL,
			percentage INTEGER NOT NULL,
			message TEXT,
			output_path TEXT,
			updated_at TEXT NOT NULL)`,
	}
	for _, query := range queries {
		_, err := d.DB.Exec(query)
		if err != nil {
			return log.Error(d.ctx, 500, err, "Error creating table")
		}
	}
	return nil
}

// InsertTranscript stores a transcript for later reuse. An existing row for
// the same source is replaced.
func (d *DBAdapter) InsertTranscript(sourceHash string, transcript transcribe.Transcript) *log.Status {
	tx, err := d.DB.Begin()
	if err != nil {
		return log.Error(d.ctx, 500, err, "Error beginning transcript insert")
	}
	defer tx.Rollback()
	_, err = tx.Exec(`INSERT OR REPLACE INTO transcripts (source_hash, full_text, duration, created_at)
		VALUES (?, ?, ?, ?)`,
		sourceHash, transcript.FullText, transcript.Duration, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return log.Error(d.ctx, 500, err, "Error inserting transcript")
	}
	_, err = tx.Exec(`DELETE FROM transcript_segments WHERE source_hash = ?`, sourceHash)
	if err != nil {
		return log.Error(d.ctx, 500, err, "Error clearing transcript segments")
	}
	for i, seg := range transcript.Segments {
		_, err = tx.Exec(`INSERT INTO transcript_segments (source_hash, seq, start_ts, end_ts, segment_text)
			VALUES (?, ?, ?, ?, ?)`, sourceHash, i, seg.Start, seg.End, seg.Text)
		if err != nil {
			return log.Error(d.ctx, 500, err, "Error inserting transcript segment", i)
		}
	}
	err = tx.Commit()
	if err != nil {
		return log.Error(d.ctx, 500, err, "Error committing transcript insert")
	}
	return nil
}

// SelectTranscript returns a stored transcript, or found=false when the
// source has not been transcribed before.
func (d *DBAdapter) SelectTranscript(sourceHash string) (transcribe.Transcript, bool, *log.Status) {
	var result transcribe.Transcript
	row := d.DB.QueryRow(`SELECT full_text, duration FROM transcripts WHERE source_hash = ?`, sourceHash)
	err := row.Scan(&result.FullText, &result.Duration)
	if err == sql.ErrNoRows {
		return result, false, nil
	}
	if err != nil {
		return result, false, log.Error(d.ctx, 500, err, "Error reading transcript", sourceHash)
	}
	rows, err := d.DB.Query(`SELECT start_ts, end_ts, segment_text FROM transcript_segments
		WHERE source_hash = ? ORDER BY seq`, sourceHash)
	if err != nil {
		return result, false, log.Error(d.ctx, 500, err, "Error reading transcript segments", sourceHash)
	}
	defer rows.Close()
	for rows.Next() {
		var seg align.TranscriptSegment
		err = rows.Scan(&seg.Start, &seg.End, &seg.Text)
		if err != nil {
			return result, false, log.Error(d.ctx, 500, err, "Error scanning transcript segment")
		}
		result.Segments = append(result.Segments, seg)
	}
	err = rows.Err()
	if err != nil {
		return result, false, log.Error(d.ctx, 500, err, "Error at end of transcript segments")
	}
	return result, true, nil
}

// UpsertJobStage records a progress milestone for a job.
func (d *DBAdapter) UpsertJobStage(jobID string, sourcePath string, stage string, percentage int, message string) *log.Status {
	_, err := d.DB.Exec(`INSERT INTO jobs (job_id, source_path, stage, percentage, message, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(job_id) DO UPDATE SET stage=excluded.stage, percentage=excluded.percentage,
			message=excluded.message, updated_at=excluded.updated_at`,
		jobID, sourcePath, stage, percentage, message, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return log.Error(d.ctx, 500, err, "Error updating job stage", jobID, stage)
	}
	return nil
}

// SetJobOutput records the final artifact path for a completed job.
func (d *DBAdapter) SetJobOutput(jobID string, outputPath string) *log.Status {
	_, err := d.DB.Exec(`UPDATE jobs SET output_path = ?, updated_at = ? WHERE job_id = ?`,
		outputPath, time.Now().UTC().Format(time.RFC3339), jobID)
	if err != nil {
		return log.Error(d.ctx, 500, err, "Error recording job output", jobID)
	}
	return nil
}

// SelectJobStage returns the current stage and percentage for a job.
func (d *DBAdapter) SelectJobStage(jobID string) (string, int, *log.Status) {
	var stage string
	var percentage int
	row := d.DB.QueryRow(`SELECT stage, percentage FROM jobs WHERE job_id = ?`, jobID)
	err := row.Scan(&stage, &percentage)
	if err != nil {
		return "", 0, log.Error(d.ctx, 500, err, "Error reading job stage", jobID)
	}
	return stage, percentage, nil
}

func (d *DBAdapter) Close() {
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
