package controller

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/GodingWal/famflix-voice-io/db"
	log "github.com/GodingWal/famflix-voice-io/logger"
	"github.com/GodingWal/famflix-voice-io/transcribe"
)

// CachedTranscriber reuses stored transcripts keyed by the video's content
// hash, so repeated jobs on the same video skip the transcription pass.
type CachedTranscriber struct {
	conn    *db.DBAdapter
	backend transcribe.Provider
}

func NewCachedTranscriber(conn *db.DBAdapter, backend transcribe.Provider) *CachedTranscriber {
	return &CachedTranscriber{conn: conn, backend: backend}
}

func (c *CachedTranscriber) TranscribeVideo(ctx context.Context, videoPath string) (transcribe.Transcript, *log.Status) {
	hash, status := sourceHash(ctx, videoPath)
	if status != nil {
		return transcribe.Transcript{}, status
	}
	stored, found, status := c.conn.SelectTranscript(hash)
	if status != nil {
		log.Warn(ctx, "Transcript lookup failed, transcribing fresh:", status.Message)
	} else if found {
		log.Info(ctx, "Reusing stored transcript for", videoPath)
		return stored, nil
	}
	transcript, status := c.backend.TranscribeVideo(ctx, videoPath)
	if status != nil {
		return transcript, status
	}
	insStatus := c.conn.InsertTranscript(hash, transcript)
	if insStatus != nil {
		log.Warn(ctx, "Failed to store transcript for reuse:", insStatus.Message)
	}
	return transcript, nil
}

func sourceHash(ctx context.Context, videoPath string) (string, *log.Status) {
	file, err := os.Open(videoPath)
	if err != nil {
		return "", log.Error(ctx, 500, err, "Error opening video for hashing", videoPath)
	}
	defer file.Close()
	hasher := sha256.New()
	if _, err = io.Copy(hasher, file); err != nil {
		return "", log.Error(ctx, 500, err, "Error hashing video", videoPath)
	}
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
