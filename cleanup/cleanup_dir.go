// Package cleanup removes stale working directories left behind by jobs
// that were killed before their own cleanup could run.
package cleanup

import (
	"context"
	"os"
	"path/filepath"
	"time"

	log "github.com/GodingWal/famflix-voice-io/logger"
)

// CleanupWorkDirectories sweeps the download and temp areas. Job working
// directories are normally removed by the job itself; anything older than
// a day here is an orphan.
func CleanupWorkDirectories(ctx context.Context) {
	filesDir := os.Getenv("FAMFLIX_VOICE_FILES")
	maxAge := 24 * time.Hour
	_ = CleanupDirectory(ctx, filesDir, maxAge)
	tmpDir := os.Getenv("FAMFLIX_VOICE_TMP")
	_ = CleanupDirectory(ctx, tmpDir, maxAge)
}

func CleanupDirectory(ctx context.Context, directory string, maxAge time.Duration) *log.Status {
	now := time.Now()
	count := 0
	entries, err := os.ReadDir(directory)
	if err != nil {
		return log.Error(ctx, 500, err, "Error reading directory", directory)
	}
	for _, entry := range entries {
		dirPath := filepath.Join(directory, entry.Name())
		var info os.FileInfo
		info, err = os.Stat(dirPath)
		if err != nil {
			log.Warn(ctx, "Unable to stat directory", dirPath, err)
			continue
		}
		if now.Sub(info.ModTime()) > maxAge {
			err = os.RemoveAll(dirPath)
			if err != nil {
				log.Warn(ctx, "Unable to remove directory", dirPath, err)
				continue
			}
			count++
		}
	}
	log.Info(ctx, "Removed from directory", directory, count)
	return nil
}
