package ffmpeg

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	log "github.com/GodingWal/famflix-voice-io/logger"
	"github.com/GodingWal/famflix-voice-io/utility/media_exec"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

type ProbeData struct {
	Format ProbeFormat `json:"format"`
}

type ProbeFormat struct {
	Filename       string `json:"filename"`
	NBStreams      int    `json:"nb_streams"`
	FormatName     string `json:"format_name"`
	FormatLongName string `json:"format_long_name"`
	StartTime      string `json:"start_time"`
	Duration       string `json:"duration"`
	Size           string `json:"size"`
	BitRate        string `json:"bit_rate"`
	ProbeScore     int    `json:"probe_score"`
}

// GetDuration reports the duration of an audio or video file in seconds.
// A file whose container does not carry a duration falls back to a stream
// probe, so outputs of our own primitives round-trip through here.
func GetDuration(ctx context.Context, filePath string) (float64, *log.Status) {
	var result float64
	probeData, status := GetProbeData(ctx, filePath)
	if status != nil {
		return result, status
	}
	if strings.TrimSpace(probeData.Format.Duration) != "" {
		var err error
		result, err = strconv.ParseFloat(probeData.Format.Duration, 64)
		if err != nil {
			return result, log.Error(ctx, 500, err, "Data conversion error in ffmpeg.GetDuration")
		}
		return result, nil
	}
	return computeDuration(ctx, filePath)
}

func GetProbeData(ctx context.Context, filePath string) (ProbeData, *log.Status) {
	var result ProbeData
	data, err := ffmpeg.Probe(filePath)
	if err != nil {
		return result, log.Error(ctx, 500, err, "Error in ffmpeg.GetProbeData", filePath)
	}
	err = json.Unmarshal([]byte(data), &result)
	if err != nil {
		return result, log.Error(ctx, 500, err, "Error in ffmpeg.GetProbeData", filePath)
	}
	return result, nil
}

// computeDuration asks ffprobe for the audio stream duration directly.
func computeDuration(ctx context.Context, filePath string) (float64, *log.Status) {
	output, status := media_exec.RunOutput(ctx, "ffprobe",
		"-v", "error",
		"-select_streams", "a:0",
		"-show_entries", "stream=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		filePath)
	if status != nil {
		return 0, status
	}
	result, err := strconv.ParseFloat(strings.TrimSpace(output), 64)
	if err != nil || result <= 0 {
		return 0, log.ErrorNoErr(ctx, 500, "Unable to determine duration of", filePath)
	}
	return result, nil
}
