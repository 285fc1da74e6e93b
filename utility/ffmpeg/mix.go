package ffmpeg

import (
	"context"
	"fmt"
	"math"
	"strings"

	log "github.com/GodingWal/famflix-voice-io/logger"
	"github.com/GodingWal/famflix-voice-io/utility/media_exec"
)

// SpeechWindow is one interval on the original timeline during which the
// background should duck under the new voice.
type SpeechWindow struct {
	Start float64
	End   float64
}

// DuckAndMix attenuates the original background track by duckLevelDb only
// inside the speech windows, leaves it at full gain elsewhere, then mixes
// it additively with the voice track at unity weight. Output duration is
// the longer of the two inputs.
func DuckAndMix(ctx context.Context, backgroundPath string, voicePath string,
	windows []SpeechWindow, duckLevelDb float64, outputPath string) *log.Status {
	if len(windows) == 0 {
		return log.ErrorNoErr(ctx, 400, "DuckAndMix requires at least one speech window")
	}
	gain := math.Pow(10, duckLevelDb/20)
	enable := make([]string, len(windows))
	for i, w := range windows {
		enable[i] = fmt.Sprintf("between(t,%.6f,%.6f)", w.Start, w.End)
	}
	filter := fmt.Sprintf(
		"[0:a]volume=%.6f:enable='%s'[bg];[bg][1:a]amix=inputs=2:duration=longest:normalize=0[out]",
		gain, strings.Join(enable, "+"))
	return media_exec.Run(ctx, "ffmpeg",
		"-i", backgroundPath,
		"-i", voicePath,
		"-filter_complex", filter,
		"-map", "[out]",
		"-acodec", "pcm_s16le",
		"-ar", fmt.Sprintf("%d", SampleRate),
		"-ac", "1",
		"-y",
		outputPath)
}
