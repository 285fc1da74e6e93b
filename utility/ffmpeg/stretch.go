package ffmpeg

import (
	"context"
	"fmt"
	"strings"

	log "github.com/GodingWal/famflix-voice-io/logger"
	"github.com/GodingWal/famflix-voice-io/utility/media_exec"
)

// atempo only accepts factors in [0.5, 2.0] per filter stage.
const (
	atempoMin = 0.5
	atempoMax = 2.0

	// Bounds for a stretch that stays perceptually natural.
	GentleStretchMin = 0.85
	GentleStretchMax = 1.15
)

// AtempoChain decomposes an overall tempo ratio into stages the atempo
// filter accepts. The product of the returned stages equals ratio. A
// non-positive ratio has no decomposition and returns nil.
func AtempoChain(ratio float64) []float64 {
	if ratio <= 0 {
		return nil
	}
	var stages []float64
	for ratio > atempoMax {
		stages = append(stages, atempoMax)
		ratio /= atempoMax
	}
	for ratio < atempoMin {
		stages = append(stages, atempoMin)
		ratio /= atempoMin
	}
	return append(stages, ratio)
}

// TimeStretch retimes audio to targetDuration. The tempo ratio is
// current/target; ratios outside the atempo band are decomposed into a
// chain of bounded stages.
func TimeStretch(ctx context.Context, inputPath string, targetDuration float64, outputPath string) *log.Status {
	if targetDuration <= 0 {
		return log.ErrorNoErr(ctx, 400, "TimeStretch target duration must be positive", targetDuration)
	}
	current, status := GetDuration(ctx, inputPath)
	if status != nil {
		return status
	}
	if current <= 0 {
		return log.ErrorNoErr(ctx, 500, "Cannot stretch zero-length audio", inputPath)
	}
	ratio := current / targetDuration
	return applyAtempo(ctx, inputPath, ratio, outputPath)
}

// TimeStretchGently retimes audio toward targetDuration with the effective
// ratio clamped to [0.85, 1.15] so pitch and tempo stay natural. It returns
// the duration actually achieved; callers must book-keep with the returned
// value because the clamp often stops short of the target.
func TimeStretchGently(ctx context.Context, inputPath string, targetDuration float64, outputPath string) (float64, *log.Status) {
	if targetDuration <= 0 {
		return 0, log.ErrorNoErr(ctx, 400, "TimeStretchGently target duration must be positive", targetDuration)
	}
	current, status := GetDuration(ctx, inputPath)
	if status != nil {
		return 0, status
	}
	if current <= 0 {
		return 0, log.ErrorNoErr(ctx, 500, "Cannot stretch zero-length audio", inputPath)
	}
	ratio := ClampGentle(current / targetDuration)
	status = applyAtempo(ctx, inputPath, ratio, outputPath)
	if status != nil {
		return 0, status
	}
	achieved, status := GetDuration(ctx, outputPath)
	if status != nil {
		return 0, status
	}
	return achieved, nil
}

// ClampGentle bounds a tempo ratio to the natural-sounding band.
func ClampGentle(ratio float64) float64 {
	if ratio > GentleStretchMax {
		return GentleStretchMax
	}
	if ratio < GentleStretchMin {
		return GentleStretchMin
	}
	return ratio
}

func applyAtempo(ctx context.Context, inputPath string, ratio float64, outputPath string) *log.Status {
	if ratio <= 0 {
		return log.ErrorNoErr(ctx, 400, "Tempo ratio must be positive", ratio)
	}
	stages := AtempoChain(ratio)
	parts := make([]string, len(stages))
	for i, s := range stages {
		parts[i] = fmt.Sprintf("atempo=%.6f", s)
	}
	return media_exec.Run(ctx, "ffmpeg",
		"-i", inputPath,
		"-af", strings.Join(parts, ","),
		"-acodec", "pcm_s16le",
		"-ar", fmt.Sprintf("%d", SampleRate),
		"-ac", "1",
		"-y",
		outputPath)
}
