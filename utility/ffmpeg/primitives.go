package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/GodingWal/famflix-voice-io/logger"
	"github.com/GodingWal/famflix-voice-io/utility/media_exec"
)

const (
	SampleRate = 44100
	// Audio bitrate used when muxing the voice track back into the video.
	MuxAudioBitrate = "192k"
)

// ExtractAudio pulls the audio track of a video into a stereo PCM wav.
// Stereo is kept because this output is the background-music source.
func ExtractAudio(ctx context.Context, videoPath string, outputPath string) *log.Status {
	return media_exec.Run(ctx, "ffmpeg",
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", fmt.Sprintf("%d", SampleRate),
		"-ac", "2",
		"-y",
		outputPath)
}

// ConvertToWav normalizes any audio input to mono PCM at the pipeline rate.
func ConvertToWav(ctx context.Context, inputPath string, outputPath string) *log.Status {
	return media_exec.Run(ctx, "ffmpeg",
		"-i", inputPath,
		"-acodec", "pcm_s16le",
		"-ar", fmt.Sprintf("%d", SampleRate),
		"-ac", "1",
		"-y",
		outputPath)
}

// GenerateSilence writes a mono silent wav of exactly the given duration.
func GenerateSilence(ctx context.Context, duration float64, outputPath string) *log.Status {
	return media_exec.Run(ctx, "ffmpeg",
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=r=%d:cl=mono", SampleRate),
		"-t", fmt.Sprintf("%.6f", duration),
		"-acodec", "pcm_s16le",
		"-ar", fmt.Sprintf("%d", SampleRate),
		"-ac", "1",
		"-y",
		outputPath)
}

// ExtractSegment copies an arbitrary sub-clip out of an audio file, mono.
func ExtractSegment(ctx context.Context, inputPath string, startTime float64, duration float64, outputPath string) *log.Status {
	return media_exec.Run(ctx, "ffmpeg",
		"-i", inputPath,
		"-ss", fmt.Sprintf("%.6f", startTime),
		"-t", fmt.Sprintf("%.6f", duration),
		"-acodec", "pcm_s16le",
		"-ar", fmt.Sprintf("%d", SampleRate),
		"-ac", "1",
		"-y",
		outputPath)
}

// HardTrim truncates an audio stream to maxDuration without re-encoding.
// Stream copy is the only primitive guaranteed to land an exact duration,
// so the drift verifier leans on it as the last resort.
func HardTrim(ctx context.Context, inputPath string, maxDuration float64, outputPath string) *log.Status {
	return media_exec.Run(ctx, "ffmpeg",
		"-i", inputPath,
		"-t", fmt.Sprintf("%.6f", maxDuration),
		"-c", "copy",
		"-y",
		outputPath)
}

// Concatenate joins clips in order with the concat demuxer.
func Concatenate(ctx context.Context, inputPaths []string, outputPath string) *log.Status {
	if len(inputPaths) == 0 {
		return log.ErrorNoErr(ctx, 400, "No files to concatenate")
	}
	listPath := outputPath + ".concat.txt"
	status := writeConcatList(ctx, inputPaths, listPath)
	if status != nil {
		return status
	}
	defer os.Remove(listPath)
	return media_exec.Run(ctx, "ffmpeg",
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-acodec", "pcm_s16le",
		"-ar", fmt.Sprintf("%d", SampleRate),
		"-ac", "1",
		"-y",
		outputPath)
}

// ConcatenateWithFades joins clips applying a fade-out at the tail of every
// clip except the last and a fade-in at the head of every clip except the
// first, so boundaries do not click. Fade start offsets come from each
// clip's own measured duration. If the filter graph fails, falls back to a
// plain concat rather than failing the join.
func ConcatenateWithFades(ctx context.Context, inputPaths []string, fadeDuration float64, outputPath string) *log.Status {
	if len(inputPaths) == 0 {
		return log.ErrorNoErr(ctx, 400, "No files to concatenate")
	}
	if len(inputPaths) == 1 || fadeDuration <= 0 {
		return Concatenate(ctx, inputPaths, outputPath)
	}
	args := []string{}
	for _, p := range inputPaths {
		args = append(args, "-i", p)
	}
	var filters []string
	var labels []string
	for i, p := range inputPaths {
		duration, status := GetDuration(ctx, p)
		if status != nil {
			return status
		}
		var ops []string
		if i > 0 {
			ops = append(ops, fmt.Sprintf("afade=t=in:st=0:d=%.6f", fadeDuration))
		}
		if i < len(inputPaths)-1 {
			fadeStart := duration - fadeDuration
			if fadeStart < 0 {
				fadeStart = 0
			}
			ops = append(ops, fmt.Sprintf("afade=t=out:st=%.6f:d=%.6f", fadeStart, fadeDuration))
		}
		label := fmt.Sprintf("[c%d]", i)
		filters = append(filters, fmt.Sprintf("[%d:a]%s%s", i, strings.Join(ops, ","), label))
		labels = append(labels, label)
	}
	filters = append(filters, fmt.Sprintf("%sconcat=n=%d:v=0:a=1[out]",
		strings.Join(labels, ""), len(inputPaths)))
	args = append(args,
		"-filter_complex", strings.Join(filters, ";"),
		"-map", "[out]",
		"-acodec", "pcm_s16le",
		"-ar", fmt.Sprintf("%d", SampleRate),
		"-ac", "1",
		"-y",
		outputPath)
	status := media_exec.Run(ctx, "ffmpeg", args...)
	if status != nil {
		log.Warn(ctx, "Crossfade concat failed, joining without fades:", status.Message)
		return Concatenate(ctx, inputPaths, outputPath)
	}
	return nil
}

// Mux replaces the video's audio track. The video stream is copied
// bit-for-bit; only the audio is re-encoded. -shortest is deliberately
// absent: the audio track was already fitted to the video duration.
func Mux(ctx context.Context, videoPath string, audioPath string, outputPath string) *log.Status {
	return media_exec.Run(ctx, "ffmpeg",
		"-i", videoPath,
		"-i", audioPath,
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", MuxAudioBitrate,
		"-y",
		outputPath)
}

func writeConcatList(ctx context.Context, inputPaths []string, listPath string) *log.Status {
	var sb strings.Builder
	for _, p := range inputPaths {
		absPath, err := filepath.Abs(p)
		if err != nil {
			return log.Error(ctx, 500, err, "Error resolving path for concat", p)
		}
		sb.WriteString(fmt.Sprintf("file '%s'\n", strings.ReplaceAll(absPath, "'", `'\''`)))
	}
	err := os.WriteFile(listPath, []byte(sb.String()), 0644)
	if err != nil {
		return log.Error(ctx, 500, err, "Error writing concat list", listPath)
	}
	return nil
}
