package voice_swap

import (
	"context"
	"strings"

	"github.com/GodingWal/famflix-voice-io/align"
	log "github.com/GodingWal/famflix-voice-io/logger"
	"github.com/GodingWal/famflix-voice-io/utility/ffmpeg"
)

// Fraction of original segments that must map confidently before the
// per-segment tier trusts the alignment.
const minMappedFraction = 0.8

// perSegmentStrategy is the primary tier: map each original utterance onto
// its synthesized sub-span through the word alignment, then splice each
// span into its original window.
type perSegmentStrategy struct{}

func (perSegmentStrategy) Name() string { return "per_segment_alignment" }

// mappedSpan pairs an original segment window with the synthesized-audio
// sub-span the alignment assigned to it.
type mappedSpan struct {
	Start    float64
	End      float64
	TTSStart float64
	TTSEnd   float64
}

func (perSegmentStrategy) Attempt(ctx context.Context, st *pipelineState) (string, bool, *log.Status) {
	if len(st.segments) == 0 || len(st.wordTimings) == 0 {
		return "", false, nil
	}
	words, firstIdx, lastIdx := segmentWords(st.segments)
	if len(words) == 0 {
		return "", false, nil
	}
	entries := align.WordsWithCoverage(words, st.wordTimings)
	if entries == nil {
		return "", false, nil
	}
	align.BuildReport(ctx, words, st.wordTimings, entries)

	spans, confident := deriveSpans(st.segments, entries, st.wordTimings, firstIdx, lastIdx)
	if confident <= 1 || float64(confident) < minMappedFraction*float64(len(st.segments)) {
		log.Info(ctx, "per-segment mapping confidence too low:", confident, "of", len(st.segments))
		return "", false, nil
	}

	clips := make([]timedClip, 0, len(spans))
	for _, span := range spans {
		clip := st.ws.Clip("seg")
		dur := span.TTSEnd - span.TTSStart
		status := ffmpeg.ExtractSegment(ctx, st.synthAudio, span.TTSStart, dur, clip)
		if status != nil {
			return "", false, status
		}
		clips = append(clips, timedClip{Path: clip, Dur: dur, Start: span.Start, End: span.End})
	}
	return spliceClips(ctx, st.ws, clips, st.videoDuration)
}

// segmentWords flattens segment texts into the word list the aligner sees,
// recording each segment's first and last word index.
func segmentWords(segments []align.TranscriptSegment) ([]string, []int, []int) {
	var words []string
	firstIdx := make([]int, len(segments))
	lastIdx := make([]int, len(segments))
	for i, seg := range segments {
		segWords := strings.Fields(seg.Text)
		firstIdx[i] = len(words)
		words = append(words, segWords...)
		lastIdx[i] = len(words) - 1
	}
	return words, firstIdx, lastIdx
}

// deriveSpans looks up each segment's synthesized sub-span from the
// alignment. A span is confident only when its first and last words landed
// on distinct synthesized indices in order; unconfident segments are
// dropped and their window becomes gap silence.
func deriveSpans(segments []align.TranscriptSegment, entries []align.Entry,
	timings []align.WordTiming, firstIdx, lastIdx []int) ([]mappedSpan, int) {
	var spans []mappedSpan
	confident := 0
	for i, seg := range segments {
		if firstIdx[i] > lastIdx[i] {
			continue // segment had no words
		}
		siFirst := entries[firstIdx[i]].SynthesizedIdx
		siLast := entries[lastIdx[i]].SynthesizedIdx
		if siFirst >= siLast {
			continue
		}
		ttsStart := timings[siFirst].Start
		ttsEnd := timings[siLast].End
		confident++
		spans = append(spans, mappedSpan{
			Start:    seg.Start,
			End:      seg.End,
			TTSStart: ttsStart,
			TTSEnd:   ttsEnd,
		})
	}
	return spans, confident
}
