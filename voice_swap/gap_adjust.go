package voice_swap

import (
	"context"
	"strings"

	"github.com/GodingWal/famflix-voice-io/align"
	log "github.com/GodingWal/famflix-voice-io/logger"
	"github.com/GodingWal/famflix-voice-io/utility/ffmpeg"
)

// gapAdjustStrategy is the second tier: treat the whole synthesized track
// as one performance, carve it into per-segment spans (at word-timing
// boundaries when available, by text share otherwise), and splice the spans
// into the original windows. When the synthesized speech rate is far from
// the original's, the whole track is gently stretched first. If intra-gap
// alignment fails, each segment is re-synthesized independently as a final
// escape hatch, since independently synthesized segments can be time-fit
// one at a time without any word-level alignment.
type gapAdjustStrategy struct{}

func (gapAdjustStrategy) Name() string { return "gap_adjustment_with_word_timings" }

func (gapAdjustStrategy) Attempt(ctx context.Context, st *pipelineState) (string, bool, *log.Status) {
	if len(st.segments) == 0 {
		return "", false, nil
	}
	speechWindow := st.segments[len(st.segments)-1].End - st.segments[0].Start
	if speechWindow <= 0 {
		return "", false, nil
	}

	workTrack := st.synthAudio
	workDuration := st.synthDuration
	speedRatio := st.synthDuration / speechWindow
	if speedRatio < speedRatioLow || speedRatio > speedRatioHigh {
		stretched := st.ws.Clip("whole_stretch")
		achieved, status := ffmpeg.TimeStretchGently(ctx, workTrack, speechWindow, stretched)
		if status != nil {
			return "", false, status
		}
		workTrack, workDuration = stretched, achieved
	}

	boundaries := segmentShareBoundaries(st.segments, st.wordTimings, st.synthDuration, workDuration)
	clips := make([]timedClip, 0, len(st.segments))
	for i, seg := range st.segments {
		spanStart, spanEnd := boundaries[i], boundaries[i+1]
		if spanEnd-spanStart < 0.02 {
			continue
		}
		clip := st.ws.Clip("gapseg")
		status := ffmpeg.ExtractSegment(ctx, workTrack, spanStart, spanEnd-spanStart, clip)
		if status != nil {
			return "", false, status
		}
		clips = append(clips, timedClip{Path: clip, Dur: spanEnd - spanStart, Start: seg.Start, End: seg.End})
	}
	if len(clips) > 0 {
		track, ok, status := spliceClips(ctx, st.ws, clips, st.videoDuration)
		if status != nil {
			return "", false, status
		}
		if ok {
			return track, true, nil
		}
	}

	log.Info(ctx, "gap adjustment could not align spans, re-synthesizing per segment")
	return resynthesizeSegments(ctx, st)
}

// segmentShareBoundaries positions len(segments)+1 cut points on the
// working track. With word timings, each segment's share is its word count
// and cuts land on word boundaries, scaled if the track was stretched;
// otherwise shares are proportional to text length.
func segmentShareBoundaries(segments []align.TranscriptSegment, timings []align.WordTiming,
	synthDuration, workDuration float64) []float64 {
	boundaries := make([]float64, len(segments)+1)
	if len(timings) > 0 && synthDuration > 0 {
		scale := workDuration / synthDuration
		wordCount := 0
		for _, seg := range segments {
			wordCount += len(strings.Fields(seg.Text))
		}
		if wordCount > 0 {
			cum := 0
			for i, seg := range segments {
				cum += len(strings.Fields(seg.Text))
				idx := cum - 1
				if idx >= len(timings) {
					idx = len(timings) - 1
				}
				boundaries[i+1] = timings[idx].End * scale
			}
			boundaries[len(segments)] = workDuration
			return boundaries
		}
	}
	totalChars := 0
	for _, seg := range segments {
		totalChars += len(seg.Text)
	}
	if totalChars == 0 {
		totalChars = 1
	}
	cum := 0
	for i, seg := range segments {
		cum += len(seg.Text)
		boundaries[i+1] = workDuration * float64(cum) / float64(totalChars)
	}
	return boundaries
}

// resynthesizeSegments renders each original segment's text through the
// synthesis backend individually and fits the results into their windows.
func resynthesizeSegments(ctx context.Context, st *pipelineState) (string, bool, *log.Status) {
	if st.tts == nil {
		return "", false, nil
	}
	clips := make([]timedClip, 0, len(st.segments))
	for _, seg := range st.segments {
		if strings.TrimSpace(seg.Text) == "" {
			continue
		}
		raw, status := st.tts.Synthesize(ctx, seg.Text, st.voiceRef)
		if status != nil {
			return "", false, status
		}
		wav := st.ws.Clip("resynth")
		status = ffmpeg.ConvertToWav(ctx, raw, wav)
		if status != nil {
			return "", false, status
		}
		dur, status := ffmpeg.GetDuration(ctx, wav)
		if status != nil {
			return "", false, status
		}
		clips = append(clips, timedClip{Path: wav, Dur: dur, Start: seg.Start, End: seg.End})
	}
	if len(clips) == 0 {
		return "", false, nil
	}
	return spliceClips(ctx, st.ws, clips, st.videoDuration)
}
