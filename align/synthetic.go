package align

import "strings"

// sentenceEnd reports whether a word closes a sentence. Trailing quotes and
// brackets after the punctuation are tolerated.
func sentenceEnd(word string) bool {
	trimmed := strings.TrimRight(word, `"')]»`)
	return strings.HasSuffix(trimmed, ".") ||
		strings.HasSuffix(trimmed, "!") ||
		strings.HasSuffix(trimmed, "?") ||
		strings.HasSuffix(trimmed, "…")
}

// SplitSynthetic derives sentence-shaped segments from word timings when no
// original transcript segments exist. Boundaries fall at sentence-ending
// punctuation; each boundary's synthesized time is scaled into a
// proportional video-timeline position by videoDuration/synthesizedTotal.
func SplitSynthetic(words []WordTiming, videoDuration float64, synthesizedTotal float64) []SyntheticSegment {
	if len(words) == 0 || synthesizedTotal <= 0 {
		return nil
	}
	scale := videoDuration / synthesizedTotal
	var segments []SyntheticSegment
	first := 0
	var text []string
	for i, w := range words {
		text = append(text, w.Word)
		if sentenceEnd(w.Word) || i == len(words)-1 {
			seg := SyntheticSegment{
				Text:      strings.Join(text, " "),
				TTSStart:  words[first].Start,
				TTSEnd:    w.End,
				FirstWord: first,
				LastWord:  i,
			}
			seg.Start = seg.TTSStart * scale
			seg.End = seg.TTSEnd * scale
			segments = append(segments, seg)
			first = i + 1
			text = nil
		}
	}
	return segments
}
