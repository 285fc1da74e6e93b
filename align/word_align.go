package align

import (
	"math"
	"strings"
	"unicode"
)

// WordsWithCoverage aligns every transcript word to a synthesized word
// index. Matching is greedy and strictly monotonic: once a synthesized
// index is consumed no earlier index can be reused, and ties always take
// the earliest valid candidate. Unmatched words are filled by linear
// interpolation between matched anchors, clamped so the full alignment
// stays non-decreasing. The result always has exactly len(transcriptWords)
// entries.
func WordsWithCoverage(transcriptWords []string, synthesized []WordTiming) []Entry {
	if len(transcriptWords) == 0 || len(synthesized) == 0 {
		return nil
	}
	normTranscript := make([]string, len(transcriptWords))
	for i, w := range transcriptWords {
		normTranscript[i] = Normalize(w)
	}
	normSynth := make([]string, len(synthesized))
	for i, w := range synthesized {
		normSynth[i] = Normalize(w.Word)
	}

	var matches []Entry
	lastMatched := -1
	for ti, tw := range normTranscript {
		for si := lastMatched + 1; si < len(normSynth); si++ {
			if wordsMatch(tw, normSynth[si]) {
				matches = append(matches, Entry{TranscriptIdx: ti, SynthesizedIdx: si})
				lastMatched = si
				break
			}
		}
	}

	maxSynthIdx := len(synthesized) - 1
	lastTranscriptIdx := len(transcriptWords) - 1

	if len(matches) == 0 {
		return strideAlignment(len(transcriptWords), len(synthesized))
	}

	// Anchor the boundaries so interpolation covers the whole range.
	if matches[0].TranscriptIdx != 0 {
		matches = append([]Entry{{TranscriptIdx: 0, SynthesizedIdx: 0, Interpolated: true}}, matches...)
	}
	if matches[len(matches)-1].TranscriptIdx != lastTranscriptIdx {
		matches = append(matches, Entry{
			TranscriptIdx:  lastTranscriptIdx,
			SynthesizedIdx: maxSynthIdx,
			Interpolated:   true,
		})
	}

	result := make([]Entry, len(transcriptWords))
	runningMin := 0
	for m := 0; m < len(matches)-1; m++ {
		a, b := matches[m], matches[m+1]
		result[a.TranscriptIdx] = clampEntry(a, &runningMin, maxSynthIdx)
		span := b.TranscriptIdx - a.TranscriptIdx
		for ti := a.TranscriptIdx + 1; ti < b.TranscriptIdx; ti++ {
			frac := float64(ti-a.TranscriptIdx) / float64(span)
			si := a.SynthesizedIdx + int(math.Round(frac*float64(b.SynthesizedIdx-a.SynthesizedIdx)))
			result[ti] = clampEntry(Entry{TranscriptIdx: ti, SynthesizedIdx: si, Interpolated: true},
				&runningMin, maxSynthIdx)
		}
	}
	last := matches[len(matches)-1]
	result[last.TranscriptIdx] = clampEntry(last, &runningMin, maxSynthIdx)
	return result
}

// clampEntry bounds the synthesized index to [runningMin, maxSynthIdx] and
// advances the running minimum, which is what keeps interpolated indices
// from slipping behind earlier assignments.
func clampEntry(e Entry, runningMin *int, maxSynthIdx int) Entry {
	if e.SynthesizedIdx < *runningMin {
		e.SynthesizedIdx = *runningMin
	}
	if e.SynthesizedIdx > maxSynthIdx {
		e.SynthesizedIdx = maxSynthIdx
	}
	*runningMin = e.SynthesizedIdx
	return e
}

// strideAlignment distributes synthesized indices uniformly when nothing
// matched at all, such as fully disjoint vocabularies.
func strideAlignment(numTranscript int, numSynth int) []Entry {
	step := numSynth / numTranscript
	result := make([]Entry, numTranscript)
	for ti := 0; ti < numTranscript; ti++ {
		si := ti * step
		if si > numSynth-1 {
			si = numSynth - 1
		}
		result[ti] = Entry{TranscriptIdx: ti, SynthesizedIdx: si, Interpolated: true}
	}
	return result
}

// wordsMatch accepts exact normalized equality, or a substring containment
// in either direction when both forms are longer than 2 characters. The
// length floor keeps short function words from matching spuriously.
func wordsMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	if len(a) > 2 && len(b) > 2 {
		return strings.Contains(a, b) || strings.Contains(b, a)
	}
	return false
}

// Normalize lowercases a word and strips everything except letters, digits
// and apostrophes. Numerals and non-Latin scripts pass through as-is; no
// semantic normalization is attempted.
func Normalize(word string) string {
	word = strings.ToLower(word)
	var sb strings.Builder
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
