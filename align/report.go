package align

import (
	"context"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	log "github.com/GodingWal/famflix-voice-io/logger"
)

// Report summarizes how well the synthesized word stream tracks the
// transcript. It is advisory output for QA, never a gate on the pipeline.
type Report struct {
	TranscriptWords  int
	SynthesizedWords int
	MatchedWords     int
	MatchRate        float64
	Diff             string
}

// BuildReport diffs the normalized transcript and synthesized word streams
// and counts how many alignment entries came from real matches rather than
// interpolation.
func BuildReport(ctx context.Context, transcriptWords []string, synthesized []WordTiming, entries []Entry) Report {
	var report Report
	report.TranscriptWords = len(transcriptWords)
	report.SynthesizedWords = len(synthesized)
	for _, e := range entries {
		if !e.Interpolated {
			report.MatchedWords++
		}
	}
	if len(entries) > 0 {
		report.MatchRate = float64(report.MatchedWords) / float64(len(entries))
	}

	var tNorm, sNorm []string
	for _, w := range transcriptWords {
		tNorm = append(tNorm, Normalize(w))
	}
	for _, w := range synthesized {
		sNorm = append(sNorm, Normalize(w.Word))
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(strings.Join(tNorm, " "), strings.Join(sNorm, " "), false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	report.Diff = dmp.DiffPrettyText(diffs)

	log.Debug(ctx, fmt.Sprintf("alignment QA: %d/%d matched (%.0f%%)",
		report.MatchedWords, report.TranscriptWords, report.MatchRate*100))
	return report
}
