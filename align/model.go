package align

// TranscriptSegment is one contiguous utterance on the original video's
// timeline. Segments are ordered by start, non-overlapping, and may have
// silence gaps between them.
type TranscriptSegment struct {
	Start float64 `json:"start" yaml:"start"`
	End   float64 `json:"end" yaml:"end"`
	Text  string  `json:"text" yaml:"text"`
}

func (s TranscriptSegment) Duration() float64 {
	return s.End - s.Start
}

// WordTiming is one word of the synthesized audio with its position on the
// synthesized-audio timeline, as reported by the TTS backend.
type WordTiming struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Entry maps one transcript word to a synthesized word index. Across a full
// alignment the synthesized indices are non-decreasing; that ordering is
// what keeps playback from reordering speech.
type Entry struct {
	TranscriptIdx  int
	SynthesizedIdx int
	Interpolated   bool
}

// SyntheticSegment is a sentence-shaped span derived from word timings when
// the original video has no transcript segments. Start/End are target
// positions on the video timeline; TTSStart/TTSEnd are the span's position
// in the synthesized audio.
type SyntheticSegment struct {
	Text      string
	Start     float64
	End       float64
	TTSStart  float64
	TTSEnd    float64
	FirstWord int
	LastWord  int
}
