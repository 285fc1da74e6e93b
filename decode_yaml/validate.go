package decode_yaml

import (
	"strconv"
	"strings"

	"github.com/GodingWal/famflix-voice-io/decode_yaml/request"
)

func (r *RequestDecoder) Validate(req *request.Request) {
	r.checkRequired(req)
	r.checkSegments(req)
	r.checkTuning(req)
}

func (r *RequestDecoder) checkRequired(req *request.Request) {
	if req.VideoPath == `` {
		r.errors = append(r.errors, `Required field video_path: is empty`)
	}
	if req.VoiceRef == `` {
		r.errors = append(r.errors, `Required field voice_ref: is empty`)
	}
	if req.JobID != `` {
		req.JobID = strings.Replace(req.JobID, ` `, `_`, -1)
	}
}

// checkSegments requires segment windows to be well formed and in order.
// Segment text may be empty only when transcript_text carries the words.
func (r *RequestDecoder) checkSegments(req *request.Request) {
	var prevEnd float64
	for i, seg := range req.Segments {
		if seg.End <= seg.Start {
			r.errors = append(r.errors, `Segment `+strconv.Itoa(i)+` has end <= start`)
		}
		if seg.Start < prevEnd {
			r.errors = append(r.errors, `Segment `+strconv.Itoa(i)+` overlaps the previous segment`)
		}
		prevEnd = seg.End
	}
	if len(req.Segments) > 0 && req.TranscriptText == `` {
		var hasText bool
		for _, seg := range req.Segments {
			if strings.TrimSpace(seg.Text) != `` {
				hasText = true
				break
			}
		}
		if !hasText {
			r.errors = append(r.errors, `Segments have no text and transcript_text: is empty`)
		}
	}
}

func (r *RequestDecoder) checkTuning(req *request.Request) {
	if req.DuckLevelDb > 0 {
		r.errors = append(r.errors, `duck_level_db: must be zero or negative`)
	}
	if req.TimeoutMinutes < 0 {
		r.errors = append(r.errors, `timeout_minutes: must not be negative`)
	}
	if req.TimeoutMinutes == 0 {
		req.TimeoutMinutes = 10
	}
}
