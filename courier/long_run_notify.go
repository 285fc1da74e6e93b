package courier

import (
	"context"
	"strconv"
	"time"

	"github.com/GodingWal/famflix-voice-io/decode_yaml/request"
	log "github.com/GodingWal/famflix-voice-io/logger"
)

// LongRunNotify emails a warning when a job runs past twice its configured
// timeout, which means the wall-clock guard itself failed to fire. The
// returned func stops the watch and must be called when the job ends.
func LongRunNotify(ctx context.Context, req request.Request) func() {
	thresholdMin := float64(req.TimeoutMinutes) * 2.0
	if req.Notify.Email == `` {
		return func() {}
	}
	log.Info(ctx, "Process will email if it runs over",
		strconv.FormatFloat(thresholdMin, 'f', 1, 64), "minutes.")
	threshold := time.Duration(thresholdMin*60.0) * time.Second

	done := make(chan struct{})
	go func() {
		select {
		case <-time.After(threshold):
			msg := "job_id: " + req.JobID + "\n" +
				"video_path: " + req.VideoPath + "\n" +
				"Has been running for " + strconv.FormatFloat(thresholdMin, 'f', 1, 64) + " minutes."
			_ = GoMailSendMail(ctx, []string{req.Notify.Email}, "FamFlix: Long Running Job", msg, nil)
		case <-done:
		}
	}()
	return func() { close(done) }
}
