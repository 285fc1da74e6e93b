package courier

import (
	"strings"
	"testing"
	"time"

	log "github.com/GodingWal/famflix-voice-io/logger"
)

// JobEvent is the machine-readable completion record published to SNS.
type JobEvent struct {
	JobID    string   `json:"job_id"`
	Username string   `json:"username"`
	State    string   `json:"state"`
	Outputs  []string `json:"outputs,omitempty"`
	Error    string   `json:"error,omitempty"`
	Duration string   `json:"duration"`
}

// Notification reports the job's terminal state on every configured
// channel. A nil status means success. Channel failures are logged and the
// first one is returned; they never mask the job result.
func (c *Courier) Notification(status *log.Status) *log.Status {
	var st *log.Status
	if !testing.Testing() || c.IsUnitTest {
		duration := time.Since(c.start)
		var subject string
		var message string
		event := JobEvent{
			JobID:    c.jobID,
			Username: c.username,
			Duration: duration.String(),
		}
		if status == nil {
			subject = "SUCCESS: " + c.jobID
			message = c.successMsg(duration)
			event.State = "completed"
			event.Outputs = c.outputs
		} else {
			subject = "FAILED: " + c.jobID
			message = c.failureMsg(status, duration)
			event.State = "failed"
			event.Error = status.Message
		}
		if c.notify.SNSTopicArn != `` {
			_, st = PublishSNSMessage(c.ctx, c.notify.SNSTopicArn, subject, event)
			if st != nil {
				log.Warn(c.ctx, "SNS notification failed:", st.Message)
			}
		}
		if c.notify.Email != `` {
			st2 := GoMailSendMail(c.ctx, []string{c.notify.Email}, subject, message, c.outputs)
			if st2 != nil {
				log.Warn(c.ctx, "Email notification failed:", st2.Message)
				if st == nil {
					st = st2
				}
			}
		}
	}
	return st
}

func (c *Courier) failureMsg(status *log.Status, duration time.Duration) string {
	var message []string
	message = append(message, "FAILED: "+c.jobID)
	message = append(message, status.Message)
	message = append(message, "Duration: "+duration.String())
	message = append(message, status.Trace)
	return strings.Join(message, "\n")
}

func (c *Courier) successMsg(duration time.Duration) string {
	var message []string
	message = append(message, "SUCCESS: "+c.jobID)
	message = append(message, "Duration: "+duration.String())
	message = append(message, c.outputs...)
	return strings.Join(message, "\n")
}
