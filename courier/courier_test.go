package courier

import (
	"context"
	"testing"

	"github.com/GodingWal/famflix-voice-io/decode_yaml"
)

const notifyRequest = `job_id: test job 1
username: TestUser
video_path: /tmp/video.mp4
voice_ref: /tmp/ref.wav
transcript_text: hello world
notify:
  email: user@example.com
`

func TestCourier(t *testing.T) {
	ctx := context.Background()
	decoder := decode_yaml.NewRequestDecoder(ctx)
	req, status := decoder.Process([]byte(notifyRequest))
	if status != nil {
		t.Fatal(status)
	}
	c := NewCourier(ctx, req)
	if c.jobID != "test_job_1" {
		t.Error("jobID should be test_job_1, it is:", c.jobID)
	}
	if c.username != "TestUser" {
		t.Error("username should be TestUser, it is:", c.username)
	}
	c.AddOutput("/tmp/sample_output.mp4")
	c.AddOutput("")
	if len(c.GetOutputPaths()) != 1 {
		t.Error("empty output path should be dropped")
	}
	// Notification is a no-op under test unless IsUnitTest is set, so the
	// terminal-state path can be exercised without network access.
	status = c.Notification(nil)
	if status != nil {
		t.Fatal(status)
	}
}

func TestFailureMsg(t *testing.T) {
	ctx := context.Background()
	decoder := decode_yaml.NewRequestDecoder(ctx)
	req, status := decoder.Process([]byte(notifyRequest))
	if status != nil {
		t.Fatal(status)
	}
	c := NewCourier(ctx, req)
	// Build a failure message from a real status value.
	decoder2 := decode_yaml.NewRequestDecoder(ctx)
	_, failure := decoder2.Process([]byte("transcript_text: x\n"))
	if failure == nil {
		t.Fatal("expected a validation failure")
	}
	msg := c.failureMsg(failure, 0)
	if msg == "" {
		t.Error("failure message is empty")
	}
}
