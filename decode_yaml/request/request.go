// Package request defines the YAML job request accepted by the
// voice-replacement pipeline.
package request

import "github.com/GodingWal/famflix-voice-io/align"

type Request struct {
	JobID          string                    `yaml:"job_id"`
	Username       string                    `yaml:"username"`
	VideoPath      string                    `yaml:"video_path"`
	VoiceRef       string                    `yaml:"voice_ref"`
	TranscriptText string                    `yaml:"transcript_text"`
	Segments       []align.TranscriptSegment `yaml:"segments"`
	OutputPath     string                    `yaml:"output_path"`
	MixBackground  bool                      `yaml:"mix_background"`
	DuckLevelDb    float64                   `yaml:"duck_level_db"`
	TimeoutMinutes int                       `yaml:"timeout_minutes"`
	Notify         Notify                    `yaml:"notify"`
}

// Notify selects the completion notification channels. Empty fields
// disable the channel.
type Notify struct {
	SNSTopicArn string `yaml:"sns_topic_arn"`
	Email       string `yaml:"email"`
}
