// Package decode_yaml parses and validates YAML job requests.
package decode_yaml

import (
	"context"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/GodingWal/famflix-voice-io/decode_yaml/request"
	log "github.com/GodingWal/famflix-voice-io/logger"
)

type RequestDecoder struct {
	ctx    context.Context
	errors []string
}

func NewRequestDecoder(ctx context.Context) RequestDecoder {
	var r RequestDecoder
	r.ctx = ctx
	return r
}

// Process decodes one YAML request and validates it. Validation problems
// are collected so the caller sees every error at once, not just the first.
func (r *RequestDecoder) Process(yamlContent []byte) (request.Request, *log.Status) {
	var req request.Request
	err := yaml.Unmarshal(yamlContent, &req)
	if err != nil {
		return req, log.Error(r.ctx, 400, err, `Error decoding YAML request`)
	}
	r.Validate(&req)
	if len(r.errors) > 0 {
		return req, log.ErrorNoErr(r.ctx, 400, strings.Join(r.errors, "\n"))
	}
	return req, nil
}
