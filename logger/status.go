package logger

import (
	"fmt"
	"runtime"
	"strings"
)

// Status is the error value returned by every pipeline function.
// A nil *Status means success. Code follows HTTP conventions:
// 400-class for caller mistakes, 500-class for processing failures.
type Status struct {
	Code    int
	Message string
	Err     error
	Trace   string
}

func (s *Status) Error() string {
	if s == nil {
		return ""
	}
	if s.Err != nil {
		return fmt.Sprintf("%d %s: %v", s.Code, s.Message, s.Err)
	}
	return fmt.Sprintf("%d %s", s.Code, s.Message)
}

func (s *Status) Unwrap() error {
	if s == nil {
		return nil
	}
	return s.Err
}

// String returns the same text as Error so Status prints cleanly
// when passed to t.Fatal or fmt verbs.
func (s *Status) String() string {
	return s.Error()
}

func joinMessage(messages []any) string {
	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		parts = append(parts, fmt.Sprintf("%v", m))
	}
	return strings.Join(parts, " ")
}

func callerTrace() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return ""
	}
	slash := strings.LastIndex(file, "/")
	if slash >= 0 {
		file = file[slash+1:]
	}
	return fmt.Sprintf("%s:%d", file, line)
}
