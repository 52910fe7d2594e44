package api

import (
	"fmt"
	"io"
	"time"
)

// CallEvent records metadata about a single backend call.
type CallEvent struct {
	Op        string // logical operation, e.g. "plan.list"
	Method    string
	Status    int // 0 when the request never reached the backend
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about backend calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to an io.Writer.
type LogObserver struct {
	w io.Writer
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{w: w}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	ts := time.Now().UTC().Format(time.RFC3339)
	status := "ok"
	if !event.Success {
		status = "err:" + event.ErrorCode
	}
	fmt.Fprintf(o.w, "[%s] api_call op=%s method=%s http_status=%d latency_ms=%d status=%s\n",
		ts, event.Op, event.Method, event.Status, event.LatencyMs, status)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case isTimeout(err):
		return "TIMEOUT"
	case isUnavailable(err):
		return "UNAVAILABLE"
	case isRemote(err):
		return "REMOTE"
	default:
		return "UNKNOWN"
	}
}
