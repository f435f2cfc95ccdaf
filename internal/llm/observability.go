package llm

import (
	"context"
	"io"
	"log/slog"
)

// CallEvent describes one Generate call after its last attempt. Prompt and
// reply sizes are in bytes; the texts themselves are never logged since a
// work log can name clients.
type CallEvent struct {
	Task        TaskType
	Model       string
	LatencyMs   int64
	Attempts    int
	PromptBytes int
	ReplyBytes  int
	ErrorCode   string
}

func (e CallEvent) Failed() bool { return e.ErrorCode != "" }

type Observer interface {
	CallDone(ctx context.Context, event CallEvent)
}

// LogObserver writes one slog record per call, at WARN when it failed.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{logger: slog.New(slog.NewTextHandler(w, nil))}
}

func (o *LogObserver) CallDone(ctx context.Context, e CallEvent) {
	attrs := []any{
		"task", e.Task,
		"model", e.Model,
		"latency_ms", e.LatencyMs,
		"attempts", e.Attempts,
		"prompt_bytes", e.PromptBytes,
	}
	if e.Failed() {
		o.logger.WarnContext(ctx, "llm_call", append(attrs, "error_code", e.ErrorCode)...)
		return
	}
	o.logger.InfoContext(ctx, "llm_call", append(attrs, "reply_bytes", e.ReplyBytes)...)
}

type NoopObserver struct{}

func (NoopObserver) CallDone(context.Context, CallEvent) {}
