package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	ErrUnreachable = errors.New("ollama server unreachable")
	ErrTimeout     = errors.New("llm request timed out")

	// ErrMalformedReply means the model answered but the text held no
	// usable JSON, or the JSON failed validation. Never retried.
	ErrMalformedReply = errors.New("malformed llm reply")

	ErrGaveUp = errors.New("llm retries exhausted")
)

// statusError is a non-200 reply. 4xx replies are not retried.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("ollama returned status %d: %s", e.code, e.body)
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500
	}
	return !errors.Is(err, ErrMalformedReply)
}

// classify maps the last transport error onto the package sentinels.
func classify(ctx context.Context, err error) error {
	var netErr *net.OpError
	switch {
	case ctx.Err() != nil:
		return ErrTimeout
	case errors.As(err, &netErr):
		return ErrUnreachable
	case errors.Is(err, ErrMalformedReply):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrGaveUp, err)
	}
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnreachable):
		return "UNREACHABLE"
	case errors.Is(err, ErrMalformedReply):
		return "MALFORMED_REPLY"
	case errors.Is(err, ErrGaveUp):
		return "GAVE_UP"
	default:
		return "UNKNOWN"
	}
}

// Hint suggests what the user can do about a failed parse. Empty when err
// did not come from this package.
func Hint(err error) string {
	switch {
	case errors.Is(err, ErrUnreachable):
		return "start Ollama (ollama serve) or set TALLY_LLM_ENDPOINT, or log with --from-json"
	case errors.Is(err, ErrTimeout):
		return "raise TALLY_LLM_PARSE_TIMEOUT_MS, or log a shorter text"
	case errors.Is(err, ErrMalformedReply):
		return "the model did not return usable entries; rephrase the log or try another TALLY_LLM_MODEL"
	case errors.Is(err, ErrGaveUp):
		return "the server kept failing; check the Ollama logs"
	default:
		return ""
	}
}
