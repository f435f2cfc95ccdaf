package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerTick = 80 * time.Millisecond

// Spinner animates a status line on w while a slow call (the LLM parse)
// runs. After the first second it also shows the elapsed time.
type Spinner struct {
	mu      sync.Mutex
	w       io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
}

func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func (s *Spinner) Start() {
	started := time.Now()
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(spinnerTick)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.stop:
				fmt.Fprint(s.w, "\r\033[K")
				return
			case <-ticker.C:
				fmt.Fprint(s.w, spinnerLine(i, s.message, time.Since(started)))
			}
		}
	}()
}

func spinnerLine(tick int, message string, elapsed time.Duration) string {
	frame := StylePurple.Render(spinnerFrames[tick%len(spinnerFrames)])
	if elapsed < time.Second {
		return fmt.Sprintf("\r  %s %s", frame, Dim(message))
	}
	return fmt.Sprintf("\r  %s %s %s", frame, Dim(message), Dim(fmt.Sprintf("(%ds)", int(elapsed.Seconds()))))
}

// Stop clears the line. Safe to call twice.
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.stop:
		return
	default:
		close(s.stop)
	}
	<-s.done
}

// StartSpinner starts a spinner and returns its Stop.
func StartSpinner(w io.Writer, message string) func() {
	s := NewSpinner(w, message)
	s.Start()
	return s.Stop
}
