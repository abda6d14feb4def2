package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames are the braille animation frames, drawn at 80ms intervals.
var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is a terminal progress indicator whose message tracks the pipeline
// stage currently running. The animation starts immediately on construction
// and halts on Stop or when the bound context is cancelled.
type Spinner struct {
	cancel  context.CancelFunc
	stopped chan struct{}

	mu      sync.Mutex
	message string
	width   int // widest line drawn so far, so erase clears long messages
}

// newSpinner creates a running spinner bound to ctx with an initial message.
func newSpinner(ctx context.Context, message string) *Spinner {
	s := &Spinner{message: message, stopped: make(chan struct{})}
	ctx, s.cancel = context.WithCancel(ctx)
	go s.spin(ctx)
	return s
}

// SetMessage swaps the displayed message; the next frame picks it up.
// The pipeline's stage notifications feed this.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

func (s *Spinner) spin(ctx context.Context) {
	defer close(s.stopped)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			s.erase()
			return
		case <-ticker.C:
			s.draw(spinnerFrames[i%len(spinnerFrames)])
		}
	}
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w := len(s.message) + 4; w > s.width {
		s.width = w
	}
	fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

func (s *Spinner) erase() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", s.width))
}

// Stop halts the animation and clears the line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.cancel()
	<-s.stopped
}

// StopWithError halts the animation and prints an error status line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}
