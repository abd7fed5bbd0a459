package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates a status line on stderr while a pipeline step runs.
// Output is discarded when stderr is not a terminal.
type Spinner struct {
	message string
	out     io.Writer

	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}

	start sync.Once
	stop  sync.Once
	mu    sync.Mutex
}

// newSpinnerWithContext returns a spinner that also stops with ctx.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	var out io.Writer = io.Discard
	if isatty.IsTerminal(os.Stderr.Fd()) {
		out = os.Stderr
	}
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		out:     out,
		parent:  ctx,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

func (s *Spinner) Start() {
	s.start.Do(func() { go s.run() })
}

func (s *Spinner) run() {
	defer close(s.stopped)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			s.draw("\r" + strings.Repeat(" ", len(s.message)+4) + "\r")
			return
		case <-ticker.C:
			icon := styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)])
			s.draw("\r" + icon + " " + StyleDim.Render(s.message))
		}
	}
}

func (s *Spinner) draw(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.out, line)
}

// Stop clears the line. It may be called more than once, and before Start.
func (s *Spinner) Stop() {
	s.stop.Do(func() {
		s.cancel()
		started := true
		s.start.Do(func() { started = false })
		if started {
			<-s.stopped
		}
	})
}

// StopWithError stops the spinner and prints message as a failure.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the command context ended, e.g. on Ctrl+C.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
