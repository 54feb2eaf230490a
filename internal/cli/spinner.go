package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerTick = 80 * time.Millisecond

// Spinner draws "<frame> <message> <elapsed>" on one line of w until it is
// stopped. Off a terminal it draws nothing.
type Spinner struct {
	w       io.Writer
	message string
	tty     bool

	ctx  context.Context
	stop context.CancelFunc
	done chan struct{}
	once sync.Once
}

func newSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	sctx, stop := context.WithCancel(ctx)
	return &Spinner{
		w:       w,
		message: message,
		tty:     isTerminal(w),
		ctx:     sctx,
		stop:    stop,
		done:    make(chan struct{}),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (s *Spinner) Start() {
	if !s.tty {
		close(s.done)
		return
	}
	go s.run(time.Now())
}

// run owns all writes to s.w.
func (s *Spinner) run(began time.Time) {
	defer close(s.done)
	tick := time.NewTicker(spinnerTick)
	defer tick.Stop()

	width := 0
	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			fmt.Fprintf(s.w, "\r%*s\r", width, "")
			return
		case <-tick.C:
		}
		elapsed := time.Since(began).Truncate(100 * time.Millisecond)
		line := spinnerFrames[frame%len(spinnerFrames)] + " " + s.message + " " + elapsed.String()
		width = max(width, len(line))
		fmt.Fprintf(s.w, "\r%s %s %s",
			styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)]),
			StyleDim.Render(s.message),
			StyleDim.Render(elapsed.String()))
	}
}

// Stop clears the line and waits for the drawing goroutine. Extra calls
// are no-ops.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.stop()
		<-s.done
	})
}

// Cancelled reports whether the context passed to newSpinner has ended.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
