package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner animates a status line on w while a lookup is in flight.
type Spinner struct {
	w       io.Writer
	message string
	frames  spinner.Spinner

	once sync.Once
	quit chan struct{}
	done chan struct{}
}

// NewSpinner returns a stopped spinner using the dot frame set.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		frames:  spinner.Dot,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start draws frames until Stop is called.
func (s *Spinner) Start() {
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.frames.FPS)
	defer ticker.Stop()

	for i := 0; ; i++ {
		frame := s.frames.Frames[i%len(s.frames.Frames)]
		fmt.Fprintf(s.w, "\r%s %s", StyleGreen.Render(frame), Dim(s.message))
		select {
		case <-s.quit:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}

// Stop ends the animation and clears the line. Calling it more than once
// is harmless.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.quit)
		<-s.done
	})
}

// StartSpinner starts a spinner and returns its Stop.
func StartSpinner(w io.Writer, message string) func() {
	s := NewSpinner(w, message)
	s.Start()
	return s.Stop
}
