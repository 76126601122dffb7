package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner animates a one-line progress indicator on its own goroutine while
// the caller blocks. It draws nothing when the writer is not a terminal.
type Spinner struct {
	w       io.Writer
	label   string
	enabled bool
	frames  []string
	every   time.Duration

	once    sync.Once
	started bool
	stop    chan struct{}
	done    chan struct{}
}

// NewSpinner returns a stopped spinner for w.
func NewSpinner(w io.Writer, label string) *Spinner {
	return &Spinner{
		w:       w,
		label:   label,
		enabled: IsTerminal(w),
		frames:  spinner.MiniDot.Frames,
		every:   spinner.MiniDot.FPS,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start begins animating. It must be paired with Stop.
func (s *Spinner) Start() {
	s.started = true
	if !s.enabled {
		close(s.done)
		return
	}
	go func() {
		defer close(s.done)
		t := time.NewTicker(s.every)
		defer t.Stop()
		for i := 0; ; i++ {
			fmt.Fprintf(s.w, "\r%s %s", s.frames[i%len(s.frames)], s.label)
			select {
			case <-s.stop:
				fmt.Fprint(s.w, "\r\033[K")
				return
			case <-t.C:
			}
		}
	}()
}

// Stop ends the animation, clears the line, and waits for the goroutine.
// It is safe to call more than once.
func (s *Spinner) Stop() {
	if !s.started {
		return
	}
	s.once.Do(func() { close(s.stop) })
	<-s.done
}

// Wrap runs fn with the spinner active.
func Wrap[T any](w io.Writer, label string, fn func() T) T {
	s := NewSpinner(w, label)
	s.Start()
	defer s.Stop()
	return fn()
}
