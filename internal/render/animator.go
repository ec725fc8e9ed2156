package render

import (
	"io"
	"time"

	"github.com/lawnchairsociety/wiremaze/internal/wfc"
)

// Animator prints every intermediate grid, separated by a blank line, and
// pauses between frames. It only reads the grid.
type Animator struct {
	w      io.Writer
	delay  time.Duration
	sleep  func(time.Duration)
	frames int
	err    error
}

// NewAnimator creates an animator writing frames to w
func NewAnimator(w io.Writer, delay time.Duration) *Animator {
	return &Animator{
		w:     w,
		delay: delay,
		sleep: time.Sleep,
	}
}

// Observe draws one frame. After the first write error it stops drawing.
func (a *Animator) Observe(step wfc.Step) {
	if a.err != nil {
		return
	}
	if err := Write(a.w, step.Grid); err != nil {
		a.err = err
		return
	}
	if _, err := io.WriteString(a.w, "\n"); err != nil {
		a.err = err
		return
	}
	a.frames++
	if a.delay > 0 {
		a.sleep(a.delay)
	}
}

// Frames returns the number of frames drawn
func (a *Animator) Frames() int { return a.frames }

// Err returns the first write error, if any
func (a *Animator) Err() error { return a.err }
