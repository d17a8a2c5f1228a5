// Package timing measures the stages of a completion request.
package timing

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Mark is a named checkpoint, measured from the timer start
type Mark struct {
	Label string
	At    time.Duration
}

// Timer records checkpoints in the order they were reached. It may be
// shared between goroutines.
type Timer struct {
	mu    sync.Mutex
	start time.Time
	marks []Mark
	now   func() time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return newTimer(time.Now)
}

func newTimer(now func() time.Time) *Timer {
	return &Timer{start: now(), now: now}
}

// Mark records a checkpoint with a label
func (t *Timer) Mark(label string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	elapsed := t.now().Sub(t.start)
	t.marks = append(t.marks, Mark{Label: label, At: elapsed})
	return elapsed
}

// Stage runs fn and marks label when it returns, whatever its outcome
func (t *Timer) Stage(label string, fn func() error) error {
	defer t.Mark(label)
	return fn()
}

// Elapsed returns total elapsed time since timer creation
func (t *Timer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.now().Sub(t.start)
}

// Get returns the last checkpoint with a label
func (t *Timer) Get(label string) (time.Duration, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i := len(t.marks) - 1; i >= 0; i-- {
		if t.marks[i].Label == label {
			return t.marks[i].At, true
		}
	}
	return 0, false
}

// Marks returns the checkpoints in order
func (t *Timer) Marks() []Mark {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Mark(nil), t.marks...)
}

// Durations returns how long each stage took, from the previous checkpoint
func (t *Timer) Durations() []Mark {
	marks := t.Marks()
	var previous time.Duration
	for i := range marks {
		marks[i].At, previous = marks[i].At-previous, marks[i].At
	}
	return marks
}

// Summary returns a formatted summary of all stage durations
func (t *Timer) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total: %s", millis(t.Elapsed()))

	if stages := t.Durations(); len(stages) > 0 {
		b.WriteString(" (")
		for i, stage := range stages {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", stage.Label, millis(stage.At))
		}
		b.WriteString(")")
	}

	return b.String()
}

// Reset restarts the timer and drops its checkpoints
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.start = t.now()
	t.marks = nil
}

func millis(d time.Duration) string {
	return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000.0)
}
