package session

import (
	"time"

	"github.com/verte-zerg/wpmtest/internal/model"
	"github.com/verte-zerg/wpmtest/internal/stats"
)

// Snapshot is an immutable view of a session and its derived metrics.
type Snapshot struct {
	Mode        model.Mode
	Difficulty  model.Difficulty
	Target      string
	Typed       string
	TimeLimit   int
	Remaining   int
	Elapsed     int
	TimerActive bool
	TimerID     int
	StartedAt   time.Time
	Errors      int
	Keystrokes  []time.Time
	Completed   bool
	Metrics     stats.Metrics
	// Result is set once the session is completed.
	Result *model.TestResult
	// NewBest reports whether Result set a new personal best.
	NewBest bool
}

// Snapshot returns the current session state.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{
		Mode:        c.cfg.Mode,
		Difficulty:  c.cfg.Difficulty,
		Target:      string(c.target),
		Typed:       string(c.typed),
		TimeLimit:   c.cfg.TimeLimit,
		Remaining:   c.remaining,
		Elapsed:     c.elapsed(),
		TimerActive: c.timerActive,
		TimerID:     c.timerID,
		StartedAt:   c.startedAt,
		Errors:      c.errors,
		Keystrokes:  append([]time.Time(nil), c.keystrokes...),
		Completed:   c.completed,
		Metrics:     c.metrics,
		NewBest:     c.newBest,
	}
	if c.result != nil {
		r := *c.result
		s.Result = &r
	}
	return s
}

// Recompute derives the metrics from the snapshot alone.
func (s Snapshot) Recompute() stats.Metrics {
	return stats.Compute(stats.Input{
		Target:     s.Target,
		Typed:      s.Typed,
		Elapsed:    float64(s.Elapsed),
		Errors:     s.Errors,
		Keystrokes: s.Keystrokes,
	})
}
