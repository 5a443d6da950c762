// Package session implements the typing-test state machine: text selection,
// input validation, error counting, the countdown timer and result
// finalization.
//
// A Controller is not safe for concurrent use. All events (input, ticks,
// toggles, resets) must be delivered from the same goroutine.
package session

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/wpmtest/internal/corpus"
	"github.com/verte-zerg/wpmtest/internal/generator"
	"github.com/verte-zerg/wpmtest/internal/model"
	"github.com/verte-zerg/wpmtest/internal/stats"
)

const (
	// InitialWords is the number of tokens generated for a words-mode text.
	InitialWords = 50
	// ExtendWords is the number of tokens appended near the end of the text.
	ExtendWords = 20
	// ExtendMargin is how close to the end of the text input may get before
	// words mode appends more tokens.
	ExtendMargin = 10
	// DefaultTimeLimit is used when the configured limit is not positive.
	DefaultTimeLimit = 60
)

// Recorder receives finalized results.
type Recorder interface {
	Record(ctx context.Context, result model.TestResult) (newBest bool, err error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithGenerator sets the random source used for text selection.
func WithGenerator(g *generator.Generator) Option {
	return func(c *Controller) { c.gen = g }
}

// WithClock sets the time source for start instants and keystrokes.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithRecorder sets where finalized results are written.
func WithRecorder(r Recorder) Option {
	return func(c *Controller) { c.recorder = r }
}

// Controller owns a single typing session at a time.
type Controller struct {
	cfg      model.Config
	corpus   corpus.Corpus
	gen      *generator.Generator
	now      func() time.Time
	recorder Recorder

	passageIdx int
	target     []rune
	typed      []rune

	remaining   int
	timerActive bool
	timerID     int
	startedAt   time.Time

	errors     int
	keystrokes []time.Time
	completed  bool

	metrics stats.Metrics
	result  *model.TestResult
	newBest bool
}

// New creates a Controller and starts the first session.
func New(cfg model.Config, c corpus.Corpus, opts ...Option) *Controller {
	if cfg.TimeLimit <= 0 {
		cfg.TimeLimit = DefaultTimeLimit
	}
	ctrl := &Controller{cfg: cfg, corpus: c}
	for _, opt := range opts {
		opt(ctrl)
	}
	if ctrl.gen == nil {
		ctrl.gen = generator.New()
	}
	if ctrl.now == nil {
		ctrl.now = time.Now
	}
	ctrl.Reset()
	return ctrl
}

// Reset starts a new session for the current settings. In sentence mode a
// passage is drawn uniformly at random.
func (c *Controller) Reset() {
	c.passageIdx = c.gen.Index(len(c.corpus.Passages))
	c.restart()
}

// NextText advances to the next passage in pool order (or regenerates
// words-mode text) and starts a new session.
func (c *Controller) NextText() {
	if n := len(c.corpus.Passages); n > 0 {
		c.passageIdx = (c.passageIdx + 1) % n
	}
	c.restart()
}

// SetMode switches the mode and starts a new session.
func (c *Controller) SetMode(m model.Mode) {
	c.cfg.Mode = m
	c.Reset()
}

// SetDifficulty switches the difficulty and starts a new session.
func (c *Controller) SetDifficulty(d model.Difficulty) {
	c.cfg.Difficulty = d
	c.Reset()
}

// SetTimeLimit changes the session duration and starts a new session.
// Non-positive values are ignored.
func (c *Controller) SetTimeLimit(seconds int) {
	if seconds <= 0 {
		return
	}
	c.cfg.TimeLimit = seconds
	c.Reset()
}

// SetCorpus replaces the text pools. The current session keeps its text; the
// new pools apply from the next reset.
func (c *Controller) SetCorpus(cp corpus.Corpus) {
	c.corpus = cp
	if n := len(cp.Passages); n > 0 {
		c.passageIdx %= n
	} else {
		c.passageIdx = 0
	}
}

// Config returns the current settings.
func (c *Controller) Config() model.Config {
	return c.cfg
}

func (c *Controller) restart() {
	c.stopTimer()
	c.target = []rune(c.generateText())
	c.typed = nil
	c.remaining = c.cfg.TimeLimit
	c.startedAt = time.Time{}
	c.errors = 0
	c.keystrokes = nil
	c.completed = false
	c.result = nil
	c.newBest = false
	c.recompute()
}

func (c *Controller) generateText() string {
	if c.cfg.Mode == model.ModeWords {
		return c.gen.Text(c.corpus.Words, c.cfg.Difficulty, InitialWords)
	}
	if len(c.corpus.Passages) == 0 {
		return ""
	}
	return c.corpus.Passages[c.passageIdx]
}

// Input handles an input-change event carrying the full new input value.
// It reports whether the event was accepted; rejected events leave the
// session untouched.
func (c *Controller) Input(text string) bool {
	if c.completed {
		return false
	}
	newRunes := []rune(text)

	if c.cfg.Mode == model.ModeWords && len(newRunes) > len(c.target)-ExtendMargin {
		c.extend()
	}
	if c.cfg.Mode == model.ModeSentence && len(newRunes) > len(c.target) {
		return false
	}

	now := c.now()
	if !c.timerActive && c.startedAt.IsZero() {
		c.startedAt = now
		c.startTimer()
	}

	if len(newRunes) > len(c.typed) {
		idx := len(newRunes) - 1
		if idx < len(c.target) && newRunes[idx] != c.target[idx] {
			c.errors++
		}
		c.keystrokes = append(c.keystrokes, now)
	}

	c.typed = newRunes

	if c.cfg.Mode == model.ModeSentence && len(c.typed) == len(c.target) {
		c.finish()
		return true
	}
	c.recompute()
	return true
}

func (c *Controller) extend() {
	more := c.gen.Text(c.corpus.Words, c.cfg.Difficulty, ExtendWords)
	if more == "" {
		return
	}
	if len(c.target) > 0 {
		c.target = append(c.target, ' ')
	}
	c.target = append(c.target, []rune(more)...)
}

// ToggleTimer starts or pauses the countdown. Starting for the first time
// records the start instant. It has no effect on a completed session.
func (c *Controller) ToggleTimer() {
	if c.completed {
		return
	}
	if c.timerActive {
		c.stopTimer()
		return
	}
	if c.startedAt.IsZero() {
		c.startedAt = c.now()
	}
	c.startTimer()
}

// TimerID identifies the current timer run. Ticks carrying another id are
// stale and ignored.
func (c *Controller) TimerID() int {
	return c.timerID
}

// Tick advances the countdown by one second if id matches the running timer.
// It reports whether another tick should be scheduled.
func (c *Controller) Tick(id int) bool {
	if id != c.timerID || !c.timerActive || c.completed {
		return false
	}
	if c.remaining > 0 {
		c.remaining--
	}
	if c.remaining == 0 {
		c.finish()
		return false
	}
	c.recompute()
	return true
}

func (c *Controller) startTimer() {
	if c.timerActive || c.remaining <= 0 {
		return
	}
	c.timerActive = true
	c.timerID++
}

func (c *Controller) stopTimer() {
	if !c.timerActive {
		return
	}
	c.timerActive = false
	c.timerID++
}

// elapsed is the number of seconds the countdown has run.
func (c *Controller) elapsed() int {
	return c.cfg.TimeLimit - c.remaining
}

func (c *Controller) recompute() {
	c.metrics = stats.Compute(stats.Input{
		Target:     string(c.target),
		Typed:      string(c.typed),
		Elapsed:    float64(c.elapsed()),
		Errors:     c.errors,
		Keystrokes: c.keystrokes,
	})
}

func (c *Controller) finish() {
	c.stopTimer()
	c.completed = true
	c.recompute()

	typed := string(c.typed)
	result := model.TestResult{
		ID:          uuid.NewString(),
		Mode:        c.cfg.Mode,
		Difficulty:  c.cfg.Difficulty,
		TimeLimit:   c.cfg.TimeLimit,
		GrossWPM:    c.metrics.GrossWPM,
		NetWPM:      c.metrics.NetWPM,
		Accuracy:    c.metrics.Accuracy,
		Consistency: c.metrics.Consistency,
		Errors:      c.errors,
		WordCount:   len(strings.Fields(typed)),
		Elapsed:     c.elapsed(),
		Date:        c.now(),
	}
	c.result = &result

	if c.recorder == nil {
		return
	}
	newBest, err := c.recorder.Record(context.Background(), result)
	if err != nil {
		log.Error().Err(err).Str("result", result.ID).Msg("Failed to save result")
	}
	c.newBest = newBest
}
