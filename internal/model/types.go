// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects the text-generation strategy of a session.
type Mode int

const (
	// ModeSentence draws a fixed passage from the passage pool.
	ModeSentence Mode = iota
	// ModeWords generates open-ended text from the word pool.
	ModeWords
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case ModeSentence:
		return "sentence"
	case ModeWords:
		return "words"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sentence", "sentences":
		return ModeSentence, nil
	case "words", "word":
		return ModeWords, nil
	default:
		return ModeSentence, fmt.Errorf("unknown mode %q (expected sentence or words)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Difficulty filters the word pool in words mode.
type Difficulty int

const (
	// DifficultyEasy keeps only short words.
	DifficultyEasy Difficulty = iota
	// DifficultyMedium uses the whole pool.
	DifficultyMedium
	// DifficultyHard over-samples long words.
	DifficultyHard
)

// String returns the lowercase difficulty name.
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// ParseDifficulty parses a difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	default:
		return DifficultyMedium, fmt.Errorf("unknown difficulty %q (expected easy, medium or hard)", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeLimits lists the selectable session durations in seconds.
var TimeLimits = []int{15, 30, 60, 120}

// Config defines practice settings.
type Config struct {
	Mode         Mode
	Difficulty   Difficulty
	TimeLimit    int
	PassagesPath string
	WordListPath string
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Mode        *Mode
	Last        int
	CurveWindow int
}

// TestResult captures a finished typing test. It is immutable once created.
type TestResult struct {
	ID          string     `json:"id"`
	Mode        Mode       `json:"mode"`
	Difficulty  Difficulty `json:"difficulty"`
	TimeLimit   int        `json:"timeLimit"`
	GrossWPM    int        `json:"grossWpm"`
	NetWPM      int        `json:"netWpm"`
	Accuracy    int        `json:"accuracy"`
	Consistency int        `json:"consistency"`
	Errors      int        `json:"errors"`
	WordCount   int        `json:"wordCount"`
	Elapsed     int        `json:"elapsed"`
	Date        time.Time  `json:"date"`
}

// PersonalBest is the best result recorded so far.
type PersonalBest struct {
	WPM      int        `json:"wpm"`
	Accuracy int        `json:"accuracy"`
	Date     *time.Time `json:"date"`
}

// BeatenBy reports whether r should replace the personal best.
func (pb PersonalBest) BeatenBy(r TestResult) bool {
	if r.NetWPM > pb.WPM {
		return true
	}
	return r.NetWPM == pb.WPM && r.Accuracy > pb.Accuracy
}
