// Package generator builds typing text sequences.
package generator

import (
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/wpmtest/internal/model"
)

const (
	easyMaxLen = 4
	hardMinLen = 7
)

// Generator produces randomized typing text.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a deterministic Generator.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Index returns a uniformly random index in [0, n).
func (g *Generator) Index(n int) int {
	if n <= 0 {
		return 0
	}
	return g.rnd.Intn(n)
}

// Generate selects count words uniformly from words.
func (g *Generator) Generate(words []string, count int) []string {
	if len(words) == 0 || count <= 0 {
		return nil
	}
	result := make([]string, 0, count)
	for i := 0; i < count; i++ {
		result = append(result, words[g.rnd.Intn(len(words))])
	}
	return result
}

// Text generates count words from the difficulty pool joined by spaces.
func (g *Generator) Text(words []string, d model.Difficulty, count int) string {
	return strings.Join(g.Generate(Pool(words, d), count), " ")
}

// Pool returns the sampling pool for a difficulty. Easy keeps words of at most
// four runes, hard appends a second copy of every word longer than six runes.
// An easy filter that would leave nothing falls back to the full list.
func Pool(words []string, d model.Difficulty) []string {
	switch d {
	case model.DifficultyEasy:
		pool := make([]string, 0, len(words))
		for _, w := range words {
			if utf8.RuneCountInString(w) <= easyMaxLen {
				pool = append(pool, w)
			}
		}
		if len(pool) == 0 {
			return words
		}
		return pool
	case model.DifficultyHard:
		pool := make([]string, 0, len(words)*2)
		pool = append(pool, words...)
		for _, w := range words {
			if utf8.RuneCountInString(w) >= hardMinLen {
				pool = append(pool, w)
			}
		}
		return pool
	default:
		return words
	}
}
