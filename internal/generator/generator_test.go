package generator

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/wpmtest/internal/model"
)

var words = []string{"a", "cat", "tree", "house", "garden", "keyboard", "practice"}

func TestPoolEasy(t *testing.T) {
	pool := Pool(words, model.DifficultyEasy)
	assert.Equal(t, []string{"a", "cat", "tree"}, pool)
	for _, w := range pool {
		assert.LessOrEqual(t, utf8.RuneCountInString(w), 4)
	}
}

func TestPoolEasyFallsBack(t *testing.T) {
	long := []string{"keyboard", "practice"}
	assert.Equal(t, long, Pool(long, model.DifficultyEasy))
}

func TestPoolMedium(t *testing.T) {
	assert.Equal(t, words, Pool(words, model.DifficultyMedium))
}

func TestPoolHard(t *testing.T) {
	pool := Pool(words, model.DifficultyHard)
	require.Len(t, pool, len(words)+2)
	counts := map[string]int{}
	for _, w := range pool {
		counts[w]++
	}
	assert.Equal(t, 2, counts["keyboard"])
	assert.Equal(t, 2, counts["practice"])
	assert.Equal(t, 1, counts["garden"])
}

func TestTextWordCount(t *testing.T) {
	g := NewWithSeed(1)
	text := g.Text(words, model.DifficultyMedium, 50)
	assert.Len(t, strings.Split(text, " "), 50)
}

func TestGenerateEmpty(t *testing.T) {
	g := NewWithSeed(1)
	assert.Nil(t, g.Generate(nil, 5))
	assert.Equal(t, "", g.Text(nil, model.DifficultyEasy, 5))
	assert.Equal(t, 0, g.Index(0))
}

func TestIndexInRange(t *testing.T) {
	g := NewWithSeed(7)
	for i := 0; i < 100; i++ {
		idx := g.Index(3)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 3)
	}
}
