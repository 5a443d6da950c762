// Package corpus provides the passage pool and word pool that typing text is
// drawn from.
package corpus

import (
	"bytes"
	_ "embed"
	"fmt"
)

//go:embed data/passages.txt
var defaultPassages []byte

//go:embed data/words.txt
var defaultWords []byte

// Corpus holds the sentence-mode passages and the words-mode word pool.
type Corpus struct {
	Passages []string
	Words    []string
}

// Default returns the built-in corpus.
func Default() Corpus {
	passages, err := readLines(bytes.NewReader(defaultPassages), IsPassage)
	if err != nil {
		panic(fmt.Sprintf("embedded passages: %v", err))
	}
	words, err := readLines(bytes.NewReader(defaultWords), IsWord)
	if err != nil {
		panic(fmt.Sprintf("embedded words: %v", err))
	}
	return Corpus{Passages: passages, Words: words}
}

// Load returns the built-in corpus with passages and words replaced by the
// contents of the given files. Empty paths keep the defaults.
func Load(passagesPath, wordsPath string) (Corpus, error) {
	c := Default()
	if passagesPath != "" {
		passages, err := LoadLines(passagesPath, IsPassage)
		if err != nil {
			return Corpus{}, fmt.Errorf("failed to load passages: %w", err)
		}
		c.Passages = passages
	}
	if wordsPath != "" {
		words, err := LoadLines(wordsPath, IsWord)
		if err != nil {
			return Corpus{}, fmt.Errorf("failed to load word list: %w", err)
		}
		c.Words = words
	}
	return c, nil
}
