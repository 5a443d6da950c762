package corpus

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Len(t, c.Passages, 25)
	assert.Equal(t, "The quick brown fox jumps over the lazy dog. This pangram contains every letter of the alphabet and is commonly used for typing practice.", c.Passages[0])
	assert.NotEmpty(t, c.Words)
	for _, w := range c.Words {
		assert.True(t, IsWord(w), "word %q", w)
	}
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	passages := filepath.Join(dir, "passages.txt")
	words := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(passages, []byte("# mine\nfirst line\n\nsecond line\n"), 0o644))
	require.NoError(t, os.WriteFile(words, []byte("alpha\nbeta gamma\n delta \n"), 0o644))

	c, err := Load(passages, words)
	require.NoError(t, err)
	assert.Equal(t, []string{"first line", "second line"}, c.Passages)
	assert.Equal(t, []string{"alpha", "delta"}, c.Words)

	c, err = Load("", words)
	require.NoError(t, err)
	assert.Len(t, c.Passages, 25)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("\n\n"), 0o644))

	_, err := Load(empty, "")
	assert.ErrorContains(t, err, "file is empty")

	_, err = Load("", filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\n"), 0o644))

	changed := make(chan struct{}, 1)
	w, err := Watch([]string{path, ""}, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("beta\n"), 0o644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected change notification")
	}
}
