package corpus

import "testing"

func TestIsWord(t *testing.T) {
	for _, word := range []string{"hello", "résumé", "don't", "co-op"} {
		if !IsWord(word) {
			t.Fatalf("expected %q to be a word", word)
		}
	}
	for _, word := range []string{"", "two words", "tab\there", "nul\x00"} {
		if IsWord(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}

func TestIsPassage(t *testing.T) {
	if !IsPassage("The quick brown fox jumps over the lazy dog.") {
		t.Fatalf("expected sentence to pass")
	}
	if IsPassage("# a comment") {
		t.Fatalf("expected comment to be rejected")
	}
	if IsPassage("bell\a") {
		t.Fatalf("expected control characters to be rejected")
	}
}
