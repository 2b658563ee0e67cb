package words

import (
	"io"
	"log/slog"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoadEmbeddedList(t *testing.T) {
	l := Load("", testLogger())
	if l.Len() == 0 {
		t.Fatal("embedded list is empty")
	}

	for _, w := range []string{"dice", "ice", "the"} {
		if !l.Contains(w) {
			t.Errorf("embedded list missing %q", w)
		}
	}
	if !l.Contains("DICE") {
		t.Error("lookup should be case-insensitive")
	}
	if l.Contains("zzzzzz") {
		t.Error("nonsense word accepted")
	}
}

func TestLoadMissingFileYieldsEmptyOracle(t *testing.T) {
	l := Load("/nonexistent/words.txt", testLogger())
	if l.Len() != 0 {
		t.Fatalf("got %d words from a missing file", l.Len())
	}
	if l.Contains("dice") || l.HasPrefix("d") {
		t.Error("empty oracle answered true")
	}
}

func TestHasPrefixCoversEveryWordPrefix(t *testing.T) {
	l := Load("", testLogger())

	// Every word must be reachable through its own prefixes, otherwise
	// the best-word search would prune valid words away.
	for word := range l.words {
		for i := 1; i <= len(word); i++ {
			if !l.HasPrefix(word[:i]) {
				t.Fatalf("prefix %q of %q not indexed", word[:i], word)
			}
		}
	}

	if l.HasPrefix("zzq") {
		t.Error("bogus prefix accepted")
	}
	if !l.HasPrefix("DI") {
		t.Error("prefix lookup should be case-insensitive")
	}
}

func TestListIsLowercaseAndDuplicateFree(t *testing.T) {
	l := Load("", testLogger())
	for word := range l.words {
		for i := 0; i < len(word); i++ {
			if word[i] < 'a' || word[i] > 'z' {
				t.Fatalf("word %q contains a non-lowercase character", word)
			}
		}
	}
}
