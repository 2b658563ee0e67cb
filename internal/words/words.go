// Package words provides the dictionary oracle: a read-only, shared,
// case-insensitive word list loaded once at process start.
package words

import (
	"bufio"
	_ "embed"
	"log/slog"
	"os"
	"strings"
)

//go:embed words.txt
var embeddedWords string

// maxIndexedLength bounds prefix indexing; words longer than the largest
// possible tile assembly are never queried.
const maxIndexedLength = 16

// List is a set-membership oracle over a static word list. It also
// answers prefix queries, which the best-word search uses for pruning.
// A List is immutable after load and safe for concurrent use.
type List struct {
	words    map[string]struct{}
	prefixes map[string]struct{}
}

// Load reads the word list from path, or the embedded default list when
// path is empty. A load failure is logged and yields an always-false
// oracle rather than an error.
func Load(path string, logger *slog.Logger) *List {
	l := &List{
		words:    make(map[string]struct{}),
		prefixes: make(map[string]struct{}),
	}

	if path == "" {
		l.addAll(strings.NewReader(embeddedWords))
		logger.Info("dictionary loaded", "source", "embedded", "words", len(l.words))
		return l
	}

	f, err := os.Open(path)
	if err != nil {
		logger.Error("failed to load dictionary, all words will be rejected", "path", path, "error", err)
		return l
	}
	defer f.Close()

	l.addAll(f)
	logger.Info("dictionary loaded", "source", path, "words", len(l.words))
	return l
}

func (l *List) addAll(r interface{ Read([]byte) (int, error) }) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		word := strings.ToLower(strings.TrimSpace(sc.Text()))
		if word == "" || strings.HasPrefix(word, "#") {
			continue
		}
		l.words[word] = struct{}{}
		if len(word) <= maxIndexedLength {
			for i := 1; i <= len(word); i++ {
				l.prefixes[word[:i]] = struct{}{}
			}
		}
	}
}

// Contains reports whether the word is in the list, case-insensitively.
func (l *List) Contains(word string) bool {
	_, ok := l.words[strings.ToLower(word)]
	return ok
}

// HasPrefix reports whether any listed word starts with the given prefix.
func (l *List) HasPrefix(prefix string) bool {
	_, ok := l.prefixes[strings.ToLower(prefix)]
	return ok
}

// Len returns the number of words in the list.
func (l *List) Len() int {
	return len(l.words)
}
