package nlp

import (
	_ "embed"
	"strings"
	"unicode"
)

//go:embed stopwords.txt
var englishStopWordList string

// StopWords is a lowercase word set.
type StopWords map[string]struct{}

// EnglishStopWords returns the bundled English stop-word list.
func EnglishStopWords() StopWords {
	set := make(StopWords)
	for _, w := range strings.Fields(englishStopWordList) {
		set[strings.ToLower(w)] = struct{}{}
	}
	return set
}

func (s StopWords) Contains(word string) bool {
	_, ok := s[strings.ToLower(word)]
	return ok
}

// IsAlpha reports whether word is non-empty and made only of letters.
func IsAlpha(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
