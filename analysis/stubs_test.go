package analysis

import (
	"context"
	"strings"
	"sync"

	"content-analysis/nlp"
)

// stubSentiment returns the compound registered for a text, zero otherwise.
type stubSentiment struct {
	mu       sync.Mutex
	compound map[string]float64
	err      error
	calls    []string
}

func (s *stubSentiment) ScoreSentiment(_ context.Context, text string) (nlp.Sentiment, error) {
	s.mu.Lock()
	s.calls = append(s.calls, text)
	s.mu.Unlock()
	if s.err != nil {
		return nlp.Sentiment{}, s.err
	}
	c := s.compound[text]
	out := nlp.Sentiment{Compound: c, Neutral: 1}
	switch {
	case c > 0:
		out.Positive, out.Neutral = 0.4, 0.6
	case c < 0:
		out.Negative, out.Neutral = 0.4, 0.6
	}
	return out, nil
}

type stubPolarity struct {
	subjectivity float64
	err          error
}

func (s *stubPolarity) ScorePolarity(_ context.Context, text string) (nlp.Polarity, error) {
	if s.err != nil {
		return nlp.Polarity{}, s.err
	}
	return nlp.Polarity{Polarity: 0.1, Subjectivity: s.subjectivity}, nil
}

// periodSplitter splits on ". " which is enough for test fixtures.
type periodSplitter struct{}

func (periodSplitter) SplitSentences(_ context.Context, text string) ([]string, error) {
	out := []string{}
	for _, s := range strings.Split(text, ". ") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

// stubAnnotator tags every capitalized alphabetic token as a proper noun,
// every other alphabetic token as a noun, and reports the words listed in
// entities as entities with the given label.
type stubAnnotator struct {
	entities map[string]string
	stop     map[string]bool
	err      error
	lastText string
}

func (s *stubAnnotator) Annotate(_ context.Context, text string) (nlp.Annotation, error) {
	s.lastText = text
	if s.err != nil {
		return nlp.Annotation{}, s.err
	}
	var out nlp.Annotation
	for _, raw := range strings.Fields(text) {
		word := strings.Trim(raw, ".,!?")
		if label, ok := s.entities[word]; ok {
			out.Entities = append(out.Entities, nlp.Entity{Text: word, Label: label})
		}
		pos := nlp.PosNoun
		if word != "" && strings.ToUpper(word[:1]) == word[:1] {
			pos = nlp.PosProperNoun
		}
		out.Tokens = append(out.Tokens, nlp.Token{
			Text:    word,
			IsAlpha: nlp.IsAlpha(word),
			IsStop:  s.stop[strings.ToLower(word)],
			POS:     pos,
		})
	}
	return out, nil
}
