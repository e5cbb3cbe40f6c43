package nlp

import (
	"context"
	"fmt"
	"strings"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// PunktSplitter splits sentences locally with the English Punkt model.
type PunktSplitter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

func NewPunktSplitter() (*PunktSplitter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load punkt model: %w", err)
	}
	return &PunktSplitter{tokenizer: tokenizer}, nil
}

func (p *PunktSplitter) SplitSentences(_ context.Context, text string) ([]string, error) {
	out := []string{}
	for _, s := range p.tokenizer.Tokenize(text) {
		if trimmed := strings.TrimSpace(s.Text); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out, nil
}
