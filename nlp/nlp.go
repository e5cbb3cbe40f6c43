// Package nlp holds the model capabilities the analysis layer consumes and
// the backends that provide them.
package nlp

import "context"

// Entity labels kept by the tag generator.
const (
	LabelPerson    = "PERSON"
	LabelOrg       = "ORG"
	LabelGPE       = "GPE"
	LabelLoc       = "LOC"
	LabelProduct   = "PRODUCT"
	LabelEvent     = "EVENT"
	LabelWorkOfArt = "WORK_OF_ART"
	LabelLaw       = "LAW"
)

// Part-of-speech tags the tag generator looks at.
const (
	PosNoun       = "NOUN"
	PosProperNoun = "PROPN"
	PosAdjective  = "ADJ"
	PosOther      = "X"
)

// Sentiment is the compound/proportion style score of a span.
type Sentiment struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"pos"`
	Negative float64 `json:"neg"`
	Neutral  float64 `json:"neu"`
}

// Polarity is the polarity/subjectivity style score of a span.
type Polarity struct {
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// Entity is one named-entity mention.
type Entity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Token is one annotated token.
type Token struct {
	Text    string `json:"text"`
	IsAlpha bool   `json:"is_alpha"`
	IsStop  bool   `json:"is_stop"`
	POS     string `json:"pos"`
}

// Annotation is the linguistic annotation of a text, in document order.
type Annotation struct {
	Entities []Entity `json:"entities"`
	Tokens   []Token  `json:"tokens"`
}

type SentimentScorer interface {
	ScoreSentiment(ctx context.Context, text string) (Sentiment, error)
}

type PolarityScorer interface {
	ScorePolarity(ctx context.Context, text string) (Polarity, error)
}

type SentenceSplitter interface {
	SplitSentences(ctx context.Context, text string) ([]string, error)
}

type Annotator interface {
	Annotate(ctx context.Context, text string) (Annotation, error)
}

// Prober checks that a backend is reachable.
type Prober interface {
	Probe(ctx context.Context) error
}

// Backend bundles every capability. The remote and Google backends implement it.
type Backend interface {
	SentimentScorer
	PolarityScorer
	SentenceSplitter
	Annotator
	Prober
}
