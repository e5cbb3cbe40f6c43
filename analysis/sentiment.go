package analysis

import (
	"context"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	"content-analysis/nlp"
	"content-analysis/types"
)

const (
	// sentences at or below this compound magnitude are not reported
	significantCompound = 0.3
	maxSentenceFindings = 5
)

// Emotional tones.
const (
	ToneVeryPositive = "Very Positive"
	TonePositive     = "Positive"
	ToneNeutral      = "Neutral"
	ToneNegative     = "Negative"
	ToneVeryNegative = "Very Negative"
)

// Analyzer builds sentiment reports from two independent sentiment models.
type Analyzer struct {
	sentiment nlp.SentimentScorer
	polarity  nlp.PolarityScorer
	splitter  nlp.SentenceSplitter
	observer  Observer
}

func NewAnalyzer(sentiment nlp.SentimentScorer, polarity nlp.PolarityScorer, splitter nlp.SentenceSplitter, observer Observer) *Analyzer {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Analyzer{
		sentiment: sentiment,
		polarity:  polarity,
		splitter:  splitter,
		observer:  observer,
	}
}

// Analyze scores text and, when non-empty, title. The whole-text scores,
// the sentence pass and the title are independent and run concurrently.
func (a *Analyzer) Analyze(ctx context.Context, text, title string) (types.SentimentReport, error) {
	var (
		overall   nlp.Sentiment
		polarity  nlp.Polarity
		findings  []types.SentenceFinding
		titleSpan *types.SpanSentiment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		overall, err = a.scoreSentiment(gctx, text)
		return err
	})
	g.Go(func() (err error) {
		polarity, err = a.scorePolarity(gctx, text)
		return err
	})
	g.Go(func() (err error) {
		findings, err = a.sentenceFindings(gctx, text)
		return err
	})
	if title != "" {
		g.Go(func() error {
			s, err := a.scoreSentiment(gctx, title)
			if err != nil {
				return err
			}
			p, err := a.scorePolarity(gctx, title)
			if err != nil {
				return err
			}
			titleSpan = &types.SpanSentiment{
				Compound:     s.Compound,
				Polarity:     p.Polarity,
				Subjectivity: p.Subjectivity,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.SentimentReport{}, err
	}

	return types.SentimentReport{
		Overall: types.SentimentScore{
			Compound:     overall.Compound,
			Positive:     overall.Positive,
			Negative:     overall.Negative,
			Neutral:      overall.Neutral,
			Polarity:     polarity.Polarity,
			Subjectivity: polarity.Subjectivity,
		},
		EmotionalTone:      Tone(overall.Compound),
		EmotionalIntensity: math.Abs(overall.Compound) * 100,
		TitleSentiment:     titleSpan,
		SentenceAnalysis:   findings,
		ObjectivityScore:   100 - (polarity.Subjectivity * 100),
	}, nil
}

// sentenceFindings returns the first significant sentences in document
// order. Polarity is only fetched for sentences that are kept.
func (a *Analyzer) sentenceFindings(ctx context.Context, text string) ([]types.SentenceFinding, error) {
	start := time.Now()
	sentences, err := a.splitter.SplitSentences(ctx, text)
	if err := observe(a.observer, CapabilitySentences, start, err); err != nil {
		return nil, err
	}

	findings := make([]types.SentenceFinding, 0, maxSentenceFindings)
	for _, sentence := range sentences {
		if len(findings) == maxSentenceFindings {
			break
		}
		s, err := a.scoreSentiment(ctx, sentence)
		if err != nil {
			return nil, err
		}
		if math.Abs(s.Compound) <= significantCompound {
			continue
		}
		p, err := a.scorePolarity(ctx, sentence)
		if err != nil {
			return nil, err
		}
		findings = append(findings, types.SentenceFinding{
			Text:         sentence,
			Compound:     s.Compound,
			Polarity:     p.Polarity,
			Subjectivity: p.Subjectivity,
		})
	}
	return findings, nil
}

func (a *Analyzer) scoreSentiment(ctx context.Context, text string) (nlp.Sentiment, error) {
	start := time.Now()
	s, err := a.sentiment.ScoreSentiment(ctx, text)
	return s, observe(a.observer, CapabilitySentiment, start, err)
}

func (a *Analyzer) scorePolarity(ctx context.Context, text string) (nlp.Polarity, error) {
	start := time.Now()
	p, err := a.polarity.ScorePolarity(ctx, text)
	return p, observe(a.observer, CapabilityPolarity, start, err)
}

// Tone classifies a compound score. The checks run in this order and the
// first match wins.
func Tone(compound float64) string {
	switch {
	case compound >= 0.5:
		return ToneVeryPositive
	case compound >= 0.05:
		return TonePositive
	case compound <= -0.5:
		return ToneVeryNegative
	case compound <= -0.05:
		return ToneNegative
	default:
		return ToneNeutral
	}
}
