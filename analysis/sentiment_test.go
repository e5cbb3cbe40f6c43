package analysis

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-analysis/apperrors"
	"content-analysis/nlp"
	"content-analysis/types"
)

func TestTone(t *testing.T) {
	tests := []struct {
		compound float64
		expected string
	}{
		{0.6, ToneVeryPositive},
		{0.5, ToneVeryPositive},
		{0.2, TonePositive},
		{0.05, TonePositive},
		{0.0, ToneNeutral},
		{0.049, ToneNeutral},
		{-0.049, ToneNeutral},
		{-0.05, ToneNegative},
		{-0.2, ToneNegative},
		{-0.5, ToneVeryNegative},
		{-0.6, ToneVeryNegative},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Tone(tt.compound), "compound %v", tt.compound)
	}
}

func TestAnalyze_OverallScores(t *testing.T) {
	text := "Markets rallied today. Investors cheered."
	sentiment := &stubSentiment{compound: map[string]float64{text: 0.6}}
	analyzer := NewAnalyzer(sentiment, &stubPolarity{subjectivity: 0.25}, periodSplitter{}, nil)

	report, err := analyzer.Analyze(context.Background(), text, "")
	require.NoError(t, err)

	assert.Equal(t, 0.6, report.Overall.Compound)
	assert.InDelta(t, 1.0, report.Overall.Positive+report.Overall.Negative+report.Overall.Neutral, 1e-9)
	assert.Equal(t, 0.1, report.Overall.Polarity)
	assert.Equal(t, 0.25, report.Overall.Subjectivity)
	assert.Equal(t, ToneVeryPositive, report.EmotionalTone)
	assert.InDelta(t, 60.0, report.EmotionalIntensity, 1e-9)
	assert.Equal(t, 100-report.Overall.Subjectivity*100, report.ObjectivityScore)
	assert.Nil(t, report.TitleSentiment)
	assert.Empty(t, report.SentenceAnalysis)
}

func TestAnalyze_SentenceFindingsThreshold(t *testing.T) {
	text := "s1. s2. s3. s4. s5. s6. s7. s8"
	sentiment := &stubSentiment{compound: map[string]float64{
		"s1": 0.31,
		"s2": 0.3, // at threshold, dropped
		"s3": -0.4,
		"s4": 0.1,
		"s5": -0.3,
		"s6": 0.5,
		"s7": 0.35,
		"s8": 0.99,
	}}
	analyzer := NewAnalyzer(sentiment, &stubPolarity{}, periodSplitter{}, nil)

	report, err := analyzer.Analyze(context.Background(), text, "")
	require.NoError(t, err)

	require.Len(t, report.SentenceAnalysis, 5)
	var got []string
	for _, f := range report.SentenceAnalysis {
		got = append(got, f.Text)
		assert.Greater(t, math.Abs(f.Compound), 0.3)
	}
	assert.Equal(t, []string{"s1", "s3", "s6", "s7", "s8"}, got)
}

func TestAnalyze_CapsAtFiveFindings(t *testing.T) {
	text := "a. b. c. d. e. f. g"
	compound := map[string]float64{}
	for _, s := range []string{"a", "b", "c", "d", "e", "f"} {
		compound[s] = 0.4
	}
	compound["g"] = -0.9
	analyzer := NewAnalyzer(&stubSentiment{compound: compound}, &stubPolarity{}, periodSplitter{}, nil)

	report, err := analyzer.Analyze(context.Background(), text, "")
	require.NoError(t, err)

	require.Len(t, report.SentenceAnalysis, 5)
	assert.Equal(t, "a", report.SentenceAnalysis[0].Text)
	assert.Equal(t, "e", report.SentenceAnalysis[4].Text)
}

func TestAnalyze_TitleSentiment(t *testing.T) {
	sentiment := &stubSentiment{compound: map[string]float64{"Grim news": -0.7}}
	analyzer := NewAnalyzer(sentiment, &stubPolarity{subjectivity: 0.5}, periodSplitter{}, nil)

	report, err := analyzer.Analyze(context.Background(), "Body", "Grim news")
	require.NoError(t, err)

	require.NotNil(t, report.TitleSentiment)
	assert.Equal(t, types.SpanSentiment{Compound: -0.7, Polarity: 0.1, Subjectivity: 0.5}, *report.TitleSentiment)
}

func TestAnalyze_EmptyText(t *testing.T) {
	analyzer := NewAnalyzer(&stubSentiment{}, &stubPolarity{}, periodSplitter{}, nil)

	report, err := analyzer.Analyze(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, ToneNeutral, report.EmotionalTone)
	assert.Zero(t, report.EmotionalIntensity)
	assert.Equal(t, 100.0, report.ObjectivityScore)
	assert.NotNil(t, report.SentenceAnalysis)
	assert.Empty(t, report.SentenceAnalysis)
}

func TestAnalyze_CapabilityFailure(t *testing.T) {
	cause := errors.New("connection refused")
	analyzer := NewAnalyzer(&stubSentiment{}, &stubPolarity{err: cause}, periodSplitter{}, nil)

	_, err := analyzer.Analyze(context.Background(), "text", "")
	require.Error(t, err)

	appErr := apperrors.From(err)
	assert.Equal(t, apperrors.TypeUnavailable, appErr.Type)
	assert.Equal(t, CapabilityPolarity, appErr.Capability)
	assert.ErrorIs(t, err, cause)
}

func TestAnalyze_RejectedTextIsValidation(t *testing.T) {
	rejected := &stubSentiment{err: errors.Join(nlp.ErrRejectedText, errors.New("language xx not supported"))}
	analyzer := NewAnalyzer(rejected, &stubPolarity{}, periodSplitter{}, nil)

	_, err := analyzer.Analyze(context.Background(), "text", "")
	require.Error(t, err)
	assert.Equal(t, apperrors.TypeValidation, apperrors.From(err).Type)
}

type recordingObserver struct {
	mu    sync.Mutex
	calls map[string]int
}

func (r *recordingObserver) ObserveCapability(capability string, _ time.Duration, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[capability]++
}

func TestAnalyze_ObservesEveryCall(t *testing.T) {
	obs := &recordingObserver{calls: map[string]int{}}
	sentiment := &stubSentiment{compound: map[string]float64{"Bad day": -0.8}}
	analyzer := NewAnalyzer(sentiment, &stubPolarity{}, periodSplitter{}, obs)

	_, err := analyzer.Analyze(context.Background(), "Bad day. Fine", "Title")
	require.NoError(t, err)

	// whole text, title, two sentences
	assert.Equal(t, 4, obs.calls[CapabilitySentiment])
	// whole text, title, the one significant sentence
	assert.Equal(t, 3, obs.calls[CapabilityPolarity])
	assert.Equal(t, 1, obs.calls[CapabilitySentences])
}
