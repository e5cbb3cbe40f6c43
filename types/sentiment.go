package types

// AnalysisRequest is the body of POST /analyze/sentiment.
// Text is a pointer so a missing field can be told apart from an empty one.
type AnalysisRequest struct {
	Text    *string        `json:"text" binding:"required"`
	Title   *string        `json:"title"`
	Options map[string]any `json:"options"`
}

// SentimentScore is the overall sentiment of a text as reported by both models.
type SentimentScore struct {
	Compound     float64 `json:"compound_score"`
	Positive     float64 `json:"positive"`
	Negative     float64 `json:"negative"`
	Neutral      float64 `json:"neutral"`
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// SpanSentiment scores a single span (the title).
type SpanSentiment struct {
	Compound     float64 `json:"compound_score"`
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// SentenceFinding is a sentence whose compound score cleared the significance threshold.
type SentenceFinding struct {
	Text         string  `json:"text"`
	Compound     float64 `json:"compound_score"`
	Polarity     float64 `json:"polarity"`
	Subjectivity float64 `json:"subjectivity"`
}

// SentimentReport is the response of POST /analyze/sentiment.
type SentimentReport struct {
	Overall            SentimentScore    `json:"overall_sentiment"`
	EmotionalTone      string            `json:"emotional_tone"`
	EmotionalIntensity float64           `json:"emotional_intensity"`
	TitleSentiment     *SpanSentiment    `json:"title_sentiment"` // nil when no title was sent
	SentenceAnalysis   []SentenceFinding `json:"sentence_analysis"`
	ObjectivityScore   float64           `json:"objectivity_score"`
}
