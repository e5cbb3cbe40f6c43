package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"content-analysis/analysis"
	"content-analysis/apperrors"
	"content-analysis/types"
)

type SentimentAnalyzer interface {
	Analyze(ctx context.Context, text, title string) (types.SentimentReport, error)
}

type TagGenerator interface {
	GenerateTags(ctx context.Context, text string, opts analysis.TagOptions) (types.TagReport, error)
}

// AnalyzeSentiment handles POST /analyze/sentiment.
func AnalyzeSentiment(c *gin.Context, analyzer SentimentAnalyzer) {
	var request types.AnalysisRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		writeError(c, apperrors.Validation(err.Error()))
		return
	}

	slog.Debug("Processing sentiment analysis request", "text_length", len(*request.Text))
	report, err := analyzer.Analyze(c.Request.Context(), *request.Text, deref(request.Title))
	if err != nil {
		writeError(c, apperrors.From(err))
		return
	}

	c.JSON(http.StatusOK, report)
}

// GenerateTags handles POST /generate-tags. max_tags falls back to defaultMaxTags.
func GenerateTags(c *gin.Context, tagger TagGenerator, defaultMaxTags int) {
	var request types.TaggingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		writeError(c, apperrors.Validation(err.Error()))
		return
	}

	opts := analysis.TagOptions{
		Title:        deref(request.Title),
		ExistingTags: request.ExistingTags,
		MaxTags:      defaultMaxTags,
	}
	if request.MaxTags != nil {
		opts.MaxTags = *request.MaxTags
	}

	slog.Debug("Processing tag generation request", "text_length", len(*request.Text), "max_tags", opts.MaxTags)
	report, err := tagger.GenerateTags(c.Request.Context(), *request.Text, opts)
	if err != nil {
		writeError(c, apperrors.From(err))
		return
	}

	c.JSON(http.StatusOK, report)
}

func writeError(c *gin.Context, err *apperrors.Error) {
	if err.Type != apperrors.TypeValidation {
		slog.Error("Request failed",
			"path", c.FullPath(),
			"capability", err.Capability,
			"error", err,
		)
	}
	c.AbortWithStatusJSON(err.HTTPStatus(), err.ToResponse())
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
