package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"content-analysis/handlers"
	"content-analysis/metrics"
)

// Deps are the collaborators the router hands to its handlers.
type Deps struct {
	Analyzer       handlers.SentimentAnalyzer
	Tagger         handlers.TagGenerator
	Health         handlers.DependencyReporter
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	DefaultMaxTags int
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger())
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}

	r.GET("/", handlers.Root)
	r.GET("/health", func(c *gin.Context) {
		handlers.Health(c, deps.Health)
	})
	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	r.POST("/analyze/sentiment", func(c *gin.Context) {
		handlers.AnalyzeSentiment(c, deps.Analyzer)
	})
	r.POST("/generate-tags", func(c *gin.Context) {
		handlers.GenerateTags(c, deps.Tagger, deps.DefaultMaxTags)
	})

	return r
}
