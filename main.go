package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sashabaranov/go-openai"

	"content-analysis/analysis"
	"content-analysis/config"
	"content-analysis/cronjobs"
	"content-analysis/logging"
	"content-analysis/metrics"
	"content-analysis/nlp"
	"content-analysis/routes"
)

const shutdownTimeout = 10 * time.Second

// capabilities is the set of model capabilities wired from configuration.
type capabilities struct {
	sentiment nlp.SentimentScorer
	polarity  nlp.PolarityScorer
	splitter  nlp.SentenceSplitter
	annotator nlp.Annotator
	probes    map[string]nlp.Prober
	close     func()
}

func buildCapabilities(ctx context.Context, cfg *config.Config) (*capabilities, error) {
	caps := &capabilities{probes: map[string]nlp.Prober{}, close: func() {}}

	var backend nlp.Backend
	switch cfg.NLPBackend {
	case config.BackendGoogle:
		g, err := nlp.NewGoogleBackend(ctx, cfg.NaturalLanguageCredentials)
		if err != nil {
			return nil, err
		}
		backend = g
		caps.probes["google_language"] = g
		caps.close = func() {
			if err := g.Close(); err != nil {
				slog.Warn("Closing natural language clients", "error", err)
			}
		}
	default:
		r := nlp.NewRemoteBackend(cfg.ModelServiceURL, cfg.ModelServiceTimeout)
		backend = r
		caps.probes["model_service"] = r
	}

	caps.sentiment = backend
	caps.polarity = backend
	caps.splitter = backend
	caps.annotator = backend

	if cfg.PolarityBackend == config.PolarityOpenAI {
		o := nlp.NewOpenAIPolarity(openai.NewClient(cfg.OpenAIAPIKey), cfg.OpenAIModel)
		caps.polarity = o
		caps.probes["openai"] = o
	}

	if cfg.SentenceSplitter == config.SplitterPunkt {
		p, err := nlp.NewPunktSplitter()
		if err != nil {
			return nil, err
		}
		caps.splitter = p
	}

	if cfg.CacheSize > 0 {
		annotator, err := nlp.NewCachedAnnotator(caps.annotator, cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("annotation cache: %w", err)
		}
		sentiment, err := nlp.NewCachedSentiment(caps.sentiment, cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("sentiment cache: %w", err)
		}
		caps.annotator = annotator
		caps.sentiment = sentiment
	}

	return caps, nil
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	caps, err := buildCapabilities(ctx, cfg)
	if err != nil {
		return err
	}
	defer caps.close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	status := cronjobs.NewDependencyStatus(caps.probes, logger)
	probeCron, err := cronjobs.StartHealthProbe(ctx, cfg.HealthProbeSchedule, status)
	if err != nil {
		return fmt.Errorf("schedule health probe: %w", err)
	}
	defer probeCron.Stop()

	r := routes.SetupRouter(routes.Deps{
		Analyzer:       analysis.NewAnalyzer(caps.sentiment, caps.polarity, caps.splitter, m),
		Tagger:         analysis.NewTagger(caps.annotator, m),
		Health:         status,
		Metrics:        m,
		Gatherer:       reg,
		DefaultMaxTags: cfg.DefaultMaxTags,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting content analysis service", "port", cfg.Port, "backend", cfg.NLPBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func main() {
	if err := run(); err != nil {
		slog.Error("Content analysis service failed", "error", err)
		os.Exit(1)
	}
}
