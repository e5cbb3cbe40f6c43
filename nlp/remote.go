package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RemoteBackend talks to a model sidecar that exposes the four capabilities as
// JSON endpoints.
type RemoteBackend struct {
	baseURL string
	client  *http.Client
}

type textRequest struct {
	Text string `json:"text"`
}

type sentencesResponse struct {
	Sentences []string `json:"sentences"`
}

func NewRemoteBackend(baseURL string, timeout time.Duration) *RemoteBackend {
	return &RemoteBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (r *RemoteBackend) ScoreSentiment(ctx context.Context, text string) (Sentiment, error) {
	var out Sentiment
	if err := r.post(ctx, "/sentiment", text, &out); err != nil {
		return Sentiment{}, err
	}
	return out, nil
}

func (r *RemoteBackend) ScorePolarity(ctx context.Context, text string) (Polarity, error) {
	var out Polarity
	if err := r.post(ctx, "/polarity", text, &out); err != nil {
		return Polarity{}, err
	}
	return out, nil
}

func (r *RemoteBackend) SplitSentences(ctx context.Context, text string) ([]string, error) {
	var out sentencesResponse
	if err := r.post(ctx, "/sentences", text, &out); err != nil {
		return nil, err
	}
	if out.Sentences == nil {
		return []string{}, nil
	}
	return out.Sentences, nil
}

func (r *RemoteBackend) Annotate(ctx context.Context, text string) (Annotation, error) {
	var out Annotation
	if err := r.post(ctx, "/annotate", text, &out); err != nil {
		return Annotation{}, err
	}
	return out, nil
}

// Probe calls the sidecar's health endpoint.
func (r *RemoteBackend) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("model service health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.New("model service health returned status: " + resp.Status)
	}
	return nil
}

func (r *RemoteBackend) post(ctx context.Context, path, text string, out any) error {
	payloadBytes, err := json.Marshal(textRequest{Text: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+path, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("model service %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model service %s returned status: %s", path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("model service %s: decode response: %w", path, err)
	}
	return nil
}
