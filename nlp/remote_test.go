package nlp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModelServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	respond := func(path, body string) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			var req textRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		})
	}
	respond("/sentiment", `{"compound":0.62,"pos":0.3,"neg":0.0,"neu":0.7}`)
	respond("/polarity", `{"polarity":0.5,"subjectivity":0.6}`)
	respond("/sentences", `{"sentences":["One.","Two."]}`)
	respond("/annotate", `{"entities":[{"text":"Apple","label":"ORG"}],
		"tokens":[{"text":"Apple","is_alpha":true,"is_stop":false,"pos":"PROPN"}]}`)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteBackend_Capabilities(t *testing.T) {
	srv := newModelServer(t)
	backend := NewRemoteBackend(srv.URL+"/", time.Second)
	ctx := context.Background()

	s, err := backend.ScoreSentiment(ctx, "text")
	require.NoError(t, err)
	assert.Equal(t, Sentiment{Compound: 0.62, Positive: 0.3, Neutral: 0.7}, s)

	p, err := backend.ScorePolarity(ctx, "text")
	require.NoError(t, err)
	assert.Equal(t, Polarity{Polarity: 0.5, Subjectivity: 0.6}, p)

	sentences, err := backend.SplitSentences(ctx, "One. Two.")
	require.NoError(t, err)
	assert.Equal(t, []string{"One.", "Two."}, sentences)

	doc, err := backend.Annotate(ctx, "Apple")
	require.NoError(t, err)
	assert.Equal(t, []Entity{{Text: "Apple", Label: LabelOrg}}, doc.Entities)
	assert.Equal(t, []Token{{Text: "Apple", IsAlpha: true, POS: PosProperNoun}}, doc.Tokens)

	assert.NoError(t, backend.Probe(ctx))
}

func TestRemoteBackend_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	backend := NewRemoteBackend(srv.URL, time.Second)

	_, err := backend.Annotate(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/annotate returned status: 503")

	assert.Error(t, backend.Probe(context.Background()))
}

func TestRemoteBackend_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewRemoteBackend(url, time.Second).ScoreSentiment(context.Background(), "text")
	assert.Error(t, err)
}
