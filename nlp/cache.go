package nlp

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru"
)

func cacheKey(text string) string {
	h := sha256.Sum256([]byte(text))
	return hex.EncodeToString(h[:])
}

// CachedAnnotator memoizes annotations by text hash. Errors are not cached.
type CachedAnnotator struct {
	next  Annotator
	cache *lru.Cache
}

func NewCachedAnnotator(next Annotator, size int) (*CachedAnnotator, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &CachedAnnotator{next: next, cache: cache}, nil
}

func (c *CachedAnnotator) Annotate(ctx context.Context, text string) (Annotation, error) {
	key := cacheKey(text)
	if v, ok := c.cache.Get(key); ok {
		return v.(Annotation), nil
	}
	out, err := c.next.Annotate(ctx, text)
	if err != nil {
		return Annotation{}, err
	}
	c.cache.Add(key, out)
	return out, nil
}

// CachedSentiment memoizes sentiment scores by text hash. Sentence scoring
// repeats across requests for the same article, so this saves most calls.
type CachedSentiment struct {
	next  SentimentScorer
	cache *lru.Cache
}

func NewCachedSentiment(next SentimentScorer, size int) (*CachedSentiment, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &CachedSentiment{next: next, cache: cache}, nil
}

func (c *CachedSentiment) ScoreSentiment(ctx context.Context, text string) (Sentiment, error) {
	key := cacheKey(text)
	if v, ok := c.cache.Get(key); ok {
		return v.(Sentiment), nil
	}
	out, err := c.next.ScoreSentiment(ctx, text)
	if err != nil {
		return Sentiment{}, err
	}
	c.cache.Add(key, out)
	return out, nil
}
