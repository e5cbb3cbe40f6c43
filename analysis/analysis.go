// Package analysis turns raw model output into sentiment reports and tag
// suggestions. It owns no model state; every capability is injected.
package analysis

import (
	"errors"
	"time"

	"content-analysis/apperrors"
	"content-analysis/nlp"
)

// Capability names used in errors, logs and metrics.
const (
	CapabilitySentiment = "sentiment"
	CapabilityPolarity  = "polarity"
	CapabilitySentences = "sentences"
	CapabilityAnnotate  = "annotate"
)

// Observer is told about every capability call.
type Observer interface {
	ObserveCapability(capability string, elapsed time.Duration, err error)
}

type noopObserver struct{}

func (noopObserver) ObserveCapability(string, time.Duration, error) {}

func observe(o Observer, capability string, start time.Time, err error) error {
	o.ObserveCapability(capability, time.Since(start), err)
	if err == nil {
		return nil
	}
	if errors.Is(err, nlp.ErrRejectedText) {
		return apperrors.Validation(err.Error())
	}
	return apperrors.Unavailable(capability, err)
}
