package cronjobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-analysis/nlp"
	"content-analysis/types"
)

type stubProber struct {
	err error
}

func (s *stubProber) Probe(context.Context) error { return s.err }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDependencyStatus_UnknownUntilProbed(t *testing.T) {
	status := NewDependencyStatus(map[string]nlp.Prober{"model_service": &stubProber{}}, discardLogger())

	assert.Equal(t, map[string]string{"model_service": types.DependencyUnknown}, status.Dependencies())
}

func TestDependencyStatus_ProbeAll(t *testing.T) {
	flaky := &stubProber{err: errors.New("connection refused")}
	status := NewDependencyStatus(map[string]nlp.Prober{
		"model_service": &stubProber{},
		"openai":        flaky,
	}, discardLogger())

	status.ProbeAll(context.Background())
	assert.Equal(t, map[string]string{
		"model_service": types.DependencyAvailable,
		"openai":        types.DependencyUnavailable,
	}, status.Dependencies())

	flaky.err = nil
	status.ProbeAll(context.Background())
	assert.Equal(t, types.DependencyAvailable, status.Dependencies()["openai"])
}

func TestStartHealthProbe_ProbesImmediately(t *testing.T) {
	status := NewDependencyStatus(map[string]nlp.Prober{"model_service": &stubProber{}}, discardLogger())

	c, err := StartHealthProbe(context.Background(), "@every 1h", status)
	require.NoError(t, err)
	defer c.Stop()

	assert.Eventually(t, func() bool {
		return status.Dependencies()["model_service"] == types.DependencyAvailable
	}, time.Second, 10*time.Millisecond)
}

func TestStartHealthProbe_InvalidSchedule(t *testing.T) {
	status := NewDependencyStatus(nil, discardLogger())

	_, err := StartHealthProbe(context.Background(), "every now and then", status)
	assert.Error(t, err)
}
