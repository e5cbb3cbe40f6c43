package cronjobs

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"content-analysis/nlp"
	"content-analysis/types"
)

const probeTimeout = 10 * time.Second

// DependencyStatus keeps the last probe result of each model dependency.
type DependencyStatus struct {
	mu     sync.RWMutex
	probes map[string]nlp.Prober
	state  map[string]string
	logger *slog.Logger
}

func NewDependencyStatus(probes map[string]nlp.Prober, logger *slog.Logger) *DependencyStatus {
	state := make(map[string]string, len(probes))
	for name := range probes {
		state[name] = types.DependencyUnknown
	}
	return &DependencyStatus{probes: probes, state: state, logger: logger}
}

// Dependencies returns a copy of the current state.
func (d *DependencyStatus) Dependencies() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return maps.Clone(d.state)
}

// ProbeAll checks every dependency once.
func (d *DependencyStatus) ProbeAll(ctx context.Context) {
	for name, probe := range d.probes {
		pctx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := probe.Probe(pctx)
		cancel()

		state := types.DependencyAvailable
		if err != nil {
			state = types.DependencyUnavailable
			d.logger.Warn("Dependency probe failed", "dependency", name, "error", err)
		}

		d.mu.Lock()
		previous := d.state[name]
		d.state[name] = state
		d.mu.Unlock()

		if previous != state {
			d.logger.Info("Dependency state changed", "dependency", name, "from", previous, "to", state)
		}
	}
}

// StartHealthProbe probes once right away and then on schedule. The caller
// stops the returned cron on shutdown.
func StartHealthProbe(ctx context.Context, schedule string, status *DependencyStatus) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		status.ProbeAll(ctx)
	})
	if err != nil {
		return nil, err
	}

	go status.ProbeAll(ctx)
	c.Start()
	return c, nil
}
