package types

// Dependency states reported by GET /health.
const (
	DependencyAvailable   = "available"
	DependencyUnavailable = "unavailable"
	DependencyUnknown     = "unknown"
)

// HealthStatus is the response of GET /health.
type HealthStatus struct {
	Status       string            `json:"status"`
	Service      string            `json:"service"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies"`
}
