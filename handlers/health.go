package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"content-analysis/types"
)

const (
	ServiceName    = "factoura. Content Analysis Service"
	ServiceVersion = "1.0.0"
)

type DependencyReporter interface {
	Dependencies() map[string]string
}

func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": ServiceName + " is running",
	})
}

// Health reports the last known state of every model dependency. It always
// answers 200; "degraded" means at least one dependency failed its probe.
func Health(c *gin.Context, reporter DependencyReporter) {
	deps := reporter.Dependencies()
	status := "healthy"
	for _, state := range deps {
		if state == types.DependencyUnavailable {
			status = "degraded"
			break
		}
	}

	c.JSON(http.StatusOK, types.HealthStatus{
		Status:       status,
		Service:      ServiceName,
		Version:      ServiceVersion,
		Dependencies: deps,
	})
}
