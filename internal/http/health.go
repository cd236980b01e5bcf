package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping() error
}

// HealthCheck names one dependency probed by /health.
type HealthCheck struct {
	Name   string
	Pinger Pinger
}

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	version string
	checks  []HealthCheck
}

func NewHealthController(version string, checks ...HealthCheck) *HealthController {
	return &HealthController{version: version, checks: checks}
}

// Status probes every dependency. A nil Pinger counts as not configured and
// does not fail the check; any ping error answers 503.
func (h *HealthController) Status(c *gin.Context) {
	resp := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().UTC().Format(time.RFC3339),
		Version: h.version,
		Checks:  make(map[string]string, len(h.checks)),
	}

	for _, check := range h.checks {
		if check.Pinger == nil {
			resp.Checks[check.Name] = "not configured"
			continue
		}
		if err := check.Pinger.Ping(); err != nil {
			resp.Checks[check.Name] = "error: " + err.Error()
			resp.Status = "unhealthy"
			continue
		}
		resp.Checks[check.Name] = "ok"
	}

	code := http.StatusOK
	if resp.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.IndentedJSON(code, resp)
}

func ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
