package observability

import (
	"encoding/json"
	"net/http"
	"time"
)

const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// PluginSource reports the plugin load outcomes the readiness probe exposes.
type PluginSource interface {
	LoadedPlugins() []string
	FailedPlugins() []string
}

// HealthChecker serves liveness and readiness probes. Failed plugins degrade
// readiness but never make the service unhealthy: a broken plugin
// contributes nothing, the host keeps running.
type HealthChecker struct {
	plugins PluginSource
}

// NewHealthChecker creates a health checker over the plugin source. A nil
// source reports healthy with no plugin detail.
func NewHealthChecker(plugins PluginSource) *HealthChecker {
	return &HealthChecker{plugins: plugins}
}

// HealthStatus is the readiness probe payload.
type HealthStatus struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	PluginsLoaded []string  `json:"plugins_loaded,omitempty"`
	PluginsFailed []string  `json:"plugins_failed,omitempty"`
}

// Liveness always reports healthy while the process is serving.
func (h *HealthChecker) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    StatusHealthy,
		"timestamp": time.Now(),
	})
}

// Readiness reports healthy, or degraded when any plugin failed to load.
// Both return 200: a degraded panel still serves its remaining plugins.
func (h *HealthChecker) Readiness(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:    StatusHealthy,
		Timestamp: time.Now(),
	}

	if h.plugins != nil {
		status.PluginsLoaded = h.plugins.LoadedPlugins()
		status.PluginsFailed = h.plugins.FailedPlugins()
		if len(status.PluginsFailed) > 0 {
			status.Status = StatusDegraded
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(status)
}

// RegisterHealthRoutes registers the probe endpoints.
func RegisterHealthRoutes(mux *http.ServeMux, checker *HealthChecker) {
	mux.HandleFunc("/healthz", checker.Liveness)
	mux.HandleFunc("/readyz", checker.Readiness)
}
