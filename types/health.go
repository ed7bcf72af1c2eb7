package types

type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDown     HealthStatus = "down"
	HealthStatusDegraded HealthStatus = "degraded"
)

// HealthComponent reports the status of one dependency.
type HealthComponent struct {
	Status  HealthStatus `json:"status"`
	Details string       `json:"details,omitempty"`
}

// HealthCheck is the aggregate health report returned by the health endpoints.
type HealthCheck struct {
	Status     HealthStatus               `json:"status"`
	Components map[string]HealthComponent `json:"components"`
	Version    string                     `json:"version,omitempty"`
	Timestamp  string                     `json:"timestamp"`
}
