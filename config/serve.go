package config

import "fmt"

// ServeConfig defines the HTTP API and metrics listeners.
type ServeConfig struct {
	// Addr is the listen address of the schedules API.
	Addr string `json:"addr"`
	// MetricsAddr is the listen address of the Prometheus endpoint.
	// Empty disables metrics.
	MetricsAddr string `json:"metrics_addr"`
	// ScheduleDir is the directory of schedule JSON files served.
	ScheduleDir string `json:"schedule_dir"`
}

// SetDefaults applies sane defaults.
func (c *ServeConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ScheduleDir == "" {
		c.ScheduleDir = "."
	}
}

// Validate checks mandatory fields.
func (c ServeConfig) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("serve.addr is required")
	}
	if c.ScheduleDir == "" {
		return fmt.Errorf("serve.schedule_dir is required")
	}
	return nil
}
