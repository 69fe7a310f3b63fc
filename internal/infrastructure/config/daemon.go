package config

import "time"

// DaemonConfig holds daemon service configuration
type DaemonConfig struct {
	// PID file location for single-instance enforcement
	PIDFile string `mapstructure:"pid_file"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`

	// How often the daemon refreshes waypoint and price data for
	// already-synced systems. Zero disables the refresh loop.
	SyncInterval time.Duration `mapstructure:"sync_interval"`
}
