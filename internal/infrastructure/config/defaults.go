package config

import "time"

// SetDefaults sets default values for all configuration fields.
func SetDefaults(cfg *Config) {
	// Audit database defaults
	if cfg.Audit.Type == "" {
		cfg.Audit.Type = "sqlite"
	}
	if cfg.Audit.Path == "" {
		cfg.Audit.Path = "portdock-audit.db"
	}
	if cfg.Audit.Port == 0 {
		cfg.Audit.Port = 5432
	}
	if cfg.Audit.User == "" {
		cfg.Audit.User = "portdock"
	}
	if cfg.Audit.Name == "" {
		cfg.Audit.Name = "portdock"
	}
	if cfg.Audit.SSLMode == "" {
		cfg.Audit.SSLMode = "disable"
	}
	if cfg.Audit.Pool.MaxOpen == 0 {
		cfg.Audit.Pool.MaxOpen = 10
	}
	if cfg.Audit.Pool.MaxIdle == 0 {
		cfg.Audit.Pool.MaxIdle = 2
	}
	if cfg.Audit.Pool.MaxLifetime == 0 {
		cfg.Audit.Pool.MaxLifetime = 5 * time.Minute
	}

	// Metrics defaults
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9102
	}
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Daemon defaults
	if cfg.Daemon.PIDFile == "" {
		cfg.Daemon.PIDFile = "/tmp/portdock-scheduler.pid"
	}
	if cfg.Daemon.ShutdownTimeout == 0 {
		cfg.Daemon.ShutdownTimeout = 30 * time.Second
	}

	// IPC defaults
	if cfg.IPC.SocketDir == "" {
		cfg.IPC.SocketDir = "/tmp/portdock-scheduler"
	}
	if cfg.IPC.DialTimeout == 0 {
		cfg.IPC.DialTimeout = 10 * time.Second
	}
	if cfg.IPC.TestcaseRoot == "" {
		cfg.IPC.TestcaseRoot = "."
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
	if cfg.Logging.Rotation.MaxSize == 0 {
		cfg.Logging.Rotation.MaxSize = 100 // MB
	}
	if cfg.Logging.Rotation.MaxBackups == 0 {
		cfg.Logging.Rotation.MaxBackups = 3
	}
	if cfg.Logging.Rotation.MaxAge == 0 {
		cfg.Logging.Rotation.MaxAge = 28 // days
	}
}
