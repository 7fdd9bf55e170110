// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and SWIRI_ environment variables on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr" validate:"required"`

	// ModelPath points at the classifier artifact. An empty or unreadable
	// path leaves classification disabled; the rest of the service runs.
	ModelPath string `koanf:"model_path"`

	// SessionTTLMinutes expires idle demo sessions.
	SessionTTLMinutes int `koanf:"session_ttl_minutes" validate:"gte=1"`

	// SweepIntervalSeconds sets how often expired sessions are removed.
	SweepIntervalSeconds int `koanf:"sweep_interval_seconds" validate:"gte=1"`

	// MaxSessions bounds the in-memory session store.
	MaxSessions int `koanf:"max_sessions" validate:"gte=1"`

	// MaxLogEntries bounds each session's event log.
	MaxLogEntries int `koanf:"max_log_entries" validate:"gte=1"`

	// Location is the child location reported in alerts.
	Location string `koanf:"location" validate:"required"`

	// RandomSeed pins the sensor generator; 0 seeds from the wall clock.
	RandomSeed int64 `koanf:"random_seed"`

	// ChartTail is the number of latest samples shown in live charts.
	ChartTail int `koanf:"chart_tail" validate:"gte=1,lte=50"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":9080",
		ModelPath:            "models/swiri_rf_model.json",
		SessionTTLMinutes:    60,
		SweepIntervalSeconds: 60,
		MaxSessions:          1_000,
		MaxLogEntries:        500,
		Location:             "School Playground",
		RandomSeed:           0,
		ChartTail:            20,
	}
}
