package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Config holds all service settings, populated from environment variables.
// Location data (counties, tier lists, icon table) lives in a separate file
// loaded by LoadLocations; env vars cover only the run-level knobs.
type Config struct {
	OutputDir     string
	LocationsFile string
	LogLevel      string
	LogFormat     string

	// Upstream endpoints. Overridable mainly for tests; the defaults are
	// the public NWS/NOAA services.
	HWOURL       string
	AlertsURL    string
	ObsBaseURL   string
	RadarBaseURL string

	// Per-request timeout for upstream fetches. A request that exceeds it
	// is abandoned and treated as a failure for that product only.
	RequestTimeout time.Duration

	// MetricsFile is where the run's Prometheus counters are written in
	// textfile-collector format. Relative paths resolve under OutputDir;
	// empty disables the export.
	MetricsFile string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	timeout, err := parseRequestTimeout()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		OutputDir:      envOrDefault("OUTPUT_DIR", "/tmp/weather"),
		LocationsFile:  envOrDefault("LOCATIONS_FILE", "locations.yaml"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "json"),
		HWOURL:         envOrDefault("HWO_URL", "https://forecast.weather.gov/product.php"),
		AlertsURL:      envOrDefault("ALERTS_URL", "https://alerts.weather.gov/cap/wwaatmget.php"),
		ObsBaseURL:     envOrDefault("OBS_URL", "https://api.weather.gov"),
		RadarBaseURL:   envOrDefault("RADAR_URL", "https://radar.weather.gov/ridge/RadarImg/N0R"),
		RequestTimeout: timeout,
		MetricsFile:    envOrDefault("METRICS_FILE", "metrics.prom"),
	}

	if cfg.OutputDir == "" {
		return nil, errors.New("OUTPUT_DIR is required")
	}
	if cfg.LocationsFile == "" {
		return nil, errors.New("LOCATIONS_FILE is required")
	}

	return cfg, nil
}

func parseRequestTimeout() (time.Duration, error) {
	s := envOrDefault("REQUEST_TIMEOUT", "10s")
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid REQUEST_TIMEOUT %q", s)
	}
	return d, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
