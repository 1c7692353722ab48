package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultHTTPAddr       = ":8080"
	defaultDatabaseDSN    = "atvtours.db"
	defaultGatewayMode    = "simulated"
	defaultGatewayTimeout = "10s"
	defaultGatewayLatency = "150ms"
	defaultSessionTTL     = "30m"
	defaultReaperInterval = "1m"
)

// GatewayMode selects the payment gateway implementation.
const (
	GatewaySimulated = "simulated"
	GatewayHTTP      = "http"
)

type Config struct {
	HTTPAddr    string
	DatabaseDSN string

	GatewayMode    string
	GatewayURL     string
	GatewayTimeout time.Duration
	GatewayLatency time.Duration

	SessionTTL     time.Duration
	ReaperInterval time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		HTTPAddr:    getEnv("HTTP_ADDR", defaultHTTPAddr),
		DatabaseDSN: getEnv("DATABASE_URL", defaultDatabaseDSN),
		GatewayMode: strings.ToLower(getEnv("GATEWAY_MODE", defaultGatewayMode)),
		GatewayURL:  strings.TrimSpace(os.Getenv("GATEWAY_URL")),
	}

	var err error
	if cfg.GatewayTimeout, err = parseDurationEnv("GATEWAY_TIMEOUT", defaultGatewayTimeout); err != nil {
		return nil, err
	}
	if cfg.GatewayLatency, err = parseDurationEnv("GATEWAY_LATENCY", defaultGatewayLatency); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = parseDurationEnv("SESSION_TTL", defaultSessionTTL); err != nil {
		return nil, err
	}
	if cfg.ReaperInterval, err = parseDurationEnv("REAPER_INTERVAL", defaultReaperInterval); err != nil {
		return nil, err
	}

	switch cfg.GatewayMode {
	case GatewaySimulated:
	case GatewayHTTP:
		if cfg.GatewayURL == "" {
			return nil, fmt.Errorf("GATEWAY_URL is required when GATEWAY_MODE=http")
		}
	default:
		return nil, fmt.Errorf("unknown GATEWAY_MODE %q", cfg.GatewayMode)
	}

	return cfg, nil
}

func getEnv(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(name, def string) (time.Duration, error) {
	raw := getEnv(name, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return d, nil
}
