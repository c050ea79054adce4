package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

type UpstreamConfig struct {
	BaseURL  string
	APIToken string
	CacheTTL time.Duration
	PageSize int
	MaxPages int
}

var (
	upstreamConfig *UpstreamConfig
	upstreamOnce   sync.Once
)

func LoadUpstreamConfig() *UpstreamConfig {
	upstreamOnce.Do(func() {
		upstreamConfig = &UpstreamConfig{
			BaseURL:  os.Getenv("UPSTREAM_BASE_URL"),
			APIToken: os.Getenv("UPSTREAM_API_TOKEN"),
			CacheTTL: envDuration("UPSTREAM_CACHE_TTL", 5*time.Minute),
			PageSize: envInt("UPSTREAM_PAGE_SIZE", 100),
			MaxPages: envInt("UPSTREAM_MAX_PAGES", 1000),
		}
	})
	return upstreamConfig
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
