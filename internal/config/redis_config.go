package config

import (
	"fmt"
	"strings"
)

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

func (config RedisConfig) Enabled() bool {
	return config.URL != ""
}

func (config RedisConfig) validate() error {
	if config.Enabled() && !strings.HasPrefix(config.URL, "redis://") && !strings.HasPrefix(config.URL, "rediss://") {
		return fmt.Errorf("redis url must start with redis:// or rediss://")
	}
	return nil
}

func (config RedisConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{"redis.url": "REDIS_URL"})
}
