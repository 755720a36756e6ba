package config

import "fmt"

type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

func (config MetricsConfig) validate() error {
	if config.Address == "" {
		return fmt.Errorf("missing variable: metrics address")
	}
	return nil
}

func (config MetricsConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{"metrics.address": "METRICS_ADDRESS"})
}
