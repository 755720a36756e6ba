package config

import (
	"errors"
	"fmt"
	"time"
)

type UnreachablePolicy string

const (
	// UnreachableKeep leaves positions whose link could not be reached untouched and unreported.
	UnreachableKeep UnreachablePolicy = "keep"
	// UnreachableReview reports them next to positions with an unexpected status.
	UnreachableReview UnreachablePolicy = "review"
)

type ScheduleConfig struct {
	Schedule string `mapstructure:"schedule"`
}

type SweepConfig struct {
	Schedule          string            `mapstructure:"schedule"`
	MinProbeInterval  time.Duration     `mapstructure:"min_probe_interval"`
	ProbeTimeout      time.Duration     `mapstructure:"probe_timeout"`
	UnreachablePolicy UnreachablePolicy `mapstructure:"unreachable_policy"`
}

type RecommendationsConfig struct {
	Schedule        string `mapstructure:"schedule"`
	MaxPerCandidate int    `mapstructure:"max_per_candidate"`
	Workers         int    `mapstructure:"workers"`
}

type JobsConfig struct {
	RunTimeout      time.Duration         `mapstructure:"run_timeout"`
	GapReport       ScheduleConfig        `mapstructure:"gap_report"`
	Reminder        ScheduleConfig        `mapstructure:"reminder"`
	Sweep           SweepConfig           `mapstructure:"sweep"`
	Recommendations RecommendationsConfig `mapstructure:"recommendations"`
}

func (config JobsConfig) validate() error {
	var errs []error

	if config.RunTimeout <= 0 {
		errs = append(errs, fmt.Errorf("run_timeout must be greater than zero"))
	}

	schedules := map[string]string{
		"gap_report":      config.GapReport.Schedule,
		"reminder":        config.Reminder.Schedule,
		"sweep":           config.Sweep.Schedule,
		"recommendations": config.Recommendations.Schedule,
	}
	for job, schedule := range schedules {
		if schedule == "" {
			errs = append(errs, fmt.Errorf("missing variable: %s.schedule", job))
		}
	}

	if config.Sweep.MinProbeInterval < 0 {
		errs = append(errs, fmt.Errorf("sweep.min_probe_interval must not be negative"))
	}
	if config.Sweep.ProbeTimeout <= 0 {
		errs = append(errs, fmt.Errorf("sweep.probe_timeout must be greater than zero"))
	}
	switch config.Sweep.UnreachablePolicy {
	case UnreachableKeep, UnreachableReview:
	default:
		errs = append(errs, fmt.Errorf("unknown sweep.unreachable_policy: %q", config.Sweep.UnreachablePolicy))
	}

	if config.Recommendations.MaxPerCandidate <= 0 {
		errs = append(errs, fmt.Errorf("recommendations.max_per_candidate must be greater than zero"))
	}
	if config.Recommendations.Workers <= 0 {
		errs = append(errs, fmt.Errorf("recommendations.workers must be greater than zero"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}
	return nil
}

func (config JobsConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"jobs.run_timeout":                       "JOBS_RUN_TIMEOUT",
		"jobs.sweep.unreachable_policy":          "SWEEP_UNREACHABLE_POLICY",
		"jobs.sweep.min_probe_interval":          "SWEEP_MIN_PROBE_INTERVAL",
		"jobs.recommendations.workers":           "RECOMMENDATIONS_WORKERS",
		"jobs.recommendations.max_per_candidate": "RECOMMENDATIONS_MAX_PER_CANDIDATE",
	})
}
