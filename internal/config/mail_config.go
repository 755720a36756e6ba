package config

import (
	"fmt"
	"strings"
)

type TemplatesConfig struct {
	CandidateWelcome  string `mapstructure:"candidate_welcome"`
	RecruiterWelcome  string `mapstructure:"recruiter_welcome"`
	NewCandidateAlert string `mapstructure:"new_candidate_alert"`
	Notification      string `mapstructure:"notification"`
	ProfileReminder   string `mapstructure:"profile_reminder"`
	Recommendations   string `mapstructure:"recommendations"`
	SweepReport       string `mapstructure:"sweep_report"`
	GapReport         string `mapstructure:"gap_report"`
}

type MailConfig struct {
	APIKey               string          `mapstructure:"api_key"`
	BaseURL              string          `mapstructure:"base_url"`
	From                 string          `mapstructure:"from"`
	TeamAddress          string          `mapstructure:"team_address"`
	MaxRequestsPerSecond float32         `mapstructure:"max_requests_per_second"`
	Templates            TemplatesConfig `mapstructure:"templates"`
}

func (config MailConfig) validate() error {

	var missingFields []string

	if config.APIKey == "" {
		missingFields = append(missingFields, "api_key")
	}
	if config.From == "" {
		missingFields = append(missingFields, "from")
	}
	if config.TeamAddress == "" {
		missingFields = append(missingFields, "team_address")
	}

	templates := map[string]string{
		"templates.candidate_welcome":   config.Templates.CandidateWelcome,
		"templates.recruiter_welcome":   config.Templates.RecruiterWelcome,
		"templates.new_candidate_alert": config.Templates.NewCandidateAlert,
		"templates.notification":        config.Templates.Notification,
		"templates.profile_reminder":    config.Templates.ProfileReminder,
		"templates.recommendations":     config.Templates.Recommendations,
		"templates.sweep_report":        config.Templates.SweepReport,
		"templates.gap_report":          config.Templates.GapReport,
	}
	for name, id := range templates {
		if id == "" {
			missingFields = append(missingFields, name)
		}
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	if config.MaxRequestsPerSecond <= 0 {
		return fmt.Errorf("max_requests_per_second must be greater than zero")
	}

	return nil
}

func (config MailConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"mail.api_key":      "SENDGRID_API_KEY",
		"mail.from":         "MAIL_FROM",
		"mail.team_address": "MAIL_TEAM_ADDRESS",
	})
}
