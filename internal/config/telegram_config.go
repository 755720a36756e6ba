package config

import "fmt"

// TelegramConfig is optional: with an empty token no team chat alerts are sent.
type TelegramConfig struct {
	Token      string `mapstructure:"token"`
	TeamChatID int64  `mapstructure:"team_chat_id"`
}

func (config TelegramConfig) Enabled() bool {
	return config.Token != ""
}

func (config TelegramConfig) validate() error {
	if config.Enabled() && config.TeamChatID == 0 {
		return fmt.Errorf("team_chat_id is required when token is set")
	}
	return nil
}

func (config TelegramConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"telegram.token":        "TG_TOKEN",
		"telegram.team_chat_id": "TG_TEAM_CHAT_ID",
	})
}
