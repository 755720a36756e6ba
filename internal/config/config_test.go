package config

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"testing"
	"time"
)

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {
	os.Setenv("CONFIG_PATH", "../../configs/config.yaml")

	os.Setenv("SENDGRID_API_KEY", "overrideKey")
	os.Setenv("MAIL_TEAM_ADDRESS", "team@example.com")
	os.Setenv("DB_CONNECTION_STRING", "newConnectionString")
	os.Setenv("DB_DRIVER", "postgres")
	os.Setenv("TG_TOKEN", "tgToken")
	os.Setenv("TG_TEAM_CHAT_ID", "-1001")
	os.Setenv("REDIS_URL", "redis://localhost:6379/0")
	os.Setenv("SWEEP_UNREACHABLE_POLICY", "review")
	os.Setenv("SWEEP_MIN_PROBE_INTERVAL", "3s")
	os.Setenv("RECOMMENDATIONS_WORKERS", "8")
	os.Setenv("LOG_LEVEL", "DEBUG")

	cfg := Get()

	assert.Equal(t, "overrideKey", cfg.Mail.APIKey)
	assert.Equal(t, "team@example.com", cfg.Mail.TeamAddress)
	assert.Equal(t, "steven@joineven.io", cfg.Mail.From)
	assert.Equal(t, "d-ab48cb8e46e44974980a306cce24331b", cfg.Mail.Templates.GapReport)
	assert.Equal(t, "newConnectionString", cfg.DB.ConnectionString)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "tgToken", cfg.Telegram.Token)
	assert.Equal(t, int64(-1001), cfg.Telegram.TeamChatID)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, UnreachableReview, cfg.Jobs.Sweep.UnreachablePolicy)
	assert.Equal(t, 3*time.Second, cfg.Jobs.Sweep.MinProbeInterval)
	assert.Equal(t, 15*time.Second, cfg.Jobs.Sweep.ProbeTimeout)
	assert.Equal(t, 8, cfg.Jobs.Recommendations.Workers)
	assert.Equal(t, 3, cfg.Jobs.Recommendations.MaxPerCandidate)
	assert.Equal(t, "0 9 * * 1,3", cfg.Jobs.Recommendations.Schedule)
	assert.Equal(t, 2*time.Hour, cfg.Jobs.RunTimeout)
	assert.Equal(t, LevelDebug, cfg.Logger.LogLevel)
}

func Test_Config_Validate_ReportsEverySection(t *testing.T) {
	err := Config{}.validate()
	require.Error(t, err)

	for _, section := range []string{"LoggerConfig", "MetricsConfig", "DBConfig", "MailConfig", "JobsConfig"} {
		assert.Contains(t, err.Error(), section)
	}
	assert.NotContains(t, err.Error(), "TelegramConfig")
	assert.NotContains(t, err.Error(), "RedisConfig")
}

func Test_TelegramConfig_TokenWithoutChat_IsInvalid(t *testing.T) {
	assert.NoError(t, TelegramConfig{}.validate())
	assert.Error(t, TelegramConfig{Token: "token"}.validate())
	assert.NoError(t, TelegramConfig{Token: "token", TeamChatID: 42}.validate())
}

func Test_JobsConfig_UnknownUnreachablePolicy_IsInvalid(t *testing.T) {
	cfg := JobsConfig{
		RunTimeout:      time.Hour,
		GapReport:       ScheduleConfig{Schedule: "0 0 * * *"},
		Reminder:        ScheduleConfig{Schedule: "0 10 * * *"},
		Sweep:           SweepConfig{Schedule: "0 1 * * *", ProbeTimeout: time.Second, UnreachablePolicy: UnreachableKeep},
		Recommendations: RecommendationsConfig{Schedule: "0 9 * * 1,3", MaxPerCandidate: 3, Workers: 1},
	}
	assert.NoError(t, cfg.validate())

	cfg.Sweep.UnreachablePolicy = "delete"
	assert.ErrorContains(t, cfg.validate(), "unreachable_policy")
}
