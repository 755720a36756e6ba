package config

import (
	"errors"
	"fmt"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"os"
)

type Config struct {
	Logger   LoggerConfig   `mapstructure:"logger"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	DB       DBConfig       `mapstructure:"db"`
	Mail     MailConfig     `mapstructure:"mail"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
}

type section interface {
	bindEnvironmentVariables() error
	validate() error
}

var defaultConfigFile = "./configs/config.yaml"

func Get() *Config {

	configFile := defaultConfigFile
	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		configFile = value
	}

	config, err := loadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func loadConfig(file string) (*Config, error) {

	viper.SetConfigFile(file)
	viper.AutomaticEnv()

	setDefaults()

	if err := bindEnvironmentVariables(); err != nil {
		return nil, err
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", file, err)
	}

	config := Config{}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func sections(config Config) map[string]section {
	return map[string]section{
		"LoggerConfig":   config.Logger,
		"MetricsConfig":  config.Metrics,
		"DBConfig":       config.DB,
		"MailConfig":     config.Mail,
		"TelegramConfig": config.Telegram,
		"RedisConfig":    config.Redis,
		"JobsConfig":     config.Jobs,
	}
}

func bindEnvironmentVariables() error {
	var errs []error

	for name, s := range sections(Config{}) {
		if err := s.bindEnvironmentVariables(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config Config) validate() error {
	var errs []error

	for name, s := range sections(config) {
		if err := s.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func bindAll(bindings map[string]string) error {
	var errs []error
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func setDefaults() {
	viper.SetDefault("logger.log_level", string(LevelInfo))
	viper.SetDefault("logger.app_name", "talent-jobs")
	viper.SetDefault("logger.output_file", "./logs/jobs.log")

	viper.SetDefault("metrics.address", ":8080")

	viper.SetDefault("db.driver", string(DriverSqlite))

	viper.SetDefault("mail.base_url", "https://api.sendgrid.com")
	viper.SetDefault("mail.max_requests_per_second", 10)

	viper.SetDefault("jobs.run_timeout", "2h")
	viper.SetDefault("jobs.gap_report.schedule", "0 0 * * *")
	viper.SetDefault("jobs.sweep.schedule", "0 1 * * *")
	viper.SetDefault("jobs.sweep.min_probe_interval", "2s")
	viper.SetDefault("jobs.sweep.probe_timeout", "15s")
	viper.SetDefault("jobs.sweep.unreachable_policy", string(UnreachableKeep))
	viper.SetDefault("jobs.reminder.schedule", "0 10 * * *")
	viper.SetDefault("jobs.recommendations.schedule", "0 9 * * 1,3")
	viper.SetDefault("jobs.recommendations.max_per_candidate", 3)
	viper.SetDefault("jobs.recommendations.workers", 4)
}
