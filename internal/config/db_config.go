package config

import (
	"fmt"
)

type dbDriver string

const (
	DriverSqlite   dbDriver = "sqlite"
	DriverPostgres dbDriver = "postgres"
)

type DBConfig struct {
	Driver           dbDriver `mapstructure:"driver"`
	ConnectionString string   `mapstructure:"connection_string"`
}

func (config DBConfig) validate() error {
	if config.ConnectionString == "" {
		return fmt.Errorf("missing variable: db connection string")
	}
	switch config.Driver {
	case DriverSqlite, DriverPostgres:
		return nil
	default:
		return fmt.Errorf("unsupported db driver: %q", config.Driver)
	}
}

func (config DBConfig) bindEnvironmentVariables() error {
	return bindAll(map[string]string{
		"db.driver":            "DB_DRIVER",
		"db.connection_string": "DB_CONNECTION_STRING",
	})
}

