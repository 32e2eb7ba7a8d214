package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Server struct {
	Addr            string        `mapstructure:"addr"`
	DBPath          string        `mapstructure:"db_path"`
	TrendSize       int           `mapstructure:"trend_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Load reads the server configuration from a YAML file, filling in defaults
// for anything unset. SERVER_HOST/SERVER_PORT from the environment still
// take precedence in main.
func Load(path string) (*Server, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetDefault("addr", "localhost:8080")
	v.SetDefault("db_path", "audit-atlas.db")
	v.SetDefault("trend_size", 10)
	v.SetDefault("shutdown_timeout", 10*time.Second)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Server
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse server config: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no config file is given.
func Default() *Server {
	return &Server{
		Addr:            "localhost:8080",
		DBPath:          "audit-atlas.db",
		TrendSize:       10,
		ShutdownTimeout: 10 * time.Second,
	}
}
