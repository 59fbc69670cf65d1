package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Uploads UploadsConfig `mapstructure:"uploads"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DBConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}

type AuthConfig struct {
	Secret   string        `mapstructure:"secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type UploadsConfig struct {
	Dir string `mapstructure:"dir"`
}

// LoadConfig loads configuration from config.yaml and environment variables
func LoadConfig() (*Config, error) {
	v := viper.New()

	// Set config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./deploy/")
	v.AddConfigPath("./")
	v.AddConfigPath("$HOME/.cuchilleria/")
	v.AddConfigPath("/etc/cuchilleria/")

	// Enable environment variable override with CUCHILLERIA_ prefix
	v.SetEnvPrefix("CUCHILLERIA")
	v.AutomaticEnv()

	v.SetDefault("server.addr", ":5000")
	v.SetDefault("db.maxOpenConns", 10)
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("uploads.dir", "./uploads")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Auth.Secret == "" {
		return nil, fmt.Errorf("auth.secret must be set")
	}

	return &config, nil
}
