package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/billora/billora/internal/types"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Mongo      MongoConfig      `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	AI         AIConfig
	Logging    LoggingConfig `validate:"required"`
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type MongoConfig struct {
	URI      string `validate:"required"`
	Database string `validate:"required"`
}

type AuthConfig struct {
	// Secret signs and verifies JWT session tokens
	Secret string `validate:"required"`
}

type AIConfig struct {
	// APIKey for the Gemini completion API; extraction endpoints return an
	// upstream error when unset
	APIKey string
	Model  string
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/billora")

	// Set up environment variables support
	v.SetEnvPrefix("BILLORA")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	// Read config file if exists
	if err := v.ReadInConfig(); err != nil {
		fmt.Printf("Error reading config file: %v\n", err)
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.AI.Model == "" {
		config.AI.Model = "gemini-2.0-flash-001"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "billora",
		},
		Auth:    AuthConfig{Secret: "local-dev-secret"},
		AI:      AIConfig{Model: "gemini-2.0-flash-001"},
		Logging: LoggingConfig{Level: types.LogLevelDebug},
	}
}
