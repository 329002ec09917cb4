package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_API_ADDR points at a running collaborator; tests skip when empty.
	APIAddr     string `envconfig:"E2E_API_ADDR"`
	ChannelAddr string `envconfig:"E2E_CHANNEL_ADDR"`
	Email       string `envconfig:"E2E_EMAIL" default:"e2e@example.com"`
	Password    string `envconfig:"E2E_PASSWORD" default:"e2e-password-123"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
