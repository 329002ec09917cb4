package internal

import "time"

type Config struct {
	APIBaseURL     string `env:"API_BASE_URL,required=true"`
	ChannelURL     string `env:"CHANNEL_URL,required=true"`
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	LogLevel       string `env:"LOG_LEVEL,required=true"`

	HTTPTimeout       time.Duration `env:"HTTP_TIMEOUT,default=10s"`
	HeartbeatInterval time.Duration `env:"HEARTBEAT_INTERVAL,default=30s"`
	RestartInterval   time.Duration `env:"RESTART_INTERVAL,default=200ms"`
}
