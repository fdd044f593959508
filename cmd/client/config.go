package main

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerURL string `envconfig:"SERVER_URL" default:"http://localhost:1234"`
	Login     string `envconfig:"CHAT_LOGIN"`
	Secret    string `envconfig:"CHAT_SECRET"`
	Room      int    `envconfig:"CHAT_ROOM" default:"1"`
	// CHAT_COLOURS enables colorized output for better readability
	Colours      bool          `envconfig:"CHAT_COLOURS" default:"true"`
	PollInterval time.Duration `envconfig:"POLL_INTERVAL" default:"1s"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
