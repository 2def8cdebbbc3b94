package config

import "github.com/kelseyhightower/envconfig"

type Config struct {
	TelegramBot TelegramBot
	Sleeper     Sleeper
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	ChatID int64  `envconfig:"CHAT_ID" required:"true"`
}

type Sleeper struct {
	Username string `envconfig:"SLEEPER_USERNAME" required:"true"`
	Season   string `envconfig:"SEASON" required:"true"`
	Provider string `envconfig:"PROVIDER" default:"rotowire"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
