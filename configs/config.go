package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Bot struct {
		Token string `mapstructure:"token"`
		Debug bool   `mapstructure:"debug"`
	} `mapstructure:"bot"`
	App struct {
		PingCount        int           `mapstructure:"ping_count"`
		PingTimeout      time.Duration `mapstructure:"ping_timeout"`
		SpeedtestTimeout time.Duration `mapstructure:"speedtest_timeout"`
	} `mapstructure:"app"`
}

// LoadConfig reads configs/config.yaml and applies environment overrides.
// TOKEN always wins over the file so the bot can run without one.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("configs")

	viper.SetDefault("bot.debug", false)
	viper.SetDefault("app.ping_count", 4)
	viper.SetDefault("app.ping_timeout", 30*time.Second)
	viper.SetDefault("app.speedtest_timeout", 5*time.Minute)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		// No file is fine as long as the token comes from the environment.
	}

	if err := viper.BindEnv("bot.token", "TOKEN"); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Bot.Token == "" {
		return nil, errors.New("bot token is not set (configs/config.yaml bot.token or TOKEN env)")
	}
	if config.App.PingCount < 1 {
		config.App.PingCount = 4
	}

	return &config, nil
}
