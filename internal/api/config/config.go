package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 从文件加载配置并填充到 Cfg
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")

	viper.SetDefault("graph.timeout_seconds", 10)
	viper.SetDefault("graph.page_limit", 10)
	viper.SetDefault("graph.instagram.base_url", "https://graph.instagram.com/v23.0")
	viper.SetDefault("graph.instagram.oauth_url", "https://www.instagram.com/oauth/authorize")
	viper.SetDefault("graph.facebook.base_url", "https://graph.facebook.com/v23.0")
	viper.SetDefault("graph.facebook.oauth_url", "https://www.facebook.com/v23.0/dialog/oauth")
	viper.SetDefault("cron.token_refresh_spec", "0 0 0 * * *")
	viper.SetDefault("cron.metric_fetch_spec", "0 10 0 * * *")
	viper.SetDefault("cron.score_spec", "0 30 0 * * *")

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}
