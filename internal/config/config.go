package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Unread  UnreadConfig  `mapstructure:"unread"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Demo    DemoConfig    `mapstructure:"demo"`
	Logging LoggingConfig `mapstructure:"logging"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	DemoMode bool `mapstructure:"-"` // 使用内置演示服务端代替线上 API
}

type APIConfig struct {
	BaseURL        string        `mapstructure:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout_seconds"`
	RequestsPerSec float64       `mapstructure:"requests_per_sec"`
	Burst          int           `mapstructure:"burst"`
}

type AuthConfig struct {
	Token  string `mapstructure:"token"`
	UserID string `mapstructure:"user_id"`
}

type UnreadConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval_seconds"`
}

type CacheConfig struct {
	Dir string `mapstructure:"dir"`
}

type DemoConfig struct {
	Port string `mapstructure:"port"`
}

type LoggingConfig struct {
	Mode string `mapstructure:"mode"`
	File string `mapstructure:"file"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("LINKS54")
	viper.AutomaticEnv()

	// API
	viper.BindEnv("api.base_url", "LINKS54_API_BASE_URL")
	viper.BindEnv("api.timeout_seconds", "LINKS54_API_TIMEOUT_SECONDS")

	// Auth
	viper.BindEnv("auth.token", "LINKS54_TOKEN")
	viper.BindEnv("auth.user_id", "LINKS54_USER_ID")

	// Unread
	viper.BindEnv("unread.poll_interval_seconds", "LINKS54_POLL_INTERVAL_SECONDS")

	// Cache
	viper.BindEnv("cache.dir", "LINKS54_CACHE_DIR")

	// Logging
	viper.BindEnv("logging.mode", "LINKS54_LOG_MODE")

	viper.SetDefault("api.base_url", "https://api.54links.com/api")
	viper.SetDefault("api.timeout_seconds", 15)
	viper.SetDefault("api.requests_per_sec", 10)
	viper.SetDefault("api.burst", 20)
	viper.SetDefault("unread.poll_interval_seconds", 30)
	viper.SetDefault("cache.dir", ".links54")
	viper.SetDefault("demo.port", "8054")
	viper.SetDefault("logging.mode", "info")
	viper.SetDefault("logging.file", "logs/client.log")

	if err := viper.ReadInConfig(); err != nil {
		// 没有配置文件时仅依赖环境变量和默认值
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.API.Timeout = cfg.API.Timeout * time.Second
	cfg.Unread.PollInterval = cfg.Unread.PollInterval * time.Second

	if cfg.API.BaseURL == "" {
		return nil, fmt.Errorf("api.base_url must not be empty")
	}

	if cfg.Cache.Dir != "" {
		if _, err := os.Stat(cfg.Cache.Dir); os.IsNotExist(err) {
			os.MkdirAll(cfg.Cache.Dir, 0755)
		}
	}

	return &cfg, nil
}
