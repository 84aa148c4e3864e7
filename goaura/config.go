package goaura

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
	DB     DBConfig     `toml:"db"`
	AI     AIConfig     `toml:"ai"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type ServerConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	AllowOrigins string `toml:"allow_origins"`
}

type DBConfig struct {
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	Database     string `toml:"database"`
	PoolSize     int    `toml:"pool_size"`
	MaxIdleConns int    `toml:"max_idle_conns"`
	MaxLifetime  int    `toml:"max_lifetime"`
}

type AIConfig struct {
	BaseURL             string `toml:"base_url"`
	SealedAPIKey        string `toml:"sealed_api_key"`
	KeyPassphrase       string `toml:"key_passphrase"`
	CheapModel          string `toml:"cheap_model"`
	StrongModel         string `toml:"strong_model"`
	DailyTokenLimit     int64  `toml:"daily_token_limit"`
	MonthlyTokenLimit   int64  `toml:"monthly_token_limit"`
	MaxCompletionTokens int64  `toml:"max_completion_tokens"`
	RequestTimeoutSecs  int    `toml:"request_timeout_secs"`
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.AI.CheapModel == "" {
		c.AI.CheapModel = "deepseek-chat"
	}
	if c.AI.StrongModel == "" {
		c.AI.StrongModel = "deepseek-reasoner"
	}
	if c.AI.DailyTokenLimit == 0 {
		c.AI.DailyTokenLimit = 6000
	}
	if c.AI.MonthlyTokenLimit == 0 {
		c.AI.MonthlyTokenLimit = 140000
	}
	if c.AI.MaxCompletionTokens == 0 {
		c.AI.MaxCompletionTokens = 1024
	}
	if c.AI.RequestTimeoutSecs == 0 {
		c.AI.RequestTimeoutSecs = 60
	}
}
