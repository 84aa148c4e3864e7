package goaura

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[server]
host = "0.0.0.0"
port = 9090
allow_origins = "https://app.example.com"

[db]
host = "localhost"
port = 5432
user = "goaura"
password = "secret"
database = "goaura"
pool_size = 10

[ai]
base_url = "https://api.deepseek.com"
sealed_api_key = "c2VhbGVk"
key_passphrase = "pass"
daily_token_limit = 5000
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.DB.Database != "goaura" || cfg.DB.PoolSize != 10 {
		t.Errorf("DB = %+v", cfg.DB)
	}
	if cfg.AI.DailyTokenLimit != 5000 {
		t.Errorf("AI.DailyTokenLimit = %d, want explicit 5000", cfg.AI.DailyTokenLimit)
	}

	// Unset fields fall back to defaults.
	if cfg.AI.CheapModel != "deepseek-chat" || cfg.AI.StrongModel != "deepseek-reasoner" {
		t.Errorf("models = %q/%q, want defaults", cfg.AI.CheapModel, cfg.AI.StrongModel)
	}
	if cfg.AI.MonthlyTokenLimit != 140000 {
		t.Errorf("AI.MonthlyTokenLimit = %d, want default 140000", cfg.AI.MonthlyTokenLimit)
	}
	if cfg.AI.MaxCompletionTokens != 1024 {
		t.Errorf("AI.MaxCompletionTokens = %d, want default 1024", cfg.AI.MaxCompletionTokens)
	}
	if cfg.AI.RequestTimeoutSecs != 60 {
		t.Errorf("AI.RequestTimeoutSecs = %d, want default 60", cfg.AI.RequestTimeoutSecs)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("LoadConfig() on missing file succeeded, want error")
	}
}

func TestLoadConfig_MalformedTOML(t *testing.T) {
	path := writeConfig(t, "[server\nport = not a number")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("LoadConfig() on malformed file succeeded, want error")
	}
}

func TestLoadConfig_EmptyFileGetsDefaults(t *testing.T) {
	path := writeConfig(t, "")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want default 8080", cfg.Server.Port)
	}
}
