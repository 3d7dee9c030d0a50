package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADDR", "")
	t.Setenv("QUIZDECK_DB", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TOGETHER_API_KEY", "")
	t.Setenv("TOGETHER_MODEL", "")

	cfg := Load()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.DBPath != "quizdeck.db" {
		t.Errorf("DBPath = %q, want quizdeck.db", cfg.DBPath)
	}
	if cfg.JWTSecret != "" {
		t.Errorf("JWTSecret = %q, want empty", cfg.JWTSecret)
	}
	if cfg.TokenTTL != 7*24*time.Hour {
		t.Errorf("TokenTTL = %v, want 168h", cfg.TokenTTL)
	}
	if cfg.TogetherModel != "meta-llama/Llama-3.3-70B-Instruct-Turbo" {
		t.Errorf("TogetherModel = %q", cfg.TogetherModel)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("QUIZDECK_DB", "/tmp/test.db")
	t.Setenv("JWT_SECRET", "sekrit")
	t.Setenv("TOGETHER_API_KEY", "key-123")
	t.Setenv("TOGETHER_MODEL", "mistralai/Mixtral-8x7B-Instruct-v0.1")

	cfg := Load()

	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q", cfg.Addr)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.JWTSecret != "sekrit" {
		t.Errorf("JWTSecret = %q", cfg.JWTSecret)
	}
	if cfg.TogetherAPIKey != "key-123" {
		t.Errorf("TogetherAPIKey = %q", cfg.TogetherAPIKey)
	}
	if cfg.TogetherModel != "mistralai/Mixtral-8x7B-Instruct-v0.1" {
		t.Errorf("TogetherModel = %q", cfg.TogetherModel)
	}
}
