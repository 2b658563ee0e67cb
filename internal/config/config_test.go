package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != "8080" {
		t.Errorf("port = %s, want 8080", cfg.Server.Port)
	}
	if cfg.GetAddr() != "0.0.0.0:8080" {
		t.Errorf("addr = %s", cfg.GetAddr())
	}
	if !cfg.IsDevelopment() {
		t.Error("default env should be development")
	}
	if cfg.Game.SessionCodeLength != 4 {
		t.Errorf("code length = %d, want 4", cfg.Game.SessionCodeLength)
	}
	if cfg.Game.StartDelay != 3*time.Second {
		t.Errorf("start delay = %v, want 3s", cfg.Game.StartDelay)
	}
	if cfg.Game.RemovalGrace != 2*time.Minute {
		t.Errorf("removal grace = %v, want 2m", cfg.Game.RemovalGrace)
	}
	if cfg.Game.DeletionGrace != 5*time.Minute {
		t.Errorf("deletion grace = %v, want 5m", cfg.Game.DeletionGrace)
	}
	if cfg.Game.BotRetryLimit != 3 {
		t.Errorf("bot retry limit = %d, want 3", cfg.Game.BotRetryLimit)
	}
	if cfg.Oracle.APIKey != "" {
		t.Error("oracle should be disabled by default")
	}
	if cfg.Oracle.Timeout != 20*time.Second {
		t.Errorf("oracle timeout = %v, want 20s", cfg.Oracle.Timeout)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("ENV", "production")
	t.Setenv("BOT_RETRY_LIMIT", "5")
	t.Setenv("REMOVAL_GRACE_SECONDS", "15")

	cfg := Load()
	if cfg.Server.Port != "9999" {
		t.Errorf("port = %s, want 9999", cfg.Server.Port)
	}
	if !cfg.IsProduction() {
		t.Error("env override not applied")
	}
	if cfg.Game.BotRetryLimit != 5 {
		t.Errorf("bot retry limit = %d, want 5", cfg.Game.BotRetryLimit)
	}
	if cfg.Game.RemovalGrace != 15*time.Second {
		t.Errorf("removal grace = %v, want 15s", cfg.Game.RemovalGrace)
	}
}

func TestLoadIgnoresMalformedInts(t *testing.T) {
	t.Setenv("BOT_RETRY_LIMIT", "not-a-number")

	cfg := Load()
	if cfg.Game.BotRetryLimit != 3 {
		t.Errorf("bot retry limit = %d, want default 3", cfg.Game.BotRetryLimit)
	}
}
