package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("wrong default base url: %q", cfg.BaseURL)
	}
	if cfg.Port != "8080" || cfg.RedisAddr != "localhost:6379" {
		t.Errorf("wrong server defaults: %q %q", cfg.Port, cfg.RedisAddr)
	}
	if cfg.OTP_Length != 6 || cfg.OTP_MaxAttempts != 3 {
		t.Errorf("wrong otp defaults: %d %d", cfg.OTP_Length, cfg.OTP_MaxAttempts)
	}
	if cfg.OTP_ResendWindow != time.Minute || cfg.OTP_TTL != 5*time.Minute {
		t.Errorf("wrong otp windows: %v %v", cfg.OTP_ResendWindow, cfg.OTP_TTL)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := `
client:
  base_url: https://api.example.com
server:
  port: 9000
jwt:
  ttl: 1h
otp:
  max_attempts: 5
  resend_window: 30s
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.BaseURL != "https://api.example.com" {
		t.Errorf("file base url not applied: %q", cfg.BaseURL)
	}
	if cfg.Port != "9000" {
		t.Errorf("file port not applied: %q", cfg.Port)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("file jwt ttl not applied: %v", cfg.TokenTTL)
	}
	if cfg.OTP_MaxAttempts != 5 || cfg.OTP_ResendWindow != 30*time.Second {
		t.Errorf("file otp settings not applied: %d %v", cfg.OTP_MaxAttempts, cfg.OTP_ResendWindow)
	}
}

func TestLoad_InvalidDurationFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("jwt:\n  ttl: forever\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unparseable duration")
	}
}
