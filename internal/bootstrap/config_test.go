package bootstrap

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	if cfg.ServerAddr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.ServerAddr)
	}
	if cfg.SampleRate != 16000 {
		t.Errorf("expected default sample rate 16000, got %d", cfg.SampleRate)
	}
	if cfg.TokenTTL != 10*time.Minute {
		t.Errorf("expected default token TTL 10m, got %v", cfg.TokenTTL)
	}
	if cfg.HistoryCapacity != 5000 {
		t.Errorf("expected default history capacity 5000, got %d", cfg.HistoryCapacity)
	}
	if cfg.AssemblyAIWSURL != "wss://streaming.assemblyai.com/v3/ws" {
		t.Errorf("unexpected realtime URL %q", cfg.AssemblyAIWSURL)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("SAMPLE_RATE", "8000")
	t.Setenv("TOKEN_TTL_SECONDS", "60")
	t.Setenv("HISTORY_CAPACITY", "not-a-number")

	cfg := LoadConfig()

	if cfg.ServerAddr != ":9999" {
		t.Errorf("expected addr override, got %q", cfg.ServerAddr)
	}
	if cfg.SampleRate != 8000 {
		t.Errorf("expected sample rate override, got %d", cfg.SampleRate)
	}
	if cfg.TokenTTL != time.Minute {
		t.Errorf("expected token TTL override, got %v", cfg.TokenTTL)
	}
	if cfg.HistoryCapacity != 5000 {
		t.Errorf("expected invalid int to fall back to default, got %d", cfg.HistoryCapacity)
	}
}

func TestParseLogLevel(t *testing.T) {
	for level, want := range map[string]string{
		"debug":   "DEBUG",
		"info":    "INFO",
		"warn":    "WARN",
		"error":   "ERROR",
		"bogus":   "INFO",
		"":        "INFO",
		"INFO":    "INFO",
		"verbose": "INFO",
	} {
		if got := parseLogLevel(level).String(); got != want {
			t.Errorf("parseLogLevel(%q) = %s, want %s", level, got, want)
		}
	}
}
