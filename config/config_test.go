package config

import (
	"strings"
	"testing"
	"time"
)

// setRequired sets the only variable without a usable default.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "test-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Port = %q, want 8000", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("Address = %q", cfg.Address)
	}
	if cfg.Env != "dev" || cfg.LogLevel != "info" {
		t.Errorf("Env/LogLevel = %q/%q", cfg.Env, cfg.LogLevel)
	}
	if cfg.LLMModel != "gemini-2.5-flash" {
		t.Errorf("LLMModel = %q", cfg.LLMModel)
	}
	if cfg.LLMTimeout != 90*time.Second {
		t.Errorf("LLMTimeout = %s, want 90s", cfg.LLMTimeout)
	}
	if cfg.LogRetentionWeeks != 4 {
		t.Errorf("LogRetentionWeeks = %d, want 4", cfg.LogRetentionWeeks)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"privileged port", "PORT", "80", "PORT"},
		{"non-numeric port", "PORT", "abc", "PORT"},
		{"port out of range", "PORT", "70000", "PORT"},
		{"bad address", "ADDRESS", "not-an-ip", "ADDRESS"},
		{"bad env", "ENV", "production!", "ENV"},
		{"bad log level", "LOG_LEVEL", "verbose", "LOG_LEVEL"},
		{"retention too long", "LOG_RETENTION_WEEKS", "99", "LOG_RETENTION_WEEKS"},
		{"log file too small", "MAX_LOG_FILE_SIZE", "1024", "MAX_LOG_FILE_SIZE"},
		{"llm timeout too short", "LLM_TIMEOUT", "1s", "LLM_TIMEOUT"},
		{"llm timeout too long", "LLM_TIMEOUT", "1h", "LLM_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load succeeded with %s=%s", tt.key, tt.value)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %s", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("Load error = %v, want missing GEMINI_API_KEY", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("LLM_MODEL", "gemini-2.5-flash-lite")
	t.Setenv("LLM_TIMEOUT", "30s")
	t.Setenv("ENV", "prod")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9090" || cfg.LLMModel != "gemini-2.5-flash-lite" ||
		cfg.LLMTimeout != 30*time.Second || cfg.Env != "prod" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}
