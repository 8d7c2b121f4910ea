package domain

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Generator.Enabled {
		t.Error("generator must be disabled by default")
	}
	if cfg.EventBus.Type != "channel" {
		t.Errorf("expected channel bus by default, got %s", cfg.EventBus.Type)
	}
	if len(cfg.Alerts.Rules) != 1 || cfg.Alerts.Rules[0].ID != "high-risk-call" {
		t.Errorf("unexpected default alert rules: %+v", cfg.Alerts.Rules)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
generator:
  enabled: true
  model: gpt-4o-mini
eventBus:
  type: nats
  natsUrl: nats://localhost:4222
alerts:
  rules:
    - id: confirmed-call
      expression: verdict == "phishing confirmed"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	// Unset fields keep their defaults.
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("expected default host, got %s", cfg.Server.Host)
	}
	if !cfg.Generator.Enabled || cfg.Generator.Model != "gpt-4o-mini" {
		t.Errorf("generator config not applied: %+v", cfg.Generator)
	}
	if cfg.EventBus.Type != "nats" || cfg.EventBus.NATSUrl != "nats://localhost:4222" {
		t.Errorf("event bus config not applied: %+v", cfg.EventBus)
	}
	if len(cfg.Alerts.Rules) != 1 || cfg.Alerts.Rules[0].ID != "confirmed-call" {
		t.Errorf("alert rules not applied: %+v", cfg.Alerts.Rules)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/does/not/exist.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"scammer", RoleScammer},
		{"victim", RoleVictim},
		{"", RoleScammer},
		{"something-else", RoleScammer},
	}

	for _, tt := range tests {
		if got := ParseRole(tt.in); got != tt.want {
			t.Errorf("ParseRole(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
