package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hostedpay.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const minimalConfig = `
gateway:
  url: https://gw.example/service
  user_id: SampleMerchant
  key: abcdef0123456789
`

func TestLoad_Minimal(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Gateway.URL != "https://gw.example/service" {
		t.Errorf("Gateway.URL = %s", cfg.Gateway.URL)
	}
	if cfg.Gateway.UserID != "SampleMerchant" {
		t.Errorf("Gateway.UserID = %s", cfg.Gateway.UserID)
	}

	// Defaults
	if cfg.Gateway.Timeout != 30*time.Second {
		t.Errorf("Gateway.Timeout = %v, want 30s default", cfg.Gateway.Timeout)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080 default", cfg.Server.Port)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want info/json defaults", cfg.Logging)
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("Metrics.Path = %s, want /metrics default", cfg.Metrics.Path)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
gateway:
  url: https://uat.gw.example/service
  user_id: DevMerchant
  key: devkey
  timeout: 5s
  insecure_skip_verify: true
server:
  host: 127.0.0.1
  port: 9090
logging:
  level: debug
  format: console
metrics:
  enabled: true
  path: /internal/metrics
`))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if !cfg.Gateway.InsecureSkipVerify {
		t.Error("InsecureSkipVerify = false, want true")
	}
	if cfg.Gateway.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Gateway.Timeout)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9090 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Path != "/internal/metrics" {
		t.Errorf("Metrics = %+v", cfg.Metrics)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantErr string
	}{
		{"missing url", "gateway:\n  user_id: a\n  key: b\n", "gateway.url"},
		{"bad scheme", "gateway:\n  url: ftp://x\n  user_id: a\n  key: b\n", "http(s)"},
		{"missing user id", "gateway:\n  url: https://x\n  key: b\n", "gateway.user_id"},
		{"missing key", "gateway:\n  url: https://x\n  user_id: a\n", "gateway.key"},
		{"bad level", minimalConfig + "logging:\n  level: loud\n", "logging.level"},
		{"bad format", minimalConfig + "logging:\n  format: xml\n", "logging.format"},
		{"not yaml", "{{{{", "parse config"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, c.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), c.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, c.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
