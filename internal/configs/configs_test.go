package configs

import "testing"

func TestLoadConfigMissingPort(t *testing.T) {
	if _, err := LoadConfig(nil); err == nil {
		t.Fatal("expected error for missing port argument")
	}
}

func TestLoadConfigPortOutOfRange(t *testing.T) {
	for _, p := range []string{"0", "-1", "10001", "abc"} {
		if _, err := LoadConfig([]string{p}); err == nil {
			t.Fatalf("port %q: expected error", p)
		}
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig([]string{"5000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 5000 {
		t.Fatalf("Port = %d, want 5000", cfg.Port)
	}
	if cfg.LogPath != "server.log" {
		t.Fatalf("LogPath = %q, want server.log", cfg.LogPath)
	}
	if cfg.AdminAddr != "" {
		t.Fatalf("AdminAddr = %q, want empty by default", cfg.AdminAddr)
	}
	if cfg.ConnectRate != 5 || cfg.ConnectBurst != 10 {
		t.Fatalf("ConnectRate/Burst = %v/%d, want 5/10", cfg.ConnectRate, cfg.ConnectBurst)
	}
}

func TestLoadConfigAllowedOrigins(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	cfg, err := LoadConfig([]string{"5000"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("AllowedOrigins = %v, want 2 entries", cfg.AllowedOrigins)
	}
}
