package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.LANDefaultURL != "http://192.168.1.50:5000" {
		t.Errorf("LANDefaultURL = %q, want the hardcoded LAN default", cfg.LANDefaultURL)
	}
	if cfg.LocalhostURL != "http://localhost:5000" {
		t.Errorf("LocalhostURL = %q, want localhost fallback", cfg.LocalhostURL)
	}
	if !cfg.AutoDetect {
		t.Error("AutoDetect should default to true")
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want 10s", cfg.RequestTimeout)
	}
	if cfg.ProbeTimeout != 3*time.Second {
		t.Errorf("ProbeTimeout = %v, want 3s", cfg.ProbeTimeout)
	}
	if cfg.MaxHostRetries != 2 {
		t.Errorf("MaxHostRetries = %d, want 2", cfg.MaxHostRetries)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CLINICDESK_API_URL", "http://10.0.0.9:5000")
	t.Setenv("CLINICDESK_REQUEST_TIMEOUT", "5s")
	t.Setenv("CLINICDESK_AUTO_DETECT", "false")
	t.Setenv("PREFS_BACKEND", "Redis")

	cfg := Load()

	if cfg.ManualAPIURL != "http://10.0.0.9:5000" {
		t.Errorf("ManualAPIURL = %q, want override", cfg.ManualAPIURL)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
	if cfg.AutoDetect {
		t.Error("AutoDetect should be false from env")
	}
	if cfg.PrefsBackend != "redis" {
		t.Errorf("PrefsBackend = %q, want normalized %q", cfg.PrefsBackend, "redis")
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("CLINICDESK_MAX_HOST_RETRIES", "lots")
	t.Setenv("CLINICDESK_PROBE_TIMEOUT", "soon")

	cfg := Load()

	if cfg.MaxHostRetries != 2 {
		t.Errorf("MaxHostRetries = %d, want default 2 on bad input", cfg.MaxHostRetries)
	}
	if cfg.ProbeTimeout != 3*time.Second {
		t.Errorf("ProbeTimeout = %v, want default 3s on bad input", cfg.ProbeTimeout)
	}
}
