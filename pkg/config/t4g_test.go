package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.APIBaseURL != "http://localhost:3000" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.Environment != EnvDevelopment {
		t.Errorf("Environment = %q", cfg.Environment)
	}
	if cfg.IsProduction() {
		t.Error("default environment must not be production")
	}
	if cfg.HealthProbeInterval != 30*time.Second {
		t.Errorf("HealthProbeInterval = %s", cfg.HealthProbeInterval)
	}
	if cfg.HealthProbeTimeout != 5*time.Second {
		t.Errorf("HealthProbeTimeout = %s", cfg.HealthProbeTimeout)
	}
}

func TestLoadTrimsTrailingSlash(t *testing.T) {
	t.Setenv("T4G_API_URL", "https://api.t4g.example/")
	t.Setenv("T4G_APP_URL", "https://app.t4g.example/")

	cfg := Load()
	if cfg.APIBaseURL != "https://api.t4g.example" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.AppBaseURL != "https://app.t4g.example" {
		t.Errorf("AppBaseURL = %q", cfg.AppBaseURL)
	}
}

func TestProviderConfiguration(t *testing.T) {
	t.Setenv("LINKEDIN_CLIENT_ID", "lk-1")

	cfg := Load()

	linkedin, ok := cfg.Provider("linkedin")
	if !ok {
		t.Fatal("linkedin provider missing")
	}
	if !linkedin.Configured() {
		t.Error("linkedin should be configured once a client id is set")
	}
	if linkedin.RedirectURI == "" {
		t.Error("redirect URI should default from the app URL")
	}

	// t4g ships no default authorize URL; without one it stays unusable.
	t.Setenv("T4G_CLIENT_ID", "t4g-1")
	t4gProvider, _ := Load().Provider("t4g")
	if t4gProvider.Configured() {
		t.Error("t4g must stay unconfigured without an authorize URL")
	}

	if _, ok := cfg.Provider("unknown"); ok {
		t.Error("unknown providers must not resolve")
	}
}

func TestIsProduction(t *testing.T) {
	t.Setenv("T4G_ENV", EnvProduction)
	if !Load().IsProduction() {
		t.Error("production environment not detected")
	}
}
