package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validYAML = `
resource_api: https://clinic.example.com/api/
source:
  org_id: "9"
  clinic_id: "12"
  auth_token: src-token
destination:
  org_id: "9"
  clinic_id: "30"
  auth_token: dst-token
skip_care_sessions: true
provider_mappings:
  - source_id: 7
    target_id: 70
user_mappings:
  - source_id: 9
    target_id: 90
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Source.ClinicID != "12" || cfg.Destination.ClinicID != "30" {
		t.Errorf("tenants = %+v / %+v", cfg.Source, cfg.Destination)
	}
	if !cfg.SkipCareSessions {
		t.Error("skip_care_sessions not loaded")
	}
	if len(cfg.ProviderMappings) != 1 || cfg.ProviderMappings[0].SourceID != 7 || cfg.ProviderMappings[0].TargetID != 70 {
		t.Errorf("provider mappings = %+v", cfg.ProviderMappings)
	}
	if len(cfg.UserMappings) != 1 || cfg.UserMappings[0].TargetID != 90 {
		t.Errorf("user mappings = %+v", cfg.UserMappings)
	}
	if cfg.WriteTimeout != 2*time.Minute {
		t.Errorf("write_timeout default = %v", cfg.WriteTimeout)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			ResourceAPI: "https://clinic.example.com/api/",
			Source:      Tenant{OrgID: "9", ClinicID: "12", AuthToken: "a"},
			Destination: Tenant{OrgID: "9", ClinicID: "30", AuthToken: "b"},
		}
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no resource api", func(c *Config) { c.ResourceAPI = "" }},
		{"no source token", func(c *Config) { c.Source.AuthToken = "" }},
		{"no destination clinic", func(c *Config) { c.Destination.ClinicID = "" }},
		{"same tenant", func(c *Config) { c.Destination = c.Source }},
		{"negative rps", func(c *Config) { c.RateLimitRPS = -1 }},
	}
	for _, c := range cases {
		cfg := base()
		c.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}
