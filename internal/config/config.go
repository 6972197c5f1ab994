package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/apothedoc/clinic-transfer/internal/domain/identity"
)

// Tenant identifies one org+clinic pair and its bearer token.
type Tenant struct {
	OrgID     string `mapstructure:"org_id"`
	ClinicID  string `mapstructure:"clinic_id"`
	AuthToken string `mapstructure:"auth_token"`
}

type Config struct {
	// ResourceAPI is the base URL of the clinic API, e.g.
	// "https://dev.apothedoc.com/api/".
	ResourceAPI string `mapstructure:"resource_api"`
	Source      Tenant `mapstructure:"source"`
	Destination Tenant `mapstructure:"destination"`

	// SkipCareSessions disables care session transfer for the run.
	SkipCareSessions bool `mapstructure:"skip_care_sessions"`

	// WriteTimeout bounds each individual POST to the destination.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// RateLimitRPS throttles outbound calls; zero disables throttling.
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`

	// Staff identity mappings between the tenants, partitioned by namespace.
	ProviderMappings []identity.IDMapping `mapstructure:"provider_mappings"`
	UserMappings     []identity.IDMapping `mapstructure:"user_mappings"`
}

// Load reads the config file at path (YAML or JSON) with environment
// overrides. path "" falls back to ./config.yaml.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("CLINIC_TRANSFER")
	v.AutomaticEnv()

	v.SetDefault("write_timeout", 2*time.Minute)
	v.SetDefault("rate_limit_burst", 1)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if c.ResourceAPI == "" {
		return fmt.Errorf("resource_api is required")
	}
	for name, t := range map[string]Tenant{"source": c.Source, "destination": c.Destination} {
		if t.OrgID == "" {
			return fmt.Errorf("%s.org_id is required", name)
		}
		if t.ClinicID == "" {
			return fmt.Errorf("%s.clinic_id is required", name)
		}
		if t.AuthToken == "" {
			return fmt.Errorf("%s.auth_token is required", name)
		}
	}
	if c.Source.OrgID == c.Destination.OrgID && c.Source.ClinicID == c.Destination.ClinicID {
		return fmt.Errorf("source and destination tenants are the same clinic")
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate_limit_rps must not be negative")
	}
	return nil
}
