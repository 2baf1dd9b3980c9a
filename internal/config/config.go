// Package config loads the picklist tool's credentials and endpoints from a
// YAML file, with environment variable overrides for the endpoints.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fmhf/recipe-pick/internal/domain/model"
)

const (
	// DefaultPath is the config file read when none is given.
	DefaultPath = "config.yaml"

	DefaultAuthURL     = "https://auth-service.live-k8s.hellofresh.io"
	DefaultPlanningURL = "https://culinary-planning-service.live-k8s.hellofresh.io"
	DefaultTimeout     = 30 * time.Second
)

// ErrMissingField is returned when a required config key is absent or blank.
var ErrMissingField = errors.New("missing required config field")

// Config holds the credentials and endpoint settings for one run.
type Config struct {
	Credentials model.Credentials
	AuthURL     string
	PlanningURL string
	Timeout     time.Duration
}

// fileConfig mirrors the YAML layout of the config file.
type fileConfig struct {
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	Key         string `yaml:"key"`
	Secret      string `yaml:"secret"`
	Country     string `yaml:"country"`
	AuthURL     string `yaml:"auth_url"`
	PlanningURL string `yaml:"planning_url"`
	Timeout     string `yaml:"timeout"`
}

// Load reads the YAML file at path and returns a validated Config.
// username, password, key, secret and country are required. auth_url,
// planning_url and timeout are optional and may be overridden by
// PICKLIST_AUTH_URL, PICKLIST_PLANNING_URL and PICKLIST_HTTP_TIMEOUT.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if v, ok := os.LookupEnv("PICKLIST_AUTH_URL"); ok && v != "" {
		fc.AuthURL = v
	}
	if v, ok := os.LookupEnv("PICKLIST_PLANNING_URL"); ok && v != "" {
		fc.PlanningURL = v
	}

	timeout := DefaultTimeout
	if fc.Timeout != "" {
		if timeout, err = parseTimeout("timeout", fc.Timeout); err != nil {
			return nil, err
		}
	}
	if v, ok := os.LookupEnv("PICKLIST_HTTP_TIMEOUT"); ok && v != "" {
		if timeout, err = parseTimeout("PICKLIST_HTTP_TIMEOUT", v); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Credentials: model.Credentials{
			Username: fc.Username,
			Password: fc.Password,
			Key:      fc.Key,
			Secret:   fc.Secret,
			Country:  fc.Country,
		},
		AuthURL:     orDefault(fc.AuthURL, DefaultAuthURL),
		PlanningURL: orDefault(fc.PlanningURL, DefaultPlanningURL),
		Timeout:     timeout,
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"username", c.Credentials.Username},
		{"password", c.Credentials.Password},
		{"key", c.Credentials.Key},
		{"secret", c.Credentials.Secret},
		{"country", c.Credentials.Country},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}

func parseTimeout(source, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s has invalid duration %q: %w", source, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %s", source, d)
	}
	return d, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
