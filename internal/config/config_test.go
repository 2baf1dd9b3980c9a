package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every PICKLIST_ env var that Load() reads.
var allConfigKeys = []string{
	"PICKLIST_AUTH_URL",
	"PICKLIST_PLANNING_URL",
	"PICKLIST_HTTP_TIMEOUT",
}

// isolateConfigEnv saves and unsets all PICKLIST_ env vars so tests don't
// inherit values from the host environment.
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

const validYAML = `username: picker@example.com
password: s3cret
key: client-key
secret: client-secret
country: IT
`

// writeConfig writes content to config.yaml in a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	path := writeConfig(t, validYAML+`auth_url: https://auth.staging.example.com
planning_url: https://cps.staging.example.com
timeout: 45s
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "picker@example.com", cfg.Credentials.Username)
	assert.Equal(t, "s3cret", cfg.Credentials.Password)
	assert.Equal(t, "client-key", cfg.Credentials.Key)
	assert.Equal(t, "client-secret", cfg.Credentials.Secret)
	assert.Equal(t, "IT", cfg.Credentials.Country)
	assert.Equal(t, "https://auth.staging.example.com", cfg.AuthURL)
	assert.Equal(t, "https://cps.staging.example.com", cfg.PlanningURL)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load(writeConfig(t, validYAML))

	require.NoError(t, err)
	assert.Equal(t, DefaultAuthURL, cfg.AuthURL)
	assert.Equal(t, DefaultPlanningURL, cfg.PlanningURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("PICKLIST_AUTH_URL", "http://127.0.0.1:9001")
	t.Setenv("PICKLIST_PLANNING_URL", "http://127.0.0.1:9002")
	t.Setenv("PICKLIST_HTTP_TIMEOUT", "5s")

	cfg, err := Load(writeConfig(t, validYAML+"auth_url: https://ignored.example.com\ntimeout: 1m\n"))

	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9001", cfg.AuthURL)
	assert.Equal(t, "http://127.0.0.1:9002", cfg.PlanningURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
}

func TestLoad_UnknownKeysIgnored(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load(writeConfig(t, validYAML+"region: eu-west-1\n"))

	require.NoError(t, err)
	assert.Equal(t, "IT", cfg.Credentials.Country)
}

func TestLoad_MissingFields(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load(writeConfig(t, "username: picker\ncountry: \"  \"\n"))

	assert.Nil(t, cfg)
	require.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "password, key, secret, country")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		env     string
		wantMsg string
	}{
		{name: "file not a duration", yaml: "timeout: soon\n", wantMsg: "timeout has invalid duration"},
		{name: "file negative", yaml: "timeout: -3s\n", wantMsg: "timeout must be positive"},
		{name: "env not a duration", env: "forever", wantMsg: "PICKLIST_HTTP_TIMEOUT"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			isolateConfigEnv(t)
			if tc.env != "" {
				t.Setenv("PICKLIST_HTTP_TIMEOUT", tc.env)
			}

			cfg, err := Load(writeConfig(t, validYAML+tc.yaml))

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	isolateConfigEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MalformedYAML(t *testing.T) {
	isolateConfigEnv(t)

	_, err := Load(writeConfig(t, "username: [unclosed\n"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}
