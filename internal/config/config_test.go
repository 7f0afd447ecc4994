package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Empty(t, cfg.CompanyID)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recruitee.yaml")
	data := []byte("company_id: acme\napi_token: secret\nport: 9090\n")
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "acme", cfg.CompanyID)
	assert.Equal(t, "secret", cfg.APIToken)
	assert.Equal(t, 9090, cfg.Port)
	// File did not set a base URL, default survives.
	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
}

func TestLoadFile_Missing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("company_id: [unclosed"), 0644))
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(map[string]string{
		EnvCompanyID: "  acme  ",
		EnvAPIToken:  "tok",
		EnvBaseURL:   "https://example.test",
		EnvTimeout:   "12.5",
		EnvHTTPPort:  "3000",
	})
	require.NoError(t, err)
	assert.Equal(t, "acme", cfg.CompanyID)
	assert.Equal(t, "tok", cfg.APIToken)
	assert.Equal(t, "https://example.test", cfg.BaseURL)
	assert.Equal(t, 12500*time.Millisecond, cfg.Timeout)
	assert.Equal(t, 3000, cfg.Port)
}

func TestApplyEnv_BadValues(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.ApplyEnv(map[string]string{EnvTimeout: "soon"}))
	assert.Error(t, cfg.ApplyEnv(map[string]string{EnvHTTPPort: "eighty"}))
}

func TestNormalize(t *testing.T) {
	cfg := Default()
	cfg.BaseURL = "https://api.recruitee.com///"
	cfg.Port = 700000
	warnings := cfg.Normalize()
	assert.Equal(t, "https://api.recruitee.com", cfg.BaseURL)
	assert.Equal(t, DefaultPort, cfg.Port)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "out of range")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Validate())

	cfg.CompanyID = "acme"
	assert.NoError(t, cfg.Validate())
}
