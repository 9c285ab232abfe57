package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 30*time.Minute, cfg.Cache.ReportTTL)
	assert.Equal(t, time.Hour, cfg.Cache.SearchTTL)
	assert.Equal(t, 24*time.Hour, cfg.Cache.DirectoryTTL)
	assert.Equal(t, "@every 5m", cfg.Cache.SweepCron)
	assert.Equal(t, 15*time.Second, cfg.Adapters.Timeout)
	assert.Equal(t, DefaultUserAgent, cfg.Adapters.UserAgent)
	assert.Equal(t, 8.0, cfg.Adapters.Filings.RateLimit)
	assert.Len(t, cfg.WarmUp.Companies, 20)
	assert.False(t, cfg.WarmUp.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9090"
  request_timeout: 30s
log:
  level: debug
  format: text
cache:
  report_ttl: 10m
adapters:
  timeout: 5s
  fdic:
    base_url: http://fdic.local
    rate_limit: 2
    burst: 1
warm_up:
  enabled: true
  companies:
    - name: Acme
      cik: "42"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 10*time.Minute, cfg.Cache.ReportTTL)
	assert.Equal(t, 5*time.Second, cfg.Adapters.Timeout)
	assert.Equal(t, "http://fdic.local", cfg.Adapters.Banking.BaseURL)
	assert.Equal(t, 2.0, cfg.Adapters.Banking.RateLimit)
	assert.Equal(t, 1, cfg.Adapters.Banking.Burst)
	assert.True(t, cfg.WarmUp.Enabled)
	assert.Equal(t, []PopularCompany{{Name: "Acme", CIK: "42"}}, cfg.WarmUp.Companies)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("COMPANYINTEL_ADDR", ":7070")
	t.Setenv("COMPANYINTEL_LOG_LEVEL", "warn")
	t.Setenv("SEC_USER_AGENT", "tester/1.0 (qa@example.com)")
	t.Setenv("FDIC_API_KEY", "secret")
	t.Setenv("ADAPTER_TIMEOUT", "3s")
	t.Setenv("WARM_UP_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "tester/1.0 (qa@example.com)", cfg.Adapters.UserAgent)
	assert.Equal(t, "secret", cfg.Adapters.Banking.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Adapters.Timeout)
	assert.True(t, cfg.WarmUp.Enabled)
}

func TestLoadErrors(t *testing.T) {
	t.Run("bad yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))
		_, err := Load(path)
		assert.ErrorContains(t, err, "parse config")
	})

	t.Run("bad timeout env", func(t *testing.T) {
		t.Setenv("ADAPTER_TIMEOUT", "soon")
		_, err := Load("")
		assert.ErrorContains(t, err, "ADAPTER_TIMEOUT")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load("")
		require.NoError(t, err)
		return cfg
	}

	t.Run("request timeout shorter than adapter timeout", func(t *testing.T) {
		cfg := valid()
		cfg.Server.RequestTimeout = time.Second
		assert.ErrorContains(t, cfg.Validate(), "request_timeout")
	})

	t.Run("negative ttl", func(t *testing.T) {
		cfg := valid()
		cfg.Cache.SearchTTL = -time.Second
		assert.ErrorContains(t, cfg.Validate(), "ttls")
	})

	t.Run("zero failure threshold", func(t *testing.T) {
		cfg := valid()
		cfg.Adapters.Breaker.FailureThreshold = 0
		assert.Error(t, cfg.Validate())
	})
}
