// Package config loads service configuration from an optional YAML file,
// then applies environment overrides and defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"companyintel/internal/intel/cache"
)

// Provider configures one outbound registry client.
type Provider struct {
	BaseURL   string  `yaml:"base_url"`
	DataURL   string  `yaml:"data_url,omitempty"`
	RateLimit float64 `yaml:"rate_limit"`
	Burst     int     `yaml:"burst"`
	APIKey    string  `yaml:"api_key,omitempty"`
}

// PopularCompany is one warm-up target.
type PopularCompany struct {
	Name string `yaml:"name"`
	CIK  string `yaml:"cik"`
}

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr           string        `yaml:"addr"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	Cache struct {
		ReportTTL    time.Duration `yaml:"report_ttl"`
		SearchTTL    time.Duration `yaml:"search_ttl"`
		DirectoryTTL time.Duration `yaml:"directory_ttl"`
		SweepCron    string        `yaml:"sweep_cron"`
	} `yaml:"cache"`
	Adapters struct {
		Timeout   time.Duration `yaml:"timeout"`
		UserAgent string        `yaml:"user_agent"`
		Breaker   struct {
			FailureThreshold int           `yaml:"failure_threshold"`
			Cooldown         time.Duration `yaml:"cooldown"`
		} `yaml:"breaker"`
		Filings       Provider `yaml:"sec"`
		Complaints    Provider `yaml:"cfpb"`
		Environmental Provider `yaml:"epa"`
		Safety        Provider `yaml:"osha"`
		Patents       Provider `yaml:"uspto"`
		Banking       Provider `yaml:"fdic"`
	} `yaml:"adapters"`
	WarmUp struct {
		Enabled   bool             `yaml:"enabled"`
		Cron      string           `yaml:"cron"`
		Companies []PopularCompany `yaml:"companies"`
	} `yaml:"warm_up"`
}

// DefaultUserAgent identifies the service to registries that require it.
const DefaultUserAgent = "companyintel/1.0 (ops@companyintel.example)"

// PopularCompanies is the default warm-up list.
var PopularCompanies = []PopularCompany{
	{Name: "Apple", CIK: "0000320193"},
	{Name: "Microsoft", CIK: "0000789019"},
	{Name: "Amazon", CIK: "0001018724"},
	{Name: "Alphabet", CIK: "0001652044"},
	{Name: "Meta Platforms", CIK: "0001326801"},
	{Name: "Tesla", CIK: "0001318605"},
	{Name: "JPMorgan Chase", CIK: "0000019617"},
	{Name: "Bank of America", CIK: "0000070858"},
	{Name: "NVIDIA", CIK: "0001045810"},
	{Name: "Walmart", CIK: "0000104169"},
	{Name: "Johnson & Johnson", CIK: "0000200406"},
	{Name: "UnitedHealth Group", CIK: "0000731766"},
	{Name: "Visa", CIK: "0001403161"},
	{Name: "Procter & Gamble", CIK: "0000080424"},
	{Name: "Mastercard", CIK: "0001141391"},
	{Name: "Home Depot", CIK: "0000354950"},
	{Name: "Exxon Mobil", CIK: "0000034088"},
	{Name: "Chevron", CIK: "0000093410"},
	{Name: "Coca-Cola", CIK: "0000021344"},
	{Name: "Pfizer", CIK: "0000078003"},
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("COMPANYINTEL_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("COMPANYINTEL_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("COMPANYINTEL_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("SEC_USER_AGENT"); v != "" {
		c.Adapters.UserAgent = v
	}
	if v := os.Getenv("FDIC_API_KEY"); v != "" {
		c.Adapters.Banking.APIKey = v
	}
	if v := os.Getenv("ADAPTER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse ADAPTER_TIMEOUT: %w", err)
		}
		c.Adapters.Timeout = d
	}
	if v := os.Getenv("CACHE_SWEEP_CRON"); v != "" {
		c.Cache.SweepCron = v
	}
	if v := os.Getenv("WARM_UP_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse WARM_UP_ENABLED: %w", err)
		}
		c.WarmUp.Enabled = enabled
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 45 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Cache.ReportTTL == 0 {
		c.Cache.ReportTTL = cache.DefaultReportTTL
	}
	if c.Cache.SearchTTL == 0 {
		c.Cache.SearchTTL = cache.DefaultSearchTTL
	}
	if c.Cache.DirectoryTTL == 0 {
		c.Cache.DirectoryTTL = cache.DefaultDirectoryTTL
	}
	if c.Cache.SweepCron == "" {
		c.Cache.SweepCron = "@every 5m"
	}
	if c.Adapters.Timeout == 0 {
		c.Adapters.Timeout = 15 * time.Second
	}
	if c.Adapters.UserAgent == "" {
		c.Adapters.UserAgent = DefaultUserAgent
	}
	if c.Adapters.Breaker.FailureThreshold == 0 {
		c.Adapters.Breaker.FailureThreshold = 5
	}
	if c.Adapters.Breaker.Cooldown == 0 {
		c.Adapters.Breaker.Cooldown = 30 * time.Second
	}
	// The filings registry asks clients to stay under ten requests a second.
	defaultRate(&c.Adapters.Filings, 8, 4)
	defaultRate(&c.Adapters.Complaints, 5, 5)
	defaultRate(&c.Adapters.Environmental, 5, 5)
	defaultRate(&c.Adapters.Safety, 5, 5)
	defaultRate(&c.Adapters.Patents, 5, 5)
	defaultRate(&c.Adapters.Banking, 5, 5)
	if c.WarmUp.Cron == "" {
		c.WarmUp.Cron = "@every 25m"
	}
	if len(c.WarmUp.Companies) == 0 {
		c.WarmUp.Companies = PopularCompanies
	}
}

func defaultRate(p *Provider, rps float64, burst int) {
	if p.RateLimit == 0 {
		p.RateLimit = rps
	}
	if p.Burst == 0 {
		p.Burst = burst
	}
}

// Validate checks that the loaded values are usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Adapters.Timeout <= 0 {
		return fmt.Errorf("adapters.timeout must be positive")
	}
	if c.Server.RequestTimeout < c.Adapters.Timeout {
		return fmt.Errorf("server.request_timeout must not be shorter than adapters.timeout")
	}
	if c.Cache.ReportTTL <= 0 || c.Cache.SearchTTL <= 0 || c.Cache.DirectoryTTL <= 0 {
		return fmt.Errorf("cache ttls must be positive")
	}
	if c.Adapters.UserAgent == "" {
		return fmt.Errorf("adapters.user_agent is required")
	}
	if c.Adapters.Breaker.FailureThreshold < 1 {
		return fmt.Errorf("adapters.breaker.failure_threshold must be at least 1")
	}
	return nil
}
