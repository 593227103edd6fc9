package jwkscache

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// RealmConfig identifies one tenant of the identity provider: the realm name
// used to namespace storage entries and the URL its key set is fetched from.
type RealmConfig struct {
	Name    string `yaml:"name" json:"name"`
	JwksURL string `yaml:"jwksUrl" json:"jwksUrl"`
}

// FetchConfig is the freshness policy configuration.
type FetchConfig struct {
	// MinTimeBetweenRequests is the minimum number of minutes that must
	// elapse between two fetches for the same realm.
	MinTimeBetweenRequests int `yaml:"minTimeBetweenJwksRequests" json:"minTimeBetweenJwksRequests"`
}

// MinInterval returns the configured cooldown as a duration.
func (c FetchConfig) MinInterval() time.Duration {
	return time.Duration(c.MinTimeBetweenRequests) * time.Minute
}

// Config is the file-loadable configuration for the cache manager and the
// realms it serves.
type Config struct {
	Realms         []RealmConfig `yaml:"realms"`
	Fetch          FetchConfig   `yaml:",inline"`
	RequestTimeout Duration      `yaml:"requestTimeout"`
}

// LoadConfigFile reads and parses a YAML configuration file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return LoadConfig(data)
}

// LoadConfig parses YAML configuration data and validates it.
func LoadConfig(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for mistakes that would only surface much
// later as silently-failing fetches.
func (c *Config) Validate() error {
	if c.Fetch.MinTimeBetweenRequests < 0 {
		return fmt.Errorf("minTimeBetweenJwksRequests must not be negative")
	}
	seen := make(map[string]bool)
	for _, realm := range c.Realms {
		if realm.Name == "" {
			return fmt.Errorf("realm name is required")
		}
		if seen[realm.Name] {
			return fmt.Errorf("duplicate realm name %q", realm.Name)
		}
		seen[realm.Name] = true
		if _, err := url.ParseRequestURI(realm.JwksURL); err != nil {
			return fmt.Errorf("realm %q has an invalid jwksUrl: %w", realm.Name, err)
		}
	}
	return nil
}

// Realm returns the configuration of the named realm, or nil when the realm
// is not configured.
func (c *Config) Realm(name string) *RealmConfig {
	for i := range c.Realms {
		if c.Realms[i].Name == name {
			return &c.Realms[i]
		}
	}
	return nil
}
