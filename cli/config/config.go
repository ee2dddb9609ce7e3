// Package config handles CLI configuration loading and management.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	// APIURL overrides the API URL. JUTGE_API_URL and --api-url win over it.
	APIURL string `yaml:"api_url,omitempty"`
	// Email is the default account for jutge login.
	Email string `yaml:"email,omitempty"`
	// Cache enables the persistent response cache. Defaults to true.
	Cache *bool `yaml:"cache,omitempty"`
	// ClientTTLs maps function names to cache TTLs in seconds.
	ClientTTLs map[string]int `yaml:"client_ttls,omitempty"`
	// Timeout bounds every call, e.g. "30s". Zero means no limit.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// DefaultTTLs are the cache TTLs used when the config sets none.
var DefaultTTLs = map[string]int{
	"tables.get":            3600,
	"tables.getLanguages":   3600,
	"tables.getCompilers":   3600,
	"misc.getHomepageStats": 60,
}

// Dir returns the per-user configuration directory for the current platform.
// - macOS/Linux: ~/.jutge
// - Windows: %USERPROFILE%\.jutge
// It is empty when no home directory is known.
func Dir() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		return ""
	}
	return filepath.Join(homeDir, ".jutge")
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	return inDir("config.yaml")
}

// DefaultCachePath returns the default response cache file path.
func DefaultCachePath() string {
	return inDir("cache.msgpack")
}

// DefaultKeystorePath returns the default session keystore path.
func DefaultKeystorePath() string {
	return inDir("session.enc")
}

func inDir(name string) string {
	dir := Dir()
	if dir == "" {
		// Fallback to current directory
		return name
	}
	return filepath.Join(dir, name)
}

// LoadConfig loads configuration from the specified path.
// If the file doesn't exist, returns an empty config without error.
// Returns an error only if the file exists but cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// CacheEnabled reports whether the response cache is enabled.
func (c *Config) CacheEnabled() bool {
	return c.Cache == nil || *c.Cache
}

// TTLs returns the cache TTLs, falling back to DefaultTTLs.
func (c *Config) TTLs() map[string]time.Duration {
	src := c.ClientTTLs
	if len(src) == 0 {
		src = DefaultTTLs
	}
	ttls := make(map[string]time.Duration, len(src))
	for fn, secs := range src {
		if secs > 0 {
			ttls[fn] = time.Duration(secs) * time.Second
		}
	}
	return ttls
}
