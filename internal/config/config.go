package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/rohmanhakim/carpool/internal/build"
	"gopkg.in/yaml.v3"
)

const DefaultContentSelector = ".js-content"

type Config struct {
	//===============
	// Swap
	//===============
	// CSS selector of the element that is swapped between pages
	contentSelector string

	//===============
	// Routing
	//===============
	// Scheme and host that route pathnames are joined to, without trailing slash
	origin string

	//===============
	// Fetch
	//===============
	// User agent sent by the default HTTP transport
	userAgent string
	// Maximum time of a single fetch. Zero means no limit
	timeout time.Duration
	// Whether concurrent loads of one uncached URL share a single fetch
	coalesceInFlight bool
}

type configDTO struct {
	ContentSelector  string `json:"contentSelector,omitempty" yaml:"contentSelector,omitempty"`
	Origin           string `json:"origin" yaml:"origin"`
	UserAgent        string `json:"userAgent,omitempty" yaml:"userAgent,omitempty"`
	Timeout          string `json:"timeout,omitempty" yaml:"timeout,omitempty"`
	CoalesceInFlight *bool  `json:"coalesceInFlight,omitempty" yaml:"coalesceInFlight,omitempty"`
}

func newConfigFromDTO(dto configDTO) (Config, error) {
	// Start with default config, then let every provided value win
	builder := WithDefault(dto.Origin)

	if dto.ContentSelector != "" {
		builder = builder.WithContentSelector(dto.ContentSelector)
	}
	if dto.UserAgent != "" {
		builder = builder.WithUserAgent(dto.UserAgent)
	}
	if dto.Timeout != "" {
		timeout, err := time.ParseDuration(dto.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("%w: timeout %q: %s", ErrInvalidConfig, dto.Timeout, err.Error())
		}
		builder = builder.WithTimeout(timeout)
	}
	if dto.CoalesceInFlight != nil {
		builder = builder.WithCoalesceInFlight(*dto.CoalesceInFlight)
	}

	return builder.Build()
}

// WithConfigFile reads a JSON or YAML config file, picked by extension.
// Files without a .yaml or .yml extension are read as JSON.
func WithConfigFile(path string) (Config, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrFileDoesNotExist, err.Error())
	}
	configContent, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrReadConfigFail, err.Error())
	}
	cfgDTO := configDTO{}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(configContent, &cfgDTO)
	default:
		err = json.Unmarshal(configContent, &cfgDTO)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigParsingFail, err.Error())
	}

	return newConfigFromDTO(cfgDTO)
}

// WithDefault creates a new Config with the provided origin and default values for all other fields.
// origin is mandatory; Build reports an error if it is empty or not an absolute http(s) origin.
func WithDefault(origin string) *Config {
	defaultConfig := Config{
		contentSelector:  DefaultContentSelector,
		origin:           origin,
		userAgent:        build.UserAgent(),
		timeout:          10 * time.Second,
		coalesceInFlight: true,
	}
	return &defaultConfig
}

func (c *Config) WithContentSelector(selector string) *Config {
	c.contentSelector = selector
	return c
}

func (c *Config) WithOrigin(origin string) *Config {
	c.origin = origin
	return c
}

func (c *Config) WithUserAgent(userAgent string) *Config {
	c.userAgent = userAgent
	return c
}

func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.timeout = timeout
	return c
}

func (c *Config) WithCoalesceInFlight(coalesce bool) *Config {
	c.coalesceInFlight = coalesce
	return c
}

func (c *Config) Build() (Config, error) {
	origin, err := normalizeOrigin(c.origin)
	if err != nil {
		return Config{}, err
	}
	c.origin = origin

	if strings.TrimSpace(c.contentSelector) == "" {
		return Config{}, fmt.Errorf("%w: contentSelector cannot be empty", ErrInvalidConfig)
	}
	if _, err := cascadia.Compile(c.contentSelector); err != nil {
		return Config{}, fmt.Errorf("%w: contentSelector %q: %s", ErrInvalidConfig, c.contentSelector, err.Error())
	}

	if c.timeout < 0 {
		return Config{}, fmt.Errorf("%w: timeout cannot be negative", ErrInvalidConfig)
	}

	return *c, nil
}

// normalizeOrigin checks that origin is scheme://host[:port] and strips a trailing slash.
func normalizeOrigin(origin string) (string, error) {
	if origin == "" {
		return "", fmt.Errorf("%w: origin cannot be empty", ErrInvalidConfig)
	}
	u, err := url.Parse(origin)
	if err != nil {
		return "", fmt.Errorf("%w: origin %q: %s", ErrInvalidConfig, origin, err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: origin %q must use http or https", ErrInvalidConfig, origin)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: origin %q has no host", ErrInvalidConfig, origin)
	}
	if (u.Path != "" && u.Path != "/") || u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("%w: origin %q must not carry a path, query or fragment", ErrInvalidConfig, origin)
	}
	return u.Scheme + "://" + u.Host, nil
}

func (c Config) ContentSelector() string {
	return c.contentSelector
}

func (c Config) Origin() string {
	return c.origin
}

func (c Config) UserAgent() string {
	return c.userAgent
}

func (c Config) Timeout() time.Duration {
	return c.timeout
}

func (c Config) CoalesceInFlight() bool {
	return c.coalesceInFlight
}
