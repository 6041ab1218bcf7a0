package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// DefaultFeeds is the list of feeds used when config doesn't define any
var DefaultFeeds = []string{
	"https://timesofindia.indiatimes.com/rssfeedstopstories.cms",
	"https://feeds.feedburner.com/ndtvnews-top-stories",
	"https://www.thehindu.com/news/feeder/default.rss",
	"https://www.hindustantimes.com/rss/topnews/rssfeed.xml",
	"https://indianexpress.com/feed/",
	"https://economictimes.indiatimes.com/rssfeedstopstories.cms",
	"https://zeenews.india.com/rss/india-national-news.xml",
}

// Config holds the application configuration
type Config struct {
	Server ServerConfig `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Feeds  []string     `yaml:"feeds" json:"feeds" jsonschema:"description=Feed URLs in display order"`
	Fetch  FetchConfig  `yaml:"fetch" json:"fetch" jsonschema:"description=Feed fetching configuration"`
	Cache  CacheConfig  `yaml:"cache" json:"cache" jsonschema:"description=Feed cache configuration"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS output links"`
	Title   string        `yaml:"title" json:"title" jsonschema:"default=Feed Reader,description=Page and RSS output title"`
}

// FetchConfig holds feed fetching settings
type FetchConfig struct {
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=15s,description=Timeout for a single feed request"`
	UserAgent   string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=FeedReader/1.0,description=User agent for feed requests"`
	Concurrency int           `yaml:"concurrency" json:"concurrency" jsonschema:"default=1,minimum=1,description=Number of feeds fetched at the same time"`
}

// CacheConfig holds feed cache settings
type CacheConfig struct {
	Backend         string        `yaml:"backend" json:"backend" jsonschema:"default=memory,enum=memory,enum=sqlite,description=Cache backend"`
	TTL             time.Duration `yaml:"ttl" json:"ttl" jsonschema:"default=5m,description=How long fetched feeds are served from cache"`
	DSN             string        `yaml:"dsn" json:"dsn" jsonschema:"default=file:feedreader.db?cache=shared&mode=rwc,description=SQLite cache database"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval" jsonschema:"default=1m,description=How often expired entries are removed"`
}

// Default returns configuration with all defaults set
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	// server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}
	if cfg.Server.Title == "" {
		cfg.Server.Title = "Feed Reader"
	}

	if len(cfg.Feeds) == 0 {
		cfg.Feeds = append([]string(nil), DefaultFeeds...)
	}

	// fetch
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 15 * time.Second
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "FeedReader/1.0"
	}
	if cfg.Fetch.Concurrency == 0 {
		cfg.Fetch.Concurrency = 1
	}

	// cache
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "memory"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 300 * time.Second
	}
	if cfg.Cache.DSN == "" {
		cfg.Cache.DSN = "file:feedreader.db?cache=shared&mode=rwc"
	}
	if cfg.Cache.CleanupInterval == 0 {
		cfg.Cache.CleanupInterval = time.Minute
	}
}

// Validate checks configuration for correctness
func (c *Config) Validate() error {
	if c.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}
	if len(c.Feeds) == 0 {
		return fmt.Errorf("at least one feed is required")
	}
	for i, f := range c.Feeds {
		if f == "" {
			return fmt.Errorf("feed %d has empty url", i)
		}
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch timeout must be positive")
	}
	if c.Fetch.Concurrency < 1 {
		return fmt.Errorf("fetch concurrency must be at least 1")
	}
	if c.Cache.Backend != "memory" && c.Cache.Backend != "sqlite" {
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("cache ttl must be positive")
	}
	if c.Cache.CleanupInterval <= 0 {
		return fmt.Errorf("cache cleanup interval must be positive")
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetBaseURL returns base url for generated links
func (c *Config) GetBaseURL() string {
	return c.Server.BaseURL
}

// GetTitle returns page title
func (c *Config) GetTitle() string {
	return c.Server.Title
}

// GetFeeds returns feed urls
func (c *Config) GetFeeds() []string {
	return c.Feeds
}

// GetWriteTimeout returns http write timeout, long enough for a page render
// which fetches every feed on a cold cache
func (c *Config) GetWriteTimeout() time.Duration {
	concurrency := max(c.Fetch.Concurrency, 1)
	rounds := (len(c.Feeds) + concurrency - 1) / concurrency
	return c.Server.Timeout + time.Duration(rounds)*c.Fetch.Timeout
}
