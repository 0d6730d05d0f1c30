package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"

	"github.com/umputun/cfptrack/pkg/source"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Base URL for RSS feed links"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:cfptrack.db?cache=shared&mode=rwc&_txlock=immediate,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Ingestion struct {
		Interval       time.Duration `yaml:"interval" json:"interval" jsonschema:"default=0s,description=Periodic ingestion interval, 0 runs rounds only on demand"`
		AdapterTimeout time.Duration `yaml:"adapter_timeout" json:"adapter_timeout" jsonschema:"default=0s,description=Time limit for a single source in a round, 0 means no limit"`
		QueueSize      int           `yaml:"queue_size" json:"queue_size" jsonschema:"default=1,minimum=1,description=Pending on-demand rounds, extra triggers join the queued round"`
	} `yaml:"ingestion" json:"ingestion" jsonschema:"description=Ingestion rounds configuration"`

	HTTP HTTPConfig `yaml:"http" json:"http" jsonschema:"description=Outbound HTTP client configuration"`

	Sources SourcesConfig `yaml:"sources" json:"sources" jsonschema:"description=CFP sources"`

	Notify NotifyConfig `yaml:"notify" json:"notify" jsonschema:"description=Slack notifications"`
}

// HTTPConfig holds settings of the client shared by all sources
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=CFPTracker/1.0,description=User agent for HTTP requests"`
	Retries   int           `yaml:"retries" json:"retries" jsonschema:"default=3,minimum=1,description=Attempts for transport errors and 5xx responses"`
	Pace      time.Duration `yaml:"pace" json:"pace" jsonschema:"default=0s,description=Delay between sequential requests of one source"`
}

// SourcesConfig holds per-source settings
type SourcesConfig struct {
	Call4Papers struct {
		Enabled bool          `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Enable the source"`
		URL     string        `yaml:"url" json:"url" jsonschema:"description=API endpoint"`
		Horizon time.Duration `yaml:"horizon" json:"horizon" jsonschema:"default=2160h,description=Request CFPs closing within this period"`
	} `yaml:"call4papers" json:"call4papers" jsonschema:"description=Call4Papers JSON feed"`

	ConfsTech struct {
		Enabled    bool     `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Enable the source"`
		BaseURL    string   `yaml:"base_url" json:"base_url" jsonschema:"description=Base URL of per-category JSON files"`
		Year       int      `yaml:"year" json:"year" jsonschema:"description=Conference year, current year if not set"`
		Categories []string `yaml:"categories" json:"categories" jsonschema:"description=Categories to load, all known if empty"`
	} `yaml:"confstech" json:"confstech" jsonschema:"description=confs.tech conference data"`

	GitHub struct {
		Enabled bool                `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Enable the source"`
		APIURL  string              `yaml:"api_url" json:"api_url" jsonschema:"default=https://api.github.com,description=GitHub API URL"`
		Token   string              `yaml:"token" json:"token" jsonschema:"description=GitHub token (can use environment variable)"`
		Repos   []source.GitHubRepo `yaml:"repos" json:"repos" jsonschema:"description=Repository files with event lists"`
	} `yaml:"github" json:"github" jsonschema:"description=Event lists hosted on GitHub"`

	DevEvents struct {
		Enabled bool   `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Enable the source"`
		URL     string `yaml:"url" json:"url" jsonschema:"default=https://dev.events/conferences,description=Conference list page"`
	} `yaml:"devevents" json:"devevents" jsonschema:"description=dev.events conference table"`

	PaperCall struct {
		Enabled bool   `yaml:"enabled" json:"enabled" jsonschema:"default=true,description=Enable the source"`
		URL     string `yaml:"url" json:"url" jsonschema:"default=https://www.papercall.io/events.rss,description=RSS feed of open CFPs"`
	} `yaml:"papercall" json:"papercall" jsonschema:"description=PaperCall RSS feed"`
}

// NotifyConfig holds Slack notification settings
type NotifyConfig struct {
	SlackWebhook string        `yaml:"slack_webhook" json:"slack_webhook" jsonschema:"description=Slack incoming webhook URL, notifications are off if empty"`
	Window       time.Duration `yaml:"window" json:"window" jsonschema:"default=24h,description=Notify about CFPs stored within this window"`
	Interval     time.Duration `yaml:"interval" json:"interval" jsonschema:"default=0s,description=Periodic notification interval, 0 sends only on demand"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Webhook request timeout"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse makes configuration from YAML content, with environment variables expanded
// and defaults applied
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	// sources are enabled unless turned off explicitly
	var cfg Config
	cfg.Sources.Call4Papers.Enabled = true
	cfg.Sources.ConfsTech.Enabled = true
	cfg.Sources.GitHub.Enabled = true
	cfg.Sources.DevEvents.Enabled = true
	cfg.Sources.PaperCall.Enabled = true

	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// schema validation is supplementary, a mismatch is not fatal
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// Default returns configuration with all defaults, used when no config file is given
func Default() *Config {
	cfg, err := Parse(nil)
	if err != nil {
		panic(fmt.Sprintf("default config is invalid: %v", err))
	}
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:cfptrack.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	if cfg.Ingestion.QueueSize == 0 {
		cfg.Ingestion.QueueSize = 1
	}

	if cfg.HTTP.Timeout == 0 {
		cfg.HTTP.Timeout = 30 * time.Second
	}
	if cfg.HTTP.UserAgent == "" {
		cfg.HTTP.UserAgent = "CFPTracker/1.0"
	}
	if cfg.HTTP.Retries == 0 {
		cfg.HTTP.Retries = 3
	}

	if cfg.Sources.Call4Papers.Horizon == 0 {
		cfg.Sources.Call4Papers.Horizon = 90 * 24 * time.Hour
	}

	if cfg.Notify.Window == 0 {
		cfg.Notify.Window = 24 * time.Hour
	}
	if cfg.Notify.Timeout == 0 {
		cfg.Notify.Timeout = 10 * time.Second
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return errors.New("server timeout must be at least 1 second")
	}
	if cfg.Ingestion.Interval < 0 || cfg.Ingestion.AdapterTimeout < 0 {
		return errors.New("ingestion interval and adapter_timeout must be non-negative")
	}
	if cfg.Ingestion.QueueSize < 1 {
		return errors.New("ingestion queue_size must be at least 1")
	}
	if cfg.HTTP.Retries < 1 {
		return errors.New("http retries must be at least 1")
	}
	if cfg.HTTP.Pace < 0 {
		return errors.New("http pace must be non-negative")
	}
	if cfg.Notify.Window < time.Hour {
		return errors.New("notify window must be at least 1 hour")
	}
	if cfg.Notify.Interval < 0 {
		return errors.New("notify interval must be non-negative")
	}
	if cfg.Notify.Interval > 0 && cfg.Notify.SlackWebhook == "" {
		return errors.New("notify interval is set but slack_webhook is empty")
	}
	if wh := cfg.Notify.SlackWebhook; wh != "" && !strings.HasPrefix(wh, "https://") && !strings.HasPrefix(wh, "http://") {
		return fmt.Errorf("notify slack_webhook must be an http(s) URL")
	}
	for i, r := range cfg.Sources.GitHub.Repos {
		if r.Owner == "" || r.Repo == "" || r.Path == "" {
			return fmt.Errorf("sources.github.repos[%d] needs owner, repo and path", i)
		}
	}
	if !cfg.anySourceEnabled() {
		return errors.New("at least one source must be enabled")
	}
	return nil
}

func (c *Config) anySourceEnabled() bool {
	s := c.Sources
	return s.Call4Papers.Enabled || s.ConfsTech.Enabled || s.GitHub.Enabled || s.DevEvents.Enabled || s.PaperCall.Enabled
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetBaseURL returns the external base URL of the server
func (c *Config) GetBaseURL() string {
	return c.Server.BaseURL
}

// Secrets returns sensitive values which should be masked in logs
func (c *Config) Secrets() []string {
	var res []string
	for _, s := range []string{c.Notify.SlackWebhook, c.Sources.GitHub.Token} {
		if s != "" {
			res = append(res, s)
		}
	}
	return res
}
