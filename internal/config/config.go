package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Mode      string `envconfig:"COLLECTOR_MODE" default:"public"`
	UserAgent string `envconfig:"REDDIT_USER_AGENT" default:"linkscape/1.0"`
	BaseURL   string `envconfig:"REDDIT_BASE_URL" default:"https://www.reddit.com"`

	ClientID     string `envconfig:"REDDIT_CLIENT_ID"`
	ClientSecret string `envconfig:"REDDIT_CLIENT_SECRET"`
	Username     string `envconfig:"REDDIT_USERNAME"`
	Password     string `envconfig:"REDDIT_PASSWORD"`

	// Optional subreddit the category feed is scoped to
	Subreddit string `envconfig:"SUBREDDIT"`
	PageSize  int    `envconfig:"PAGE_SIZE" default:"25"`

	RequestInterval time.Duration `envconfig:"REQUEST_INTERVAL" default:"2s"`
	HTTPTimeout     time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	MockLatency     time.Duration `envconfig:"MOCK_LATENCY" default:"300ms"`

	Port       string `envconfig:"PORT" default:"8080"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	ExportPath string `envconfig:"EXPORT_PATH"`
	DraftsPath string `envconfig:"DRAFTS_PATH"`
}

// Load reads an optional .env file and then the process environment.
func Load(files ...string) (Config, error) {
	// a missing .env is fine, the environment may carry everything
	_ = godotenv.Load(files...)

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: PAGE_SIZE must be positive, got %d", ErrInvalidConfig, c.PageSize)
	}

	switch c.Mode {
	case "public":
		if c.UserAgent == "" {
			return fmt.Errorf("%w: REDDIT_USER_AGENT is required for public mode", ErrInvalidConfig)
		}
	case "api":
		if c.ClientID == "" || c.ClientSecret == "" || c.Username == "" || c.Password == "" {
			return fmt.Errorf("%w: api mode needs REDDIT_CLIENT_ID, REDDIT_CLIENT_SECRET, REDDIT_USERNAME and REDDIT_PASSWORD", ErrInvalidConfig)
		}
	case "mock":
	default:
		return fmt.Errorf("%w: unknown COLLECTOR_MODE: %s (use 'api', 'public', or 'mock')", ErrInvalidConfig, c.Mode)
	}
	return nil
}
