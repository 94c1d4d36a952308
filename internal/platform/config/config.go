package config

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-faster/errors"
	"github.com/joho/godotenv"
)

const Production = "production"

type Config struct {
	Addr                 string        `env:"APP_ADDR" envDefault:":8080"`
	Environment          string        `env:"APP_ENV" envDefault:"development"`
	BackendURL           string        `env:"BACKEND_URL" envDefault:"http://localhost:5000"`
	BackendTimeout       time.Duration `env:"BACKEND_TIMEOUT" envDefault:"15s"`
	SessionSecret        string        `env:"SESSION_SECRET"`
	SessionTTL           time.Duration `env:"SESSION_TTL" envDefault:"8h"`
	SessionSweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`
	LookupDebounce       time.Duration `env:"LOOKUP_DEBOUNCE" envDefault:"500ms"`
	MaxBodyBytes         int64         `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	RateLimitPerMinute   int           `env:"RATE_LIMIT_PER_MINUTE" envDefault:"120"`
	FrontendDir          string        `env:"FRONTEND_DIR" envDefault:"frontend/dist"`
	NavFile              string        `env:"NAV_FILE"`
	LogLevel             string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat            string        `env:"LOG_FORMAT" envDefault:"json"`
	MetricsEnabled       bool          `env:"METRICS_ENABLED" envDefault:"true"`
}

// LoadEnv loads the first existing env files into the process environment.
// Variables already set win over file values.
func LoadEnv(files ...string) error {
	existing := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return errors.Wrap(err, "load env files")
	}
	return nil
}

func Load() (Config, error) {
	if err := LoadEnv(".env", ".env.local"); err != nil {
		return Config{}, err
	}
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	return c, nil
}

func (c Config) IsProduction() bool {
	return c.Environment == Production
}

func (c Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("BACKEND_URL must be an absolute http(s) URL")
	}
	if c.IsProduction() && strings.TrimSpace(c.SessionSecret) == "" {
		return errors.New("SESSION_SECRET must be set to a strong value in production")
	}
	if c.BackendTimeout <= 0 {
		return errors.New("BACKEND_TIMEOUT must be positive")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.SessionSweepInterval <= 0 {
		return errors.New("SESSION_SWEEP_INTERVAL must be positive")
	}
	if c.LookupDebounce < 0 {
		return errors.New("LOOKUP_DEBOUNCE must not be negative")
	}
	if c.MaxBodyBytes < 1024 {
		return errors.New("MAX_BODY_BYTES must be at least 1024")
	}
	if c.RateLimitPerMinute <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be positive")
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return errors.Errorf("LOG_FORMAT must be json or text, got %q", c.LogFormat)
	}
	return nil
}
