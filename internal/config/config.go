// Package config loads worker configuration from environment variables,
// with an optional YAML file read first and hardcoded defaults
// underneath both.
package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the worker's full configuration surface.
type Config struct {
	Queue struct {
		Name string `yaml:"name" default:"leads"`
	} `yaml:"queue"`

	Redis struct {
		Host     string        `yaml:"host" default:"localhost"`
		Port     int           `yaml:"port" default:"6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`

	Scraper struct {
		UserAgent      string        `yaml:"user_agent"`
		RequestTimeout time.Duration `yaml:"request_timeout" default:"30s"`
		RateLimit      int           `yaml:"rate_limit" default:"60"` // requests per minute
	} `yaml:"scraper"`

	BrowserPool struct {
		ViewportWidth  int `yaml:"viewport_width" default:"1920"`
		ViewportHeight int `yaml:"viewport_height" default:"1080"`
	} `yaml:"browser_pool"`

	Backend struct {
		URL string `yaml:"url"`
	} `yaml:"backend"`

	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
	} `yaml:"logging"`
}

// expandEnvVars expands ${VAR} and $VAR occurrences in a string using the
// current process environment, leaving unresolved references untouched.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// Load loads configuration from an optional YAML file, then overrides it
// from environment variables, then applies queueName, the CLI argument
// that is this worker's source of truth for which queue to drain.
func Load(configPath, queueName string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Queue.Name = "leads"
	cfg.Redis.Host = "localhost"
	cfg.Redis.Port = 6379
	cfg.Redis.DB = 0
	cfg.Redis.Timeout = 5 * time.Second
	cfg.Scraper.RequestTimeout = 30 * time.Second
	cfg.Scraper.RateLimit = 60
	cfg.Scraper.UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	cfg.BrowserPool.ViewportWidth = 1920
	cfg.BrowserPool.ViewportHeight = 1080
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "json"

	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			yamlContent := expandEnvVars(string(data))
			if err := yaml.Unmarshal([]byte(yamlContent), cfg); err != nil {
				return nil, err
			}
		}
	}

	cfg.loadFromEnv()

	if queueName != "" {
		cfg.Queue.Name = queueName
	}

	return cfg, nil
}

func (c *Config) loadFromEnv() {
	if host := os.Getenv("REDIS_HOST"); host != "" {
		c.Redis.Host = host
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Redis.Port = p
		}
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		c.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if d, err := strconv.Atoi(db); err == nil {
			c.Redis.DB = d
		}
	}

	if backendURL := os.Getenv("BACKEND_URL"); backendURL != "" {
		c.Backend.URL = backendURL
	}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		c.Database.URL = databaseURL
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}

	if rateLimit := os.Getenv("SCRAPER_RATE_LIMIT"); rateLimit != "" {
		if rl, err := strconv.Atoi(rateLimit); err == nil {
			c.Scraper.RateLimit = rl
		}
	}

	if timeout := os.Getenv("SCRAPER_REQUEST_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Scraper.RequestTimeout = d
		}
	}
}

// RedisAddr returns the host:port address go-redis expects.
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + strconv.Itoa(c.Redis.Port)
}
