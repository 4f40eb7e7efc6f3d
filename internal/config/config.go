package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds application settings. Values come from defaults, then the
// optional YAML file named by IGS_CONFIG, then environment variables.
type Config struct {
	Port      string `yaml:"port"`
	DBPath    string `yaml:"db_path"`
	JWTSecret string `yaml:"jwt_secret"` // Empty disables API authentication
	MaxMemory int64  `yaml:"max_memory"` // Upload memory limit in bytes
	LogMode   string `yaml:"log_mode"`

	MinStopLength float64 `yaml:"min_stop_length"`
	Annotator     string  `yaml:"annotator"` // naive or cursor

	ExamplesDir  string        `yaml:"examples_dir"`
	ExamplesURL  string        `yaml:"examples_url"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	RateLimit   int           `yaml:"rate_limit"`
	RateWindow  time.Duration `yaml:"rate_window"`
	CORSOrigins []string      `yaml:"cors_origins"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Port:          ":8080",
		DBPath:        "./data/igs.db",
		MaxMemory:     32 << 20,
		LogMode:       "dev",
		MinStopLength: 1,
		Annotator:     "naive",
		ExamplesDir:   "./data/examples",
		FetchTimeout:  30 * time.Second,
		RateLimit:     120,
		RateWindow:    time.Minute,
		CORSOrigins:   []string{"*"},
	}
}

// Load 加载配置
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("IGS_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.DBPath, "DB_PATH")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.LogMode, "LOG_MODE")
	setString(&c.Annotator, "IGS_ANNOTATOR")
	setString(&c.ExamplesDir, "IGS_EXAMPLES_DIR")
	setString(&c.ExamplesURL, "IGS_EXAMPLES_URL")

	if v := os.Getenv("MAX_MEMORY"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid MAX_MEMORY: %w", err)
		}
		c.MaxMemory = n
	}
	if v := os.Getenv("IGS_MIN_STOP_LENGTH"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid IGS_MIN_STOP_LENGTH: %w", err)
		}
		c.MinStopLength = f
	}
	if v := os.Getenv("IGS_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid IGS_RATE_LIMIT: %w", err)
		}
		c.RateLimit = n
	}
	if err := setDuration(&c.FetchTimeout, "IGS_FETCH_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&c.RateWindow, "IGS_RATE_WINDOW"); err != nil {
		return err
	}
	if v := os.Getenv("IGS_CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.CORSOrigins = origins
	}

	// Accept a bare port number
	if c.Port != "" && !strings.Contains(c.Port, ":") {
		c.Port = ":" + c.Port
	}
	return nil
}

// Validate rejects settings the server cannot run with
func (c *Config) Validate() error {
	if c.MinStopLength < 0 {
		return fmt.Errorf("min stop length must not be negative: %v", c.MinStopLength)
	}
	if c.MaxMemory <= 0 {
		return fmt.Errorf("max memory must be positive: %d", c.MaxMemory)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative: %d", c.RateLimit)
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
