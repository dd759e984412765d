package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port            int     `yaml:"port"`
	DBDSN           string  `yaml:"dbDSN"`
	Preset          string  `yaml:"preset"`
	Length          int     `yaml:"length"`
	MaxLength       int     `yaml:"maxLength"`
	MaxBatch        int     `yaml:"maxBatch"`
	AlphabetCache   int     `yaml:"alphabetCache"`
	CreateRateRPS   float64 `yaml:"createRateRPS"`
	CreateRateBurst int     `yaml:"createRateBurst"`
	EventBuffer     int     `yaml:"eventBuffer"`
	LogLevel        string  `yaml:"logLevel"`
}

func Default() Config {
	return Config{
		Port:            8080,
		DBDSN:           "file:checkid.db?_foreign_keys=on",
		Preset:          "safe",
		Length:          8,
		MaxLength:       256,
		MaxBatch:        100,
		AlphabetCache:   256,
		CreateRateRPS:   2.0,
		CreateRateBurst: 5,
		EventBuffer:     10000,
		LogLevel:        "info",
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getfloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return def
}

// Load layers defaults, the YAML file at path (skipped when empty) and the
// environment, in that order.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = getint("PORT", c.Port)
	c.DBDSN = getenv("DB_DSN", c.DBDSN)
	c.Preset = getenv("CHECKID_PRESET", c.Preset)
	c.Length = getint("CHECKID_LENGTH", c.Length)
	c.MaxLength = getint("MAX_LENGTH", c.MaxLength)
	c.MaxBatch = getint("MAX_BATCH", c.MaxBatch)
	c.AlphabetCache = getint("ALPHABET_CACHE", c.AlphabetCache)
	c.CreateRateRPS = getfloat("CREATE_RATE_RPS", c.CreateRateRPS)
	c.CreateRateBurst = getint("CREATE_RATE_BURST", c.CreateRateBurst)
	c.EventBuffer = getint("EVENT_BUFFER", c.EventBuffer)
	c.LogLevel = getenv("LOG_LEVEL", c.LogLevel)
}

func (c Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.MaxLength < 2 {
		errs = append(errs, fmt.Errorf("maxLength must be at least 2, got %d", c.MaxLength))
	}
	if c.Length < 2 {
		errs = append(errs, fmt.Errorf("length must be at least 2, got %d", c.Length))
	} else if c.MaxLength >= 2 && c.Length > c.MaxLength {
		errs = append(errs, fmt.Errorf("length %d exceeds maxLength %d", c.Length, c.MaxLength))
	}
	if c.MaxBatch < 1 {
		errs = append(errs, fmt.Errorf("maxBatch must be positive, got %d", c.MaxBatch))
	}
	if c.AlphabetCache < 1 {
		errs = append(errs, fmt.Errorf("alphabetCache must be positive, got %d", c.AlphabetCache))
	}
	if c.EventBuffer < 0 {
		errs = append(errs, fmt.Errorf("eventBuffer must not be negative, got %d", c.EventBuffer))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("logLevel: %w", err))
	}
	return errors.Join(errs...)
}

// Level is the parsed LogLevel, falling back to info.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
