package config

import (
	"delivery-cost-service/internal/domain"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	defaultPort             = "8080"
	defaultDBPath           = "data/quotes.db"
	defaultORSBaseURL       = "https://api.openrouteservice.org"
	defaultDistanceCacheTTL = 24 * time.Hour
)

// Config holds runtime configuration for the server and dbtool.
type Config struct {
	Port             string        `yaml:"port"`
	DatabaseURL      string        `yaml:"database_url"`
	DBPath           string        `yaml:"db_path"`
	RedisURL         string        `yaml:"redis_url"`
	DefaultLoad      domain.Load   `yaml:"default_load"`
	ORSAPIKey        string        `yaml:"ors_api_key"`
	ORSBaseURL       string        `yaml:"ors_base_url"`
	ORSCountry       string        `yaml:"ors_country"`
	DistanceCacheTTL time.Duration `yaml:"distance_cache_ttl"`
	AllowedOrigins   []string      `yaml:"cors_allowed_origins"`
}

// Get returns the environment value for key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load builds the configuration from defaults, then the YAML file named by CONFIG_PATH
// (if any), then environment variables. Later sources win.
func Load() (Config, error) {
	cfg := Config{
		Port:             defaultPort,
		DBPath:           defaultDBPath,
		DefaultLoad:      domain.LoadNormal,
		ORSBaseURL:       defaultORSBaseURL,
		DistanceCacheTTL: defaultDistanceCacheTTL,
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.Port = Get("PORT", cfg.Port)
	cfg.DatabaseURL = Get("DATABASE_URL", cfg.DatabaseURL)
	cfg.DBPath = Get("DB_PATH", cfg.DBPath)
	cfg.RedisURL = Get("REDIS_URL", cfg.RedisURL)
	cfg.ORSAPIKey = Get("ORS_API_KEY", cfg.ORSAPIKey)
	cfg.ORSBaseURL = Get("ORS_BASE_URL", cfg.ORSBaseURL)
	cfg.ORSCountry = Get("ORS_COUNTRY", cfg.ORSCountry)

	if v := os.Getenv("DEFAULT_LOAD"); v != "" {
		cfg.DefaultLoad = domain.Load(v)
	}

	if v := os.Getenv("DISTANCE_CACHE_TTL_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse DISTANCE_CACHE_TTL_SECONDS: %w", err)
		}
		cfg.DistanceCacheTTL = time.Duration(secs) * time.Second
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %q: %w", path, err)
	}
	return nil
}

// Validate normalizes DefaultLoad and checks value ranges.
func (c *Config) Validate() error {
	l, err := domain.ParseLoad(string(c.DefaultLoad))
	if err != nil {
		return fmt.Errorf("DEFAULT_LOAD: %w", err)
	}
	c.DefaultLoad = l

	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if c.DistanceCacheTTL < 0 {
		return fmt.Errorf("distance cache TTL must not be negative")
	}
	if c.DatabaseURL == "" && c.DBPath == "" {
		return fmt.Errorf("either DATABASE_URL or DB_PATH is required")
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
