// Package config reads the settings from the environment.
// Every variable NAME may instead be provided as a file through NAME_FILE.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/quintans/faults"
	"github.com/quintans/noovo/internal/app"
	"github.com/quintans/noovo/internal/model"
)

const (
	StoreDisk     = "disk"
	StoreRedis    = "redis"
	StorePostgres = "postgres"

	DefaultSite    = "bell"
	DefaultListen  = ":8080"
	DefaultTimeout = 30 * time.Second
)

type Config struct {
	Credentials model.Credentials
	CacheDir    string
	Language    model.Language
	Store       string
	RedisURL    string
	DatabaseURL string
	RateLimit   float64
	Retries     int
	Timeout     time.Duration
	Listen      string
	LogLevel    string
}

// Lookup returns the value of an environment variable.
type Lookup func(name string) string

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(os.Getenv)
}

func LoadFrom(getenv Lookup) (Config, error) {
	var err error
	get := func(name, def string) string {
		if err != nil {
			return def
		}
		var v string
		v, err = getConfig(getenv, name)
		if v == "" {
			return def
		}
		return v
	}

	cacheDir, _ := os.UserCacheDir()
	c := Config{
		Credentials: model.Credentials{
			Username: get("NOOVO_USERNAME", ""),
			Password: get("NOOVO_PASSWORD", ""),
			Site:     get("NOOVO_SITE", DefaultSite),
		},
		CacheDir:    get("NOOVO_CACHE_DIR", filepath.Join(cacheDir, app.Name)),
		Language:    model.ParseLanguage(get("NOOVO_LANGUAGE", model.VersionFR)),
		Store:       strings.ToLower(get("NOOVO_STORE", StoreDisk)),
		RedisURL:    get("REDIS_URL", ""),
		DatabaseURL: get("DATABASE_URL", ""),
		Listen:      get("NOOVO_LISTEN", DefaultListen),
		LogLevel:    get("NOOVO_LOG_LEVEL", "info"),
	}
	rate := get("NOOVO_RATE_LIMIT", "0")
	retries := get("NOOVO_RETRIES", "0")
	timeout := get("NOOVO_HTTP_TIMEOUT", DefaultTimeout.String())
	if err != nil {
		return Config{}, err
	}

	if c.RateLimit, err = strconv.ParseFloat(rate, 64); err != nil || c.RateLimit < 0 {
		return Config{}, faults.Errorf("invalid NOOVO_RATE_LIMIT '%s'", rate)
	}
	if c.Retries, err = strconv.Atoi(retries); err != nil || c.Retries < 0 {
		return Config{}, faults.Errorf("invalid NOOVO_RETRIES '%s'", retries)
	}
	if c.Timeout, err = time.ParseDuration(timeout); err != nil {
		return Config{}, faults.Errorf("invalid NOOVO_HTTP_TIMEOUT '%s': %w", timeout, err)
	}

	switch c.Store {
	case StoreDisk:
	case StoreRedis:
		if c.RedisURL == "" {
			return Config{}, faults.Errorf("REDIS_URL is required by the redis store")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return Config{}, faults.Errorf("DATABASE_URL is required by the postgres store")
		}
	default:
		return Config{}, faults.Errorf("unknown store '%s'", c.Store)
	}

	return c, nil
}

func getConfig(getenv Lookup, name string) (string, error) {
	if v := getenv(name); v != "" {
		return v, nil
	}
	if file := getenv(name + "_FILE"); file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return "", faults.Errorf("reading %s_FILE: %w", name, err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	return "", nil
}
