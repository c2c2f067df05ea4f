package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

const DefaultEnvPath = "./configs/.env"

var (
	once     sync.Once
	instance *Config
)

type Config struct {
}

// New loads DefaultEnvPath once. Variables already set in the environment
// win over the file; a missing file leaves the environment as is.
func New() *Config {
	once.Do(func() {
		err := godotenv.Load(DefaultEnvPath)
		if err != nil {
			slog.Info("no env file loaded, using process environment", slog.String("path", DefaultEnvPath), slog.String("error", err.Error()))
		}
		instance = &Config{}
	})
	return instance
}

func (c *Config) GetString(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func (c *Config) GetStringOr(key, fallback string) string {
	if v := c.GetString(key); v != "" {
		return v
	}
	return fallback
}

// GetInt returns fallback when key is unset or not an integer.
func (c *Config) GetInt(key string, fallback int) int {
	v := c.GetString(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer in config, using default", slog.String("key", key), slog.Int("default", fallback))
		return fallback
	}
	return n
}

// GetList splits a comma separated value, dropping empty items.
func (c *Config) GetList(key string) []string {
	var out []string
	for _, item := range strings.Split(c.GetString(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
