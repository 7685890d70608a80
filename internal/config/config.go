package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port      string `yaml:"port"`
		StaticDir string `yaml:"static_dir"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Quiz struct {
		SetID         string `yaml:"set_id"`
		TTL           string `yaml:"ttl"`
		QuestionsFile string `yaml:"questions_file"`
	} `yaml:"quiz"`
	Telegram struct {
		Token     string `yaml:"token"`
		WebAppURL string `yaml:"webapp_url"`
	} `yaml:"telegram"`
	Client struct {
		BaseURL string `yaml:"base_url"`
		UserID  int64  `yaml:"user_id"`
		Locale  string `yaml:"locale"`
		Timeout string `yaml:"timeout"`
	} `yaml:"client"`
}

// Load reads YAML config from path. A missing file yields an empty config so
// the service can run on defaults and environment variables alone.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

// applyEnv lets deployment environment variables override the file.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("DATABASE_URL"); v != "" {
		c.Postgres.URL = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := getenv("TELEGRAM_TOKEN"); v != "" {
		c.Telegram.Token = v
	}
	if v := getenv("WEBAPP_URL"); v != "" {
		c.Telegram.WebAppURL = v
	}
	if v := getenv("QUIZ_API_URL"); v != "" {
		c.Client.BaseURL = v
	}
	if v := getenv("QUIZ_USER_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Client.UserID = id
		}
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
