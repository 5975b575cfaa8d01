// Package config loads layered service configuration: defaults, an optional
// YAML file, LIFECOST_ environment variables and explicitly set flags.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "LIFECOST_"

// Questionnaire sources.
const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

type Config struct {
	Server struct {
		Port string `koanf:"port"`
	} `koanf:"server"`
	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
		TTL      string `koanf:"ttl"`
	} `koanf:"redis"`
	Postgres struct {
		URL string `koanf:"url"`
	} `koanf:"postgres"`
	Questionnaire struct {
		ID     string `koanf:"id"`
		Source string `koanf:"source"`
		Path   string `koanf:"path"`
		TTL    string `koanf:"ttl"`
	} `koanf:"questionnaire"`
	Log LogConfig `koanf:"log"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"server.port":          "8080",
		"redis.ttl":            "24h",
		"questionnaire.id":     "default",
		"questionnaire.source": SourceEmbedded,
		"questionnaire.ttl":    "10m",
		"log.level":            "info",
		"log.format":           "text",
	}
}

// Load reads configuration with precedence flags > LIFECOST_ env > PORT env >
// file > defaults. A missing path is not an error; an unreadable one is.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("read config file %s: %w", path, err)
			}
		}
	}

	if port := os.Getenv("PORT"); port != "" {
		if err := k.Load(confmap.Provider(map[string]interface{}{"server.port": port}, "."), nil); err != nil {
			return Config{}, fmt.Errorf("load PORT: %w", err)
		}
	}

	// LIFECOST_REDIS_ADDR -> redis.addr
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			switch f.Name {
			case "port":
				return "server.port", posflag.FlagVal(flags, f)
			case "log-level":
				return "log.level", posflag.FlagVal(flags, f)
			default:
				return "", nil
			}
		}), nil); err != nil {
			return Config{}, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
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

// NewLogger builds the process logger. Unknown levels fall back to info.
func NewLogger(cfg LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
