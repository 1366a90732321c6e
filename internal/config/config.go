package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Scryfall ScryfallConfig
	Image    ImageConfig
	Cache    CacheConfig
	Redis    RedisConfig
	Render   RenderConfig
}

type ServerConfig struct {
	Host           string
	Port           int
	SessionTTL     time.Duration
	MaxUploadBytes int64
}

// DatabaseConfig selects and configures the usage ledger backend.
// Driver is "postgres" or "sqlite".
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type LoggerConfig struct {
	Level  string
	Format string
}

type ScryfallConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateDelay time.Duration
	UserAgent string
}

type ImageConfig struct {
	AllowedHosts []string
	MaxBytes     int64
	Timeout      time.Duration
}

// CacheConfig selects the image cache backend: "memory", "redis" or "none".
type CacheConfig struct {
	Driver string
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

type RenderConfig struct {
	LogoPath string
	FontPath string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_SESSION_TTL", "24h")
	v.SetDefault("SERVER_MAX_UPLOAD_BYTES", 5<<20)
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_HOST", "localhost")
	v.SetDefault("DATABASE_PORT", 5432)
	v.SetDefault("DATABASE_USER", "postgres")
	v.SetDefault("DATABASE_PASSWORD", "postgres")
	v.SetDefault("DATABASE_NAME", "deck_thumbnails")
	v.SetDefault("DATABASE_SSLMODE", "disable")
	v.SetDefault("DATABASE_SQLITE_PATH", "thumbnails.db")
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 10)
	v.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	v.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("SCRYFALL_BASE_URL", "https://api.scryfall.com")
	v.SetDefault("SCRYFALL_TIMEOUT", "10s")
	v.SetDefault("SCRYFALL_RATE_DELAY", "100ms")
	v.SetDefault("SCRYFALL_USER_AGENT", "deck-thumbnail-service/1.0")
	v.SetDefault("IMAGE_ALLOWED_HOSTS", "cards.scryfall.io,c1.scryfall.com,c2.scryfall.com,svgs.scryfall.io")
	v.SetDefault("IMAGE_MAX_BYTES", 5<<20)
	v.SetDefault("IMAGE_TIMEOUT", "10s")
	v.SetDefault("CACHE_DRIVER", "memory")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY_PREFIX", "thumbnail:image:")
	v.SetDefault("LOGO_PATH", "")
	v.SetDefault("FONT_PATH", "")

	// Env
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host:           v.GetString("SERVER_HOST"),
			Port:           v.GetInt("SERVER_PORT"),
			SessionTTL:     durationOr(v, "SERVER_SESSION_TTL", 24*time.Hour),
			MaxUploadBytes: v.GetInt64("SERVER_MAX_UPLOAD_BYTES"),
		},
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("DATABASE_DRIVER")),
			Host:            v.GetString("DATABASE_HOST"),
			Port:            v.GetInt("DATABASE_PORT"),
			User:            v.GetString("DATABASE_USER"),
			Password:        v.GetString("DATABASE_PASSWORD"),
			Name:            v.GetString("DATABASE_NAME"),
			SSLMode:         v.GetString("DATABASE_SSLMODE"),
			SQLitePath:      v.GetString("DATABASE_SQLITE_PATH"),
			MaxOpenConns:    v.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: durationOr(v, "DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Scryfall: ScryfallConfig{
			BaseURL:   strings.TrimRight(v.GetString("SCRYFALL_BASE_URL"), "/"),
			Timeout:   durationOr(v, "SCRYFALL_TIMEOUT", 10*time.Second),
			RateDelay: durationOr(v, "SCRYFALL_RATE_DELAY", 100*time.Millisecond),
			UserAgent: v.GetString("SCRYFALL_USER_AGENT"),
		},
		Image: ImageConfig{
			AllowedHosts: splitList(v.GetString("IMAGE_ALLOWED_HOSTS")),
			MaxBytes:     v.GetInt64("IMAGE_MAX_BYTES"),
			Timeout:      durationOr(v, "IMAGE_TIMEOUT", 10*time.Second),
		},
		Cache: CacheConfig{
			Driver: strings.ToLower(v.GetString("CACHE_DRIVER")),
		},
		Redis: RedisConfig{
			Addr:      v.GetString("REDIS_ADDR"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			KeyPrefix: v.GetString("REDIS_KEY_PREFIX"),
		},
		Render: RenderConfig{
			LogoPath: v.GetString("LOGO_PATH"),
			FontPath: v.GetString("FONT_PATH"),
		},
	}

	switch cfg.Database.Driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.Database.Driver)
	}

	return cfg, nil
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}
