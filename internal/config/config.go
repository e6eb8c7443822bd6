package config

import (
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var validEnvs = map[string]bool{
	"local": true,
	"alpha": true,
	"beta":  true,
	"prod":  true,
}

type Config struct {
	ServerPort  string
	AppEnv      string
	AuthDevMode bool
	LogLevel    string
	Debug       bool
	DB          DBConfig
	GitHub      GitHubConfig
	Session     SessionConfig
}

func (c Config) ParseLogLevel() slog.Level {
	if c.Debug {
		return slog.LevelDebug
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c Config) Validate() error {
	if _, err := strconv.Atoi(c.ServerPort); err != nil {
		return fmt.Errorf("invalid SERVER_PORT %q: %w", c.ServerPort, err)
	}
	if !validEnvs[c.AppEnv] {
		return fmt.Errorf("invalid APP_ENV %q: must be one of local, alpha, beta, prod", c.AppEnv)
	}
	if c.AuthDevMode && c.AppEnv != "local" {
		return fmt.Errorf("AUTH_DEV_MODE must not be enabled in %s environment", c.AppEnv)
	}
	if !c.AuthDevMode {
		if c.GitHub.ClientID == "" {
			return fmt.Errorf("GITHUB_CLIENT_ID is required when AUTH_DEV_MODE is disabled")
		}
		if c.GitHub.ClientSecret == "" {
			return fmt.Errorf("GITHUB_CLIENT_SECRET is required when AUTH_DEV_MODE is disabled")
		}
		if c.Session.Secret == "" {
			return fmt.Errorf("SESSION_SECRET is required when AUTH_DEV_MODE is disabled")
		}
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("invalid SESSION_TTL: must be a positive duration")
	}
	return nil
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

func (d DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     d.Name,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(d.SSLMode)),
	}
	return u.String()
}

type GitHubConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

type SessionConfig struct {
	Secret        string
	TTL           time.Duration
	SecureCookies bool
}

func Load() Config {
	// .env is optional; deployed environments set variables directly
	_ = godotenv.Load()

	return Config{
		ServerPort:  envOrDefault("SERVER_PORT", "8080"),
		AppEnv:      envOrDefault("APP_ENV", "local"),
		AuthDevMode: strings.EqualFold(envOrDefault("AUTH_DEV_MODE", "false"), "true"),
		LogLevel:    envOrDefault("LOG_LEVEL", "info"),
		Debug:       strings.EqualFold(envOrDefault("DEBUG", "false"), "true"),
		DB: DBConfig{
			Host:     envOrDefault("DB_HOST", "localhost"),
			Port:     envOrDefault("DB_PORT", "5432"),
			User:     envOrDefault("DB_USER", "taskboard"),
			Password: envOrDefault("DB_PASSWORD", "taskboard"),
			Name:     envOrDefault("DB_NAME", "taskboard"),
			SSLMode:  envOrDefault("DB_SSLMODE", "disable"),
		},
		GitHub: GitHubConfig{
			ClientID:     os.Getenv("GITHUB_CLIENT_ID"),
			ClientSecret: os.Getenv("GITHUB_CLIENT_SECRET"),
			RedirectURL:  envOrDefault("GITHUB_REDIRECT_URL", "http://localhost:8080/api/v1/auth/callback"),
		},
		Session: SessionConfig{
			Secret:        os.Getenv("SESSION_SECRET"),
			TTL:           durationOrDefault("SESSION_TTL", 24*time.Hour),
			SecureCookies: strings.EqualFold(envOrDefault("SECURE_COOKIES", "false"), "true"),
		},
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func durationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
