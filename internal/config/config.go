package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort  string
	DataFile string
	LogLevel string

	// Redis is optional; when RedisAddr is empty the idempotency layer and
	// the redis cache backend are disabled.
	RedisAddr    string
	RedisDB      int
	IdempTTLSecs int

	ReminderCron string

	SMTPHost      string
	SMTPPort      string
	SMTPUser      string
	SMTPPass      string
	SenderEmail   string
	ReminderEmail string

	// dashboard client settings
	APIBaseURL         string
	CacheBackend       string // file | redis
	CacheDir           string
	RequestTimeoutSecs int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	// .env is a local-dev convenience; absence is fine
	_ = godotenv.Load()

	return &Config{
		AppPort:  getenv("APP_PORT", "3000"),
		DataFile: getenv("DATA_FILE", "data.json"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		RedisAddr:    getenv("REDIS_ADDR", ""),
		RedisDB:      getenvInt("REDIS_DB", 0),
		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		ReminderCron: getenv("REMINDER_CRON", "0 9 * * *"),

		SMTPHost:      getenv("SMTP_HOST", ""),
		SMTPPort:      getenv("SMTP_PORT", "587"),
		SMTPUser:      getenv("SMTP_USER", ""),
		SMTPPass:      getenv("SMTP_PASS", ""),
		SenderEmail:   getenv("SENDER_EMAIL", ""),
		ReminderEmail: getenv("REMINDER_EMAIL", ""),

		APIBaseURL:         getenv("API_BASE_URL", "http://localhost:3000/api"),
		CacheBackend:       getenv("CACHE_BACKEND", "file"),
		CacheDir:           getenv("CACHE_DIR", defaultCacheDir()),
		RequestTimeoutSecs: getenvInt("REQUEST_TIMEOUT_SECONDS", 10),
	}
}

func defaultCacheDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ".lendwise"
	}
	return base + string(os.PathSeparator) + "lendwise"
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if _, err := net.LookupPort("tcp", c.AppPort); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", c.AppPort, err)
	}
	if c.DataFile == "" {
		return errors.New("missing DATA_FILE")
	}
	switch c.CacheBackend {
	case "file", "redis":
	default:
		return fmt.Errorf("invalid CACHE_BACKEND %q (want file or redis)", c.CacheBackend)
	}
	if c.CacheBackend == "redis" && c.RedisAddr == "" {
		return errors.New("CACHE_BACKEND=redis requires REDIS_ADDR")
	}
	if c.SMTPEnabled() && c.ReminderEmail == "" {
		return errors.New("SMTP_HOST set but REMINDER_EMAIL missing")
	}
	return nil
}

// SMTPEnabled reports whether reminder emails should go out over SMTP
// instead of the log notifier.
func (c *Config) SMTPEnabled() bool { return c.SMTPHost != "" && c.SenderEmail != "" }

func (c *Config) SMTPAddr() string { return net.JoinHostPort(c.SMTPHost, c.SMTPPort) }
