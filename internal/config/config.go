package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppHost  string
	HTTPPort string
	AppEnv   string
	LogLevel string

	// JWTSecret — общий секрет с внешним identity-провайдером; сервис только
	// проверяет его сессии, сам токены не выпускает.
	JWTSecret string

	// OwnerEmail — фиксированный адрес владельца для внутренних уведомлений.
	OwnerEmail string
	EmailFrom  string
	// ResendAPIKey пустой — письма не отправляются, только логируются.
	ResendAPIKey  string
	ResendBaseURL string

	// RedisURL — если задан, счётчик rate-limit живёт в Redis (общий для
	// нескольких инстансов), иначе в памяти процесса.
	RedisURL string

	KafkaBrokers      []string
	KafkaTopicInquiry string

	TrackRateLimit  int
	TrackRateWindow time.Duration

	DB struct {
		Host     string
		Port     string
		User     string
		Password string
		Database string
		SSLMode  string
	}
}

func Load() (*Config, error) {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	cfg := &Config{
		AppHost:  getEnv("APP_HOST", "0.0.0.0"),
		HTTPPort: firstEnv("APP_PORT", "HTTP_PORT", "8098"),
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		OwnerEmail:    getEnv("OWNER_EMAIL", "areeshaabbas07@gmail.com"),
		EmailFrom:     getEnv("EMAIL_FROM", "Areesha Abbas <onboarding@resend.dev>"),
		ResendAPIKey:  getEnv("RESEND_API_KEY", ""),
		ResendBaseURL: getEnv("RESEND_BASE_URL", "https://api.resend.com"),

		RedisURL: getEnv("REDIS_URL", ""),

		KafkaBrokers:      splitList(getEnv("KAFKA_BROKERS", "")),
		KafkaTopicInquiry: getEnv("KAFKA_TOPIC_INQUIRY", ""),

		TrackRateLimit:  getEnvInt("TRACK_RATE_LIMIT", 10),
		TrackRateWindow: time.Duration(getEnvInt("TRACK_RATE_WINDOW_SECONDS", 60)) * time.Second,
	}
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", "5432")
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.DB.Database = getEnv("DB_DATABASE", "inquiry_service")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.DB.Host == "" || c.DB.Database == "" {
		return errors.New("config: DB_HOST and DB_DATABASE are required")
	}
	if c.TrackRateLimit <= 0 || c.TrackRateWindow <= 0 {
		return errors.New("config: TRACK_RATE_LIMIT and TRACK_RATE_WINDOW_SECONDS must be positive")
	}
	if c.AppEnv == "production" {
		if c.DB.Password == "" {
			return errors.New("config: in production DB_PASSWORD is required")
		}
		if c.JWTSecret == "" {
			return errors.New("config: in production JWT_SECRET is required")
		}
	}
	return nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Database, c.DB.SSLMode)
}

func (c *Config) DatabaseURL() string {
	pass := url.QueryEscape(c.DB.Password)
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DB.User, pass, c.DB.Host, c.DB.Port, c.DB.Database, c.DB.SSLMode)
}

func (c *Config) Addr() string {
	return c.AppHost + ":" + c.HTTPPort
}

func firstEnv(keysAndDef ...string) string {
	if len(keysAndDef) == 0 {
		return ""
	}
	def := keysAndDef[len(keysAndDef)-1]
	for _, k := range keysAndDef[:len(keysAndDef)-1] {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return def
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
