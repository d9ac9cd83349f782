// Package config loads process configuration from the environment.
//
// A .env file in the working directory is read first when present; real
// environment variables always win over it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env          string
	Server       Server
	Database     Database
	Redis        RedisConfig
	Auth         Auth
	OTP          OTP
	Storage      Storage
	Vision       Vision
	Notification Notification
	Audit        Audit
	Housekeeping Housekeeping
	LogLevel     string
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	AdminToken      string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

type Database struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	BootstrapSchema bool
}

type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Auth struct {
	JWTSigningKey  string
	JWTIssuer      string
	AccessTokenTTL time.Duration
	// LoginAttemptLimit failed password logins are tolerated per LoginAttemptWindow.
	LoginAttemptLimit  int
	LoginAttemptWindow time.Duration
}

type OTP struct {
	Salt         string
	ResendLimit  int
	ResendWindow time.Duration
}

type Storage struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Secure    bool
	Region    string
}

type Vision struct {
	GeminiAPIKey string
	Model        string
}

type Notification struct {
	RabbitMQURL    string
	SMSQueue       string
	SendGridAPIKey string
	FromEmail      string
	FromName       string
}

type Audit struct {
	KafkaBrokers []string
	Topic        string
	PollInterval time.Duration
	BatchSize    int
}

type Housekeeping struct {
	SweepSchedule string
	Retention     time.Duration
}

// Load reads .env (if any) and the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// FromEnv builds a Config from environment variables with development defaults.
func FromEnv() Config {
	return Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Server: Server{
			Addr:            getEnv("VOLTID_ADDR", ":8080"),
			AdminToken:      getEnv("ADMIN_API_TOKEN", ""),
			RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: Database{
			URL:             getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			BootstrapSchema: getBool("DB_BOOTSTRAP_SCHEMA", false),
		},
		Redis: RedisConfig{
			URL:          getEnv("REDIS_URL", ""),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Auth: Auth{
			JWTSigningKey:      getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			JWTIssuer:          getEnv("JWT_ISSUER", "voltid"),
			AccessTokenTTL:     getDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
			LoginAttemptLimit:  getInt("LOGIN_ATTEMPT_LIMIT", 5),
			LoginAttemptWindow: getDuration("LOGIN_ATTEMPT_WINDOW", 15*time.Minute),
		},
		OTP: OTP{
			Salt:         getEnv("OTP_SALT", "dev-otp-salt"),
			ResendLimit:  getInt("OTP_RESEND_LIMIT", 3),
			ResendWindow: getDuration("OTP_RESEND_WINDOW", 10*time.Minute),
		},
		Storage: Storage{
			Endpoint:  strings.TrimPrefix(strings.TrimPrefix(getEnv("MINIO_URL", ""), "https://"), "http://"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", "voltid-uploads"),
			Secure:    getBool("MINIO_SECURE", false),
			Region:    getEnv("MINIO_REGION", "us-east-1"),
		},
		Vision: Vision{
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			Model:        getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		Notification: Notification{
			RabbitMQURL:    getEnv("RABBITMQ_URL", ""),
			SMSQueue:       getEnv("SMS_QUEUE", "sms_otp"),
			SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
			FromEmail:      getEnv("MAIL_FROM_EMAIL", "no-reply@voltid.local"),
			FromName:       getEnv("MAIL_FROM_NAME", "VoltID"),
		},
		Audit: Audit{
			KafkaBrokers: splitList(getEnv("KAFKA_BROKERS", "")),
			Topic:        getEnv("AUDIT_TOPIC", "voltid.audit"),
			PollInterval: getDuration("AUDIT_POLL_INTERVAL", 2*time.Second),
			BatchSize:    getInt("AUDIT_BATCH_SIZE", 100),
		},
		Housekeeping: Housekeeping{
			SweepSchedule: getEnv("SWEEP_SCHEDULE", "@every 10m"),
			Retention:     getDuration("VERIFICATION_RETENTION", 24*time.Hour),
		},
	}
}

// Validate rejects configurations that are unsafe outside development.
func (c Config) Validate() error {
	if c.Env != "production" {
		return nil
	}
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Auth.JWTSigningKey == "" || c.Auth.JWTSigningKey == "dev-secret-key-change-in-production" {
		missing = append(missing, "JWT_SIGNING_KEY")
	}
	if c.OTP.Salt == "" || c.OTP.Salt == "dev-otp-salt" {
		missing = append(missing, "OTP_SALT")
	}
	if len(missing) > 0 {
		return fmt.Errorf("production config missing: %s", strings.Join(missing, ", "))
	}
	return nil
}

// IsProduction reports whether the process runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
