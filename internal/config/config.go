package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Kafka Kafka `validate:"required"`

	Postgres Postgres `validate:"required"`

	Redis Redis `validate:"required"`

	Cache Cache

	Share Share `validate:"required"`

	Gateway Gateway

	Auth Auth `validate:"required"`

	Tracing Tracing
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,gt=0,lte=65535"`
}

type Kafka struct {
	GroupID     string   `validate:"required"`
	Brokers     []string `validate:"required,min=1,dive,hostname_port"`
	OrdersTopic string   `validate:"required"`
	EventsTopic string   `validate:"required"`

	ReaderMaxWait time.Duration `validate:"gte=0"`
	BatchTimeout  time.Duration `validate:"gte=0"`
}

type Postgres struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"required,gt=0,lte=65535"`
	DBName   string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`

	SSLMode string `validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `validate:"gte=1"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`
}

type Redis struct {
	Addr     string `validate:"required,hostname_port"`
	Password string
	DB       int `validate:"gte=0"`

	RateLimitPerMinute int `validate:"gt=0"`
	RateLimitBurst     int `validate:"gt=0"`
}

type Cache struct {
	Capacity int           `validate:"gt=0"`
	TTL      time.Duration `validate:"gt=0"`
}

type Share struct {
	PublicOrigin string        `validate:"required,url"`
	TTL          time.Duration `validate:"gt=0"`
	TokenLength  int           `validate:"gte=10,lte=64"`
}

type Gateway struct {
	Timeout     time.Duration `validate:"gt=0"`
	MaxAttempts int           `validate:"gte=1,lte=10"`
	RPS         float64       `validate:"gt=0"`
	Burst       int           `validate:"gte=1"`
}

type Auth struct {
	JWTSecret string `validate:"required,min=16"`
}

type Tracing struct {
	Enabled      bool
	OTLPEndpoint string `validate:"required_if=Enabled true"`
	Insecure     bool
	SampleRate   float64 `validate:"gte=0,lte=1"`
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host: env("HOST", "localhost"),
			Port: env("PORT", "8080"),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS", "http://localhost:3000"), ","),
		},

		Kafka: Kafka{
			GroupID:     env("KAFKA_GROUP_ID", "shared-payment-service"),
			OrdersTopic: env("KAFKA_ORDERS_TOPIC", "orders"),
			EventsTopic: env("KAFKA_PAYMENT_EVENTS_TOPIC", "payment-events"),
			Brokers:     strings.Split(env("KAFKA_BROKERS", "localhost:9092"), ","),

			ReaderMaxWait: envDuration("KAFKA_READER_MAX_WAIT", 10*time.Millisecond),
			BatchTimeout:  envDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		},

		Postgres: Postgres{
			Port:     envInt("POSTGRES_PORT", 5432),
			Host:     env("POSTGRES_HOST", "localhost"),
			DBName:   env("POSTGRES_DB", "storefront"),
			User:     env("POSTGRES_USER", ""),
			Password: env("POSTGRES_PASSWORD", ""),

			SSLMode: env("POSTGRES_SSL_MODE", "disable"),

			MaxOpenConns:    envInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("POSTGRES_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Redis: Redis{
			Addr:     env("REDIS_ADDR", "localhost:6379"),
			Password: env("REDIS_PASSWORD", ""),
			DB:       envInt("REDIS_DB", 0),

			RateLimitPerMinute: envInt("RATE_LIMIT_PER_MINUTE", 60),
			RateLimitBurst:     envInt("RATE_LIMIT_BURST", 20),
		},

		Cache: Cache{
			Capacity: envInt("CACHE_CAPACITY", 1000),
			TTL:      envDuration("CACHE_TTL", 10*time.Minute),
		},

		Share: Share{
			PublicOrigin: strings.TrimRight(env("SHARE_PUBLIC_ORIGIN", "http://localhost:3000"), "/"),
			TTL:          envDuration("SHARE_TTL", 24*time.Hour),
			TokenLength:  envInt("SHARE_TOKEN_LENGTH", 20),
		},

		Gateway: Gateway{
			Timeout:     envDuration("GATEWAY_TIMEOUT", 10*time.Second),
			MaxAttempts: envInt("GATEWAY_MAX_ATTEMPTS", 3),
			RPS:         envFloat("GATEWAY_RPS", 20),
			Burst:       envInt("GATEWAY_BURST", 5),
		},

		Auth: Auth{
			JWTSecret: env("JWT_SECRET", ""),
		},

		Tracing: Tracing{
			Enabled:      envBool("TRACING_ENABLED", false),
			OTLPEndpoint: env("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:     envBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			SampleRate:   envFloat("TRACING_SAMPLE_RATE", 1),
		},
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
