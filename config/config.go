package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs, one per concern.
//
// Example ENV:
//
//	SERVER_PORT=8080
//	STORAGE_DRIVER=postgres
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=portfoli
//	POSTGRES_SSLMODE=disable
//	REDIS_ADDR=localhost:6379
//	KAFKA_BROKERS=localhost:9092,localhost:9093
//	KAFKA_TOPIC=portfolio-events
//	RATE_LIMIT_REQUESTS=60
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Postgres  PostgresConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	RateLimit RateLimitConfig
	Ingestion IngestionConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// StorageConfig selects the repository implementation. "memory" keeps
// everything in process and needs no database.
type StorageConfig struct {
	Driver string
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host, Port, User, Password, DBName, SSLMode: connection parameters.
//   - MaxOpenConns, MaxIdleConns: pool limits applied to *sql.DB.
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	URL          string
}

// RedisConfig configures the asset lookup cache. An empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
	Prefix   string
}

func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// KafkaConfig configures domain event publishing. With no brokers, events
// are only logged.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

// RateLimitConfig bounds requests per client IP. Requests <= 0 disables it.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// IngestionConfig tunes the asset catalog loader.
type IngestionConfig struct {
	Dir       string
	Workers   int
	BatchSize int
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() terminates
//     the app with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_REQUEST_TIMEOUT", "10s")
	viper.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "10s")

	viper.SetDefault("STORAGE_DRIVER", DriverPostgres)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "portfoli")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("POSTGRES_MAX_OPEN_CONNS", 20)
	viper.SetDefault("POSTGRES_MAX_IDLE_CONNS", 5)

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_TTL", "10m")
	viper.SetDefault("REDIS_PREFIX", "portfoli:")

	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "portfolio-events")

	viper.SetDefault("RATE_LIMIT_REQUESTS", 60)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")

	viper.SetDefault("INGESTION_DIR", "./data/assets")
	viper.SetDefault("INGESTION_WORKERS", 4)
	viper.SetDefault("INGESTION_BATCH_SIZE", 500)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:            viper.GetString("SERVER_PORT"),
			RequestTimeout:  viper.GetDuration("SERVER_REQUEST_TIMEOUT"),
			ShutdownTimeout: viper.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(strings.TrimSpace(viper.GetString("STORAGE_DRIVER"))),
		},
		Postgres: PostgresConfig{
			Host:         viper.GetString("POSTGRES_HOST"),
			Port:         viper.GetInt("POSTGRES_PORT"),
			User:         viper.GetString("POSTGRES_USER"),
			Password:     viper.GetString("POSTGRES_PASSWORD"),
			DBName:       viper.GetString("POSTGRES_DB"),
			SSLMode:      viper.GetString("POSTGRES_SSLMODE"),
			MaxOpenConns: viper.GetInt("POSTGRES_MAX_OPEN_CONNS"),
			MaxIdleConns: viper.GetInt("POSTGRES_MAX_IDLE_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
			TTL:      viper.GetDuration("REDIS_TTL"),
			Prefix:   viper.GetString("REDIS_PREFIX"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(viper.GetString("KAFKA_BROKERS")),
			Topic:   viper.GetString("KAFKA_TOPIC"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   viper.GetDuration("RATE_LIMIT_WINDOW"),
		},
		Ingestion: IngestionConfig{
			Dir:       viper.GetString("INGESTION_DIR"),
			Workers:   viper.GetInt("INGESTION_WORKERS"),
			BatchSize: viper.GetInt("INGESTION_BATCH_SIZE"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

// DSN builds the database/sql connection string.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// splitList parses a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Problems lists every missing or invalid setting in c. Postgres settings
// are only required by the postgres driver.
func (c Config) Problems() []string {
	var problems []string

	if c.Server.Port == "" {
		problems = append(problems, "SERVER_PORT")
	}
	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Postgres.Host == "" {
			problems = append(problems, "POSTGRES_HOST")
		}
		if c.Postgres.Port == 0 {
			problems = append(problems, "POSTGRES_PORT")
		}
		if c.Postgres.User == "" {
			problems = append(problems, "POSTGRES_USER")
		}
		if c.Postgres.Password == "" {
			problems = append(problems, "POSTGRES_PASSWORD")
		}
		if c.Postgres.DBName == "" {
			problems = append(problems, "POSTGRES_DB")
		}
	case DriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("STORAGE_DRIVER (%q is not postgres or memory)", c.Storage.Driver))
	}
	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		problems = append(problems, "KAFKA_TOPIC")
	}
	if c.RateLimit.Requests > 0 && c.RateLimit.Window <= 0 {
		problems = append(problems, "RATE_LIMIT_WINDOW")
	}
	return problems
}

// validateConfig terminates the application when AppConfig has problems.
func validateConfig() {
	if problems := AppConfig.Problems(); len(problems) > 0 {
		log.Fatalf("missing or invalid configuration: %v\n", problems)
	}
}
