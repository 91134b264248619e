package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	outkafka "ordering/internal/adapters/out/kafka"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	ShutdownTimeout time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	CatalogBaseURL           string
	CatalogTimeout           time.Duration
	CatalogLookupConcurrency int

	KafkaBrokers         []string
	KafkaOrderExchange   string
	KafkaOrderRoutingKey string
	KafkaConsumerGroup   string
	KafkaAsync           bool
	NotificationsEnabled bool

	OrderStatsSchedule string
}

// DSN is the connection string for gorm.io/driver/postgres.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the environment, after merging in a .env file from the
// working directory when there is one. Variables already set in the
// environment win over the file. Every malformed value is reported.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}
	return ConfigFromEnv(os.Getenv)
}

// ConfigFromEnv builds a Config from the lookup function, applying defaults
// for unset variables.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	p := envParser{getenv: getenv}

	cfg := Config{
		HTTPPort:        p.str("HTTP_PORT", "8080"),
		ShutdownTimeout: p.millis("SHUTDOWN_TIMEOUT_MS", 10*time.Second),

		DBHost:     p.str("DB_HOST", "localhost"),
		DBPort:     p.str("DB_PORT", "5432"),
		DBUser:     p.str("DB_USER", "postgres"),
		DBPassword: p.str("DB_PASSWORD", ""),
		DBName:     p.str("DB_NAME", "orders"),
		DBSslMode:  p.str("DB_SSLMODE", "disable"),

		CatalogBaseURL:           strings.TrimRight(p.str("CATALOG_BASE_URL", "http://localhost:8081"), "/"),
		CatalogTimeout:           p.millis("CATALOG_TIMEOUT_MS", 2*time.Second),
		CatalogLookupConcurrency: p.integer("CATALOG_LOOKUP_CONCURRENCY", 1),

		KafkaBrokers:         outkafka.ParseBrokers(p.str("KAFKA_BROKERS", "localhost:9092")),
		KafkaOrderExchange:   p.str("KAFKA_ORDER_EXCHANGE", "order.events"),
		KafkaOrderRoutingKey: p.str("KAFKA_ORDER_ROUTING_KEY", "order.status.changed"),
		KafkaConsumerGroup:   p.str("KAFKA_CONSUMER_GROUP", "order-notifications"),
		KafkaAsync:           p.boolean("KAFKA_ASYNC", false),
		NotificationsEnabled: p.boolean("NOTIFICATIONS_ENABLED", true),

		OrderStatsSchedule: p.str("ORDER_STATS_SCHEDULE", "*/30 * * * * *"),
	}

	if cfg.CatalogLookupConcurrency < 1 {
		p.errs = append(p.errs, fmt.Errorf("CATALOG_LOOKUP_CONCURRENCY must be at least 1, got %d",
			cfg.CatalogLookupConcurrency))
	}
	if len(cfg.KafkaBrokers) == 0 {
		p.errs = append(p.errs, errors.New("KAFKA_BROKERS must name at least one broker"))
	}

	if err := errors.Join(p.errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type envParser struct {
	getenv func(string) string
	errs   []error
}

func (p *envParser) str(key, def string) string {
	if v := strings.TrimSpace(p.getenv(key)); v != "" {
		return v
	}
	return def
}

func (p *envParser) integer(key string, def int) int {
	raw := strings.TrimSpace(p.getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not an integer", key, raw))
		return def
	}
	return v
}

func (p *envParser) millis(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(p.getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not a positive number of milliseconds", key, raw))
		return def
	}
	return time.Duration(v) * time.Millisecond
}

func (p *envParser) boolean(key string, def bool) bool {
	raw := strings.TrimSpace(p.getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not a boolean", key, raw))
		return def
	}
	return v
}
