package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Storage back-ends.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

const defaultEnvFile = ".env"

type Config struct {
	HTTPPort string

	Storage    string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	StoreTimeout time.Duration

	KafkaHost              string
	KafkaOrderChangedTopic string

	OutboxRelaySchedule    string
	RiderReconcileSchedule string

	ServiceName    string
	OTLPEndpoint   string
	TracingEnabled bool
}

// KafkaBrokers splits KAFKA_HOST on commas. It is empty when no broker is configured.
func (c Config) KafkaBrokers() []string {
	var brokers []string
	for _, b := range strings.Split(c.KafkaHost, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// LoadConfig parses args, loads the env file into the environment without overriding
// variables already set, and reads the configuration from the environment. The
// --http-port flag wins over HTTP_PORT. A missing default .env is not an error.
func LoadConfig(args []string) (Config, error) {
	flagSet := pflag.NewFlagSet("logistics", pflag.ContinueOnError)
	envFile := flagSet.String("env-file", defaultEnvFile, "file of KEY=VALUE lines loaded into the environment")
	httpPort := flagSet.String("http-port", "", "port to listen on, overrides HTTP_PORT")
	if err := flagSet.Parse(args); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(*envFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || flagSet.Changed("env-file") {
			return Config{}, fmt.Errorf("load %s: %w", *envFile, err)
		}
	}

	var r envReader
	cfg := Config{
		HTTPPort:               r.str("HTTP_PORT", "8080"),
		Storage:                strings.ToLower(r.str("STORAGE", StoragePostgres)),
		DBHost:                 r.str("DB_HOST", "localhost"),
		DBPort:                 r.str("DB_PORT", "5432"),
		DBUser:                 r.str("DB_USER", ""),
		DBPassword:             r.str("DB_PASSWORD", ""),
		DBName:                 r.str("DB_NAME", ""),
		DBSslMode:              r.str("DB_SSLMODE", "disable"),
		JWTSecret:              r.str("JWT_SECRET", ""),
		JWTTTL:                 r.duration("JWT_TTL", 72*time.Hour),
		BcryptCost:             r.integer("BCRYPT_COST", 10),
		StoreTimeout:           r.duration("STORE_TIMEOUT", 5*time.Second),
		KafkaHost:              r.str("KAFKA_HOST", ""),
		KafkaOrderChangedTopic: r.str("KAFKA_ORDER_CHANGED_TOPIC", "order.changed"),
		OutboxRelaySchedule:    r.str("OUTBOX_RELAY_SCHEDULE", ""),
		RiderReconcileSchedule: r.str("RIDER_RECONCILE_SCHEDULE", ""),
		ServiceName:            r.str("SERVICE_NAME", "logistics"),
		OTLPEndpoint:           r.str("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TracingEnabled:         r.boolean("TRACING_ENABLED", false),
	}
	if *httpPort != "" {
		cfg.HTTPPort = *httpPort
	}

	if err := errors.Join(r.err, cfg.validate()); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var problems []error
	if c.JWTSecret == "" {
		problems = append(problems, errors.New("JWT_SECRET is required"))
	}
	switch c.Storage {
	case StoragePostgres:
		if c.DBUser == "" || c.DBName == "" {
			problems = append(problems, errors.New("DB_USER and DB_NAME are required for postgres storage"))
		}
	case StorageMemory:
	default:
		problems = append(problems, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage))
	}
	if c.JWTTTL <= 0 {
		problems = append(problems, errors.New("JWT_TTL must be positive"))
	}
	if c.StoreTimeout <= 0 {
		problems = append(problems, errors.New("STORE_TIMEOUT must be positive"))
	}
	if c.KafkaHost != "" && c.KafkaOrderChangedTopic == "" {
		problems = append(problems, errors.New("KAFKA_ORDER_CHANGED_TOPIC is required with KAFKA_HOST"))
	}
	return errors.Join(problems...)
}

// envReader collects parse failures so every bad key is reported at once.
type envReader struct {
	err error
}

func (r *envReader) str(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func (r *envReader) duration(key string, fallback time.Duration) time.Duration {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		r.err = errors.Join(r.err, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}

func (r *envReader) integer(key string, fallback int) int {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		r.err = errors.Join(r.err, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func (r *envReader) boolean(key string, fallback bool) bool {
	raw := r.str(key, "")
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		r.err = errors.Join(r.err, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return b
}
