package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"HTTP_PORT", "STORAGE", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"JWT_SECRET", "JWT_TTL", "BCRYPT_COST", "STORE_TIMEOUT", "KAFKA_HOST", "KAFKA_ORDER_CHANGED_TOPIC",
	"OUTBOX_RELAY_SCHEDULE", "RIDER_RECONCILE_SCHEDULE", "SERVICE_NAME", "OTEL_EXPORTER_OTLP_ENDPOINT",
	"TRACING_ENABLED",
}

// clearEnv unsets every key; t.Setenv restores the previous values afterwards.
// An empty but set variable would stop godotenv from loading the file value.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Chdir(t.TempDir())
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE", "memory")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, 72*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, "order.changed", cfg.KafkaOrderChangedTopic)
	assert.Empty(t, cfg.KafkaBrokers())
	assert.False(t, cfg.TracingEnabled)
}

func TestLoadConfig_EnvFileAndFlags(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_USER", "from-environment")

	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(`
HTTP_PORT=9000
DB_USER=from-file
DB_NAME=logistics
JWT_SECRET=secret
JWT_TTL=1h
KAFKA_HOST=kafka-1:9092, kafka-2:9092
TRACING_ENABLED=true
`), 0o600))

	cfg, err := LoadConfig([]string{"--env-file", envFile, "--http-port", "7000"})
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.HTTPPort)
	assert.Equal(t, StoragePostgres, cfg.Storage)
	assert.Equal(t, "from-environment", cfg.DBUser)
	assert.Equal(t, "logistics", cfg.DBName)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers())
	assert.True(t, cfg.TracingEnabled)
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := map[string]struct {
		env     map[string]string
		args    []string
		wantErr string
	}{
		"missing secret": {
			env:     map[string]string{"STORAGE": "memory"},
			wantErr: "JWT_SECRET is required",
		},
		"unknown storage": {
			env:     map[string]string{"STORAGE": "redis", "JWT_SECRET": "s"},
			wantErr: "STORAGE must be",
		},
		"postgres without database": {
			env:     map[string]string{"JWT_SECRET": "s"},
			wantErr: "DB_USER and DB_NAME",
		},
		"bad duration": {
			env:     map[string]string{"STORAGE": "memory", "JWT_SECRET": "s", "STORE_TIMEOUT": "soon"},
			wantErr: "STORE_TIMEOUT",
		},
		"explicit env file missing": {
			env:     map[string]string{"STORAGE": "memory", "JWT_SECRET": "s"},
			args:    []string{"--env-file", "does-not-exist.env"},
			wantErr: "does-not-exist.env",
		},
		"unknown flag": {
			args:    []string{"--verbose"},
			wantErr: "unknown flag",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadConfig(tt.args)

			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
