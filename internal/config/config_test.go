package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromYAMLWithExpansion(t *testing.T) {
	t.Setenv("TEST_MONGO_HOST", "db.internal")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("RATE_LIMIT_MAX", "")
	t.Setenv("MONGODB_USE_TRANSACTIONS", "")
	path := writeConfig(t, `
mongo:
  uri: mongodb://${TEST_MONGO_HOST}:27017
  database: careers
jwt:
  secret: s3cret
  ttl: 2h
rate_limit:
  max: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db.internal:27017", cfg.Mongo.URI)
	assert.Equal(t, "careers", cfg.Mongo.Database)
	assert.Equal(t, 2*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 3, cfg.RateLimit.Max)
	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.True(t, cfg.Mongo.UseTransactions)
}

func TestEnvironmentOverridesYAML(t *testing.T) {
	path := writeConfig(t, `
mongo:
  uri: mongodb://from-file
jwt:
  secret: file-secret
`)
	t.Setenv("MONGODB_URI", "mongodb://from-env")
	t.Setenv("MONGODB_USE_TRANSACTIONS", "false")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mongodb://from-env", cfg.Mongo.URI)
	assert.False(t, cfg.Mongo.UseTransactions)
	assert.Equal(t, "9090", cfg.HTTP.Port)
	assert.Equal(t, "file-secret", cfg.JWT.Secret)

	mc := cfg.MongoConfig()
	assert.Equal(t, "mongodb://from-env", mc.URI)
	assert.False(t, mc.UseTransactions)
}

func TestLoadRequiresMongoAndSecret(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("JWT_SECRET", "")
	path := writeConfig(t, "log:\n  level: debug\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo.uri is required")
	assert.Contains(t, err.Error(), "jwt.secret is required")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestExpandEnvVarsLeavesUnsetVariables(t *testing.T) {
	t.Setenv("TEST_SET_VAR", "value")

	assert.Equal(t, "value and ${TEST_UNSET_VAR}", expandEnvVars("${TEST_SET_VAR} and ${TEST_UNSET_VAR}"))
}

func TestEnvHelpersKeepCurrentOnBadInput(t *testing.T) {
	t.Setenv("TEST_INT", "twelve")
	t.Setenv("TEST_DURATION", "5s")
	t.Setenv("TEST_BOOL", "yes")

	assert.Equal(t, 7, envInt("TEST_INT", 7))
	assert.Equal(t, 5*time.Second, envDuration("TEST_DURATION", time.Minute))
	assert.True(t, envBool("TEST_BOOL", true))
	assert.Equal(t, "fallback", envString("TEST_UNSET_STRING", "fallback"))
}
