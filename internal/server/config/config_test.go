package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddrHTTP)
	assert.Equal(t, 8*time.Hour, cfg.SessionValidityDuration)
	assert.Equal(t, 5*time.Minute, cfg.ConfigCacheTTL)
	assert.Equal(t, 4, cfg.DBMaxOpenConns)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.NotEmpty(t, cfg.S3Bucket)
}

func TestParseEnv_Overlay(t *testing.T) {
	t.Setenv("ENDPOINT_ADDR_HTTP", ":9090")
	t.Setenv("DATABASE_DSN", "postgres://env/db")
	t.Setenv("SESSION_VALIDITY_DURATION", "30m")
	t.Setenv("DB_MAX_OPEN_CONNS", "8")
	t.Setenv("S3_BUCKET", "env-bucket")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://env/db", cfg.DatabaseDSN)
	assert.Equal(t, 30*time.Minute, cfg.SessionValidityDuration)
	assert.Equal(t, 8, cfg.DBMaxOpenConns)
	assert.Equal(t, "env-bucket", cfg.S3Bucket)
}

func TestParseEnv_IgnoresInvalidValues(t *testing.T) {
	t.Setenv("SESSION_VALIDITY_DURATION", "not-a-duration")
	t.Setenv("DB_MAX_OPEN_CONNS", "-3")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, 8*time.Hour, cfg.SessionValidityDuration)
	assert.Equal(t, 4, cfg.DBMaxOpenConns)
}

func TestParseJson_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	payload := `{
		"endpoint_addr_http": ":7070",
		"database_dsn": "postgres://json/db",
		"secret_key": "json-secret",
		"session_validity_duration": "45m",
		"config_cache_ttl": "2m",
		"db_max_open_conns": 6,
		"s3_root_user": "ju",
		"s3_root_password": "jp",
		"s3_bucket": "json-bucket",
		"s3_region": "eu-west-1",
		"s3_base_endpoint": "http://minio:9000/"
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0600))

	origArgs := os.Args
	os.Args = []string{"test", "-c", path}
	defer func() { os.Args = origArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddrHTTP)
	assert.Equal(t, "postgres://json/db", cfg.DatabaseDSN)
	assert.Equal(t, "json-secret", cfg.SecretKey)
	assert.Equal(t, 45*time.Minute, cfg.SessionValidityDuration)
	assert.Equal(t, 2*time.Minute, cfg.ConfigCacheTTL)
	assert.Equal(t, 6, cfg.DBMaxOpenConns)
	assert.Equal(t, "json-bucket", cfg.S3Bucket)
}

func TestParseFlags_Overlay(t *testing.T) {
	origArgs := os.Args
	os.Args = []string{"test", "-a", ":6060", "-t", "120", "-m", "2", "-b", "flag-bucket"}
	defer func() { os.Args = origArgs }()

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":6060", cfg.EndpointAddrHTTP)
	assert.Equal(t, 2*time.Hour, cfg.SessionValidityDuration)
	assert.Equal(t, 2, cfg.DBMaxOpenConns)
	assert.Equal(t, "flag-bucket", cfg.S3Bucket)
}
