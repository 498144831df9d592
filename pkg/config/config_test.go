package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stackcensus/pkg/errors"
)

func env(vars map[string]string) lookupFunc {
	return func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "dev", cfg.DeploymentPrefix)
	assert.True(t, cfg.UseCloudServices)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "us-east-1", cfg.S3.Region)
	assert.Equal(t, "collated.json", cfg.S3.CollatedFilename)
	assert.Equal(t, "dev-developer-analytics-audit-report", cfg.BucketName())
	assert.Equal(t, StoreS3, cfg.StoreBackend())
	assert.Equal(t, 7*24*time.Hour, cfg.Cache.TTL.Duration)
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(env(map[string]string{
		"DEPLOYMENT_PREFIX":             "prod",
		"USE_CLOUD_SERVICES":            "false",
		"JOB_LOGGING_LEVEL":             "debug",
		"BIGQUERY_CREDENTIALS_FILEPATH": "/secrets/bq.json",
		"GOOGLE_CLOUD_PROJECT":          "census-123",
		"AWS_S3_REGION":                 "eu-west-1",
		"AWS_S3_ACCESS_KEY_ID":          " AKIA ",
		"AWS_S3_COLLATED_FILENAME":      "manifests.json",
		"AWS_S3_USE_SSL":                "0",
		"REDIS_DB":                      "3",
		"CACHE_TTL":                     "90m",
		"PYPI_VALIDATION":               "OFF",
	}))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "prod", cfg.DeploymentPrefix)
	assert.False(t, cfg.UseCloudServices)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/secrets/bq.json", cfg.BigQuery.CredentialsFile)
	assert.Equal(t, "census-123", cfg.BigQuery.ProjectID)
	assert.Equal(t, "eu-west-1", cfg.S3.Region)
	assert.Equal(t, "AKIA", cfg.S3.AccessKey)
	assert.Equal(t, "manifests.json", cfg.S3.CollatedFilename)
	assert.False(t, cfg.S3.UseSSL)
	assert.Equal(t, 3, cfg.Cache.RedisDB)
	assert.Equal(t, 90*time.Minute, cfg.Cache.TTL.Duration)
	assert.Equal(t, ValidateOff, cfg.PyPI.Validation)
	assert.Equal(t, StoreLocal, cfg.StoreBackend())
	assert.Equal(t, "prod-developer-analytics-audit-report", cfg.BucketName())
}

func TestApplyEnvFirstNameWins(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.applyEnv(env(map[string]string{
		"BIGQUERY_CREDENTIALS_FILEPATH":  "",
		"GOOGLE_APPLICATION_CREDENTIALS": "/adc.json",
	})))
	assert.Equal(t, "/adc.json", cfg.BigQuery.CredentialsFile)
}

func TestApplyEnvInvalid(t *testing.T) {
	cfg := Default()
	err := cfg.applyEnv(env(map[string]string{
		"USE_CLOUD_SERVICES": "maybe",
		"REDIS_DB":           "one",
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
	assert.Contains(t, err.Error(), "USE_CLOUD_SERVICES")
	assert.Contains(t, err.Error(), "REDIS_DB")
}

func TestExplicitBucket(t *testing.T) {
	cfg := Default()
	cfg.S3.Bucket = "my-bucket"
	assert.Equal(t, "my-bucket", cfg.BucketName())

	cfg = Default()
	cfg.DeploymentPrefix = ""
	assert.Equal(t, DefaultBucket, cfg.BucketName())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"unknown store", func(c *Config) { c.Store.Backend = "gcs" }},
		{"mongo without uri", func(c *Config) { c.Store.Backend = StoreMongo }},
		{"unknown cache", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"redis without addr", func(c *Config) { c.Cache.Backend = CacheRedis }},
		{"static without file", func(c *Config) { c.PyPI.Validation = ValidateStatic }},
		{"unknown validation", func(c *Config) { c.PyPI.Validation = "maybe" }},
		{"empty filename", func(c *Config) { c.S3.CollatedFilename = "" }},
		{"traversal filename", func(c *Config) { c.S3.CollatedFilename = "../x.json" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadLayers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "census.toml")
	require.NoError(t, os.WriteFile(file, []byte(`
deployment_prefix = "stage"

[s3]
bucket = "from-file"
region = "eu-central-1"

[cache]
backend = "memory"
ttl = "1h"
`), 0o644))

	envFile := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("AWS_S3_REGION=ap-south-1\nCENSUS_TEST_ONLY=1\n"), 0o644))
	t.Setenv("DEPLOYMENT_PREFIX", "prod")
	t.Cleanup(func() { os.Unsetenv("AWS_S3_REGION"); os.Unsetenv("CENSUS_TEST_ONLY") })

	cfg, err := Load(Options{File: file, EnvFile: envFile})
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.DeploymentPrefix, "env beats file")
	assert.Equal(t, "from-file", cfg.BucketName())
	assert.Equal(t, "ap-south-1", cfg.S3.Region, "dotenv beats file")
	assert.Equal(t, CacheMemory, cfg.Cache.Backend)
	assert.Equal(t, time.Hour, cfg.Cache.TTL.Duration)
}

func TestLoadUnknownKey(t *testing.T) {
	file := filepath.Join(t.TempDir(), "census.toml")
	require.NoError(t, os.WriteFile(file, []byte("[s3]\nbukket = \"typo\"\n"), 0o644))

	_, err := Load(Options{File: file, EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}

func TestRedacted(t *testing.T) {
	cfg := Default()
	cfg.S3.SecretKey = "hunter2"
	cfg.Store.MongoURI = "mongodb://census:s3cret@db:27017/admin"

	r := cfg.Redacted()
	assert.Equal(t, "****", r.S3.SecretKey)
	assert.Equal(t, "mongodb://census:****@db:27017/admin", r.Store.MongoURI)
	assert.Equal(t, "hunter2", cfg.S3.SecretKey)
}
