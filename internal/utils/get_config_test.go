package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_YAMLThenEnvThenDefaults(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "config.yaml")
	envPath := filepath.Join(dir, ".env")

	require.NoError(t, os.WriteFile(yamlPath, []byte("DB_HOST: db.internal\nWEATHER_API_KEY: from-yaml\n"), 0o600))
	require.NoError(t, os.WriteFile(envPath, []byte("ADVISORY_API_KEY=from-dotenv\n"), 0o600))
	t.Setenv("WEATHER_API_KEY", "from-env")
	t.Setenv("ADVISORY_API_KEY", "")
	os.Unsetenv("ADVISORY_API_KEY")

	loadConfigFrom(yamlPath, envPath)

	assert.Equal(t, "db.internal", GetConfig("DB_HOST"))
	assert.Equal(t, "from-yaml", GetConfig("WEATHER_API_KEY"), "yaml wins over environment")
	assert.Equal(t, "from-dotenv", GetConfig("ADVISORY_API_KEY"))
	assert.Equal(t, "8080", GetConfig("APP_PORT"))
	assert.Equal(t, 30, GetConfigInt("REMOTE_TIMEOUT_SECONDS", 5))
	assert.Equal(t, "", GetConfig("UNKNOWN_KEY"))
}

func TestLoadConfig_MissingFilesFallBackToDefaults(t *testing.T) {
	dir := t.TempDir()

	loadConfigFrom(filepath.Join(dir, "missing.yaml"), filepath.Join(dir, "missing.env"))

	assert.Equal(t, "https://api.openweathermap.org/data/2.5", GetConfig("WEATHER_API_URL"))
	assert.Equal(t, 7, GetConfigInt("DB_PORT", 7))
}

func TestLoadConfig_DoesNotExportSecretsToEnvironment(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("JWT_SECRET: s3cret\nAWS_S3_BUCKET: agri-bucket\n"), 0o600))
	for _, key := range []string{"JWT_SECRET", "AWS_S3_BUCKET", "AWS_S3_REGION"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	loadConfigFrom(yamlPath, filepath.Join(dir, "missing.env"))

	assert.Equal(t, "s3cret", GetConfig("JWT_SECRET"))
	for _, key := range []string{"JWT_SECRET", "AWS_S3_BUCKET", "AWS_S3_REGION"} {
		_, ok := os.LookupEnv(key)
		assert.False(t, ok, key)
	}
}
