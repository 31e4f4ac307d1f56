package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Port      int      `env:"TEST_CFG_PORT" envDefault:"8080"`
	StoreName string   `env:"TEST_CFG_STORE_NAME" envDefault:"Illusion Store"`
	Brokers   []string `env:"TEST_CFG_BROKERS" envDefault:"localhost:9092" envSeparator:","`
	Enabled   bool     `env:"TEST_CFG_ENABLED" envDefault:"false"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg testConfig
	err := Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "Illusion Store", cfg.StoreName)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	assert.False(t, cfg.Enabled)
}

func TestLoad_FromEnvVars(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "9090")
	t.Setenv("TEST_CFG_STORE_NAME", "Pop-up")
	t.Setenv("TEST_CFG_BROKERS", "k1:9092,k2:9092")
	t.Setenv("TEST_CFG_ENABLED", "true")

	var cfg testConfig
	err := Load(&cfg)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "Pop-up", cfg.StoreName)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Brokers)
	assert.True(t, cfg.Enabled)
}

type requiredConfig struct {
	PublicKey string `env:"TEST_CFG_PUBLIC_KEY,required"`
}

func TestLoad_RequiredFieldMissing(t *testing.T) {
	var cfg requiredConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_InvalidType(t *testing.T) {
	t.Setenv("TEST_CFG_PORT", "not-a-number")

	var cfg testConfig
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadDotEnv_MissingFileIsSkipped(t *testing.T) {
	err := LoadDotEnv(filepath.Join(t.TempDir(), "absent.env"))
	assert.NoError(t, err)
}

func TestLoadDotEnv_DoesNotOverrideEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_CFG_DOTENV_A=from-file\nTEST_CFG_DOTENV_B=from-file\n"), 0o600))

	t.Setenv("TEST_CFG_DOTENV_A", "from-env")
	t.Cleanup(func() { os.Unsetenv("TEST_CFG_DOTENV_B") })

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "from-env", os.Getenv("TEST_CFG_DOTENV_A"))
	assert.Equal(t, "from-file", os.Getenv("TEST_CFG_DOTENV_B"))
}
