package config_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/propcheck/pkg/config"
)

type defaultsConfig struct {
	Level   string `env:"TEST_CFG_LEVEL" envDefault:"info"`
	Retries int    `env:"TEST_CFG_RETRIES" envDefault:"3"`
	Debug   bool   `env:"TEST_CFG_DEBUG" envDefault:"true"`
}

type valuesConfig struct {
	Rules string   `env:"TEST_CFG_RULES"`
	Port  int      `env:"TEST_CFG_PORT"`
	Kinds []string `env:"TEST_CFG_KINDS" envSeparator:","`
}

type requiredConfig struct {
	URL string `env:"TEST_CFG_REQUIRED_URL,required"`
}

type fileConfig struct {
	Format string `env:"TEST_CFG_FILE_FORMAT"`
	Level  string `env:"TEST_CFG_FILE_LEVEL"`
}

func TestLoad_Defaults(t *testing.T) {
	config.ResetCache()

	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, 3, cfg.Retries)
	assert.True(t, cfg.Debug)
}

func TestLoad_FromEnvironment(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_CFG_RULES", "rules.yaml")
	t.Setenv("TEST_CFG_PORT", "6379")
	t.Setenv("TEST_CFG_KINDS", "set,list")

	var cfg valuesConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "rules.yaml", cfg.Rules)
	assert.Equal(t, 6379, cfg.Port)
	assert.Equal(t, []string{"set", "list"}, cfg.Kinds)
}

func TestLoad_Cached(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_CFG_RULES", "first.yaml")

	var first valuesConfig
	require.NoError(t, config.Load(&first))

	t.Setenv("TEST_CFG_RULES", "second.yaml")

	var second valuesConfig
	require.NoError(t, config.Load(&second))
	assert.Equal(t, "first.yaml", second.Rules)

	config.ResetCache()
	var third valuesConfig
	require.NoError(t, config.Load(&third))
	assert.Equal(t, "second.yaml", third.Rules)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing required value", func(t *testing.T) {
		config.ResetCache()
		os.Unsetenv("TEST_CFG_REQUIRED_URL")

		var cfg requiredConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("wrong type", func(t *testing.T) {
		config.ResetCache()
		t.Setenv("TEST_CFG_PORT", "not-a-port")

		var cfg valuesConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	})

	t.Run("nil pointer", func(t *testing.T) {
		var cfg *valuesConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("must load panics", func(t *testing.T) {
		config.ResetCache()
		os.Unsetenv("TEST_CFG_REQUIRED_URL")

		var cfg requiredConfig
		assert.Panics(t, func() { config.MustLoad(&cfg) })
	})
}

func TestLoad_Concurrent(t *testing.T) {
	config.ResetCache()
	t.Setenv("TEST_CFG_LEVEL", "debug")

	var wg sync.WaitGroup
	results := make([]defaultsConfig, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = config.Load(&results[i])
		}(i)
	}
	wg.Wait()

	for _, cfg := range results {
		assert.Equal(t, "debug", cfg.Level)
	}
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "propcheck.env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_CFG_FILE_FORMAT=json\nTEST_CFG_FILE_LEVEL=\"warn\"\n"), 0o600))

	// The file must not override variables that are already set.
	t.Setenv("TEST_CFG_FILE_LEVEL", "error")
	t.Cleanup(func() { os.Unsetenv("TEST_CFG_FILE_FORMAT") })

	require.NoError(t, config.LoadEnv(path))

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "error", cfg.Level)

	t.Run("missing file", func(t *testing.T) {
		err := config.LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
		assert.ErrorIs(t, err, config.ErrLoadingEnvFile)
		assert.Panics(t, func() { config.MustLoadEnv(filepath.Join(t.TempDir(), "missing.env")) })
	})

	t.Run("no paths", func(t *testing.T) {
		assert.NoError(t, config.LoadEnv())
	})
}
