package config_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cities/pkg/config"
)

type defaultsConfig struct {
	Name    string `env:"CFG_TEST_DEFAULT_NAME" envDefault:"cities"`
	Workers int    `env:"CFG_TEST_DEFAULT_WORKERS" envDefault:"4"`
	Debug   bool   `env:"CFG_TEST_DEFAULT_DEBUG" envDefault:"false"`
}

type overrideConfig struct {
	Name string `env:"CFG_TEST_OVERRIDE_NAME" envDefault:"fallback"`
}

type cachedConfig struct {
	Name string `env:"CFG_TEST_CACHED_NAME" envDefault:"first"`
}

type requiredConfig struct {
	Value string `env:"CFG_TEST_REQUIRED_VALUE,required"`
}

type badTypeConfig struct {
	Port int `env:"CFG_TEST_BAD_PORT"`
}

type validatedConfig struct {
	Target string `env:"CFG_TEST_VALIDATED_TARGET"`
}

var errNoTarget = errors.New("target is required")

func (c validatedConfig) Validate() error {
	if c.Target == "" {
		return errNoTarget
	}
	return nil
}

type concurrentConfig struct {
	Name string `env:"CFG_TEST_CONCURRENT_NAME" envDefault:"shared"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg defaultsConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, "cities", cfg.Name)
	assert.Equal(t, 4, cfg.Workers)
	assert.False(t, cfg.Debug)
}

func TestLoad_EnvironmentOverridesDefault(t *testing.T) {
	t.Setenv("CFG_TEST_OVERRIDE_NAME", "explicit")

	var cfg overrideConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "explicit", cfg.Name)
}

func TestLoad_CachesPerType(t *testing.T) {
	var first cachedConfig
	require.NoError(t, config.Load(&first))
	assert.Equal(t, "first", first.Name)

	t.Setenv("CFG_TEST_CACHED_NAME", "second")

	var again cachedConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, "first", again.Name, "cached value must be returned")
}

func TestLoad_Errors(t *testing.T) {
	t.Run("nil pointer", func(t *testing.T) {
		var cfg *defaultsConfig
		assert.ErrorIs(t, config.Load(cfg), config.ErrNilPointer)
	})

	t.Run("missing required value", func(t *testing.T) {
		var cfg requiredConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	})

	t.Run("failure is not cached", func(t *testing.T) {
		t.Setenv("CFG_TEST_REQUIRED_VALUE", "present")
		var cfg requiredConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "present", cfg.Value)
	})

	t.Run("invalid type", func(t *testing.T) {
		t.Setenv("CFG_TEST_BAD_PORT", "eighty")
		var cfg badTypeConfig
		assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	})

	t.Run("validation failure", func(t *testing.T) {
		var cfg validatedConfig
		err := config.Load(&cfg)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
		assert.ErrorIs(t, err, errNoTarget)
	})
}

func TestMustLoad(t *testing.T) {
	t.Setenv("CFG_TEST_VALIDATED_TARGET", "mongodb://localhost")

	var cfg validatedConfig
	assert.NotPanics(t, func() { config.MustLoad(&cfg) })
	assert.Equal(t, "mongodb://localhost", cfg.Target)
}

func TestLoad_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var cfg concurrentConfig
			assert.NoError(t, config.Load(&cfg))
			assert.Equal(t, "shared", cfg.Name)
		}()
	}
	wg.Wait()
}
