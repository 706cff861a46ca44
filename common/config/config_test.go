package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig_LoadConfig(t *testing.T) {
	t.Run("config env", func(t *testing.T) {
		t.Setenv("METKA_INSTANCE_ID", "foo")
		t.Setenv("METKA_TAGGING_SEARCH_LIMIT", "50")
		cfg, err := LoadConfig()
		require.Nil(t, err)

		require.Equal(t, "foo", cfg.InstanceID)
		require.Equal(t, 50, cfg.Tagging.SearchLimit)
		require.Equal(t, ",", cfg.Tagging.Delimiter)
	})

	t.Run("config file", func(t *testing.T) {
		SetConfigFile("test.toml")
		t.Cleanup(func() { SetConfigFile("") })
		cfg, err := LoadConfig()
		require.Nil(t, err)

		require.Equal(t, "bar", cfg.InstanceID)
		require.Equal(t, "|", cfg.Tagging.Delimiter)
		require.Equal(t, 25, cfg.Tagging.SearchLimit)
	})

	t.Run("file and env", func(t *testing.T) {
		SetConfigFile("test.toml")
		t.Cleanup(func() { SetConfigFile("") })
		t.Setenv("METKA_INSTANCE_ID", "foobar")
		cfg, err := LoadConfig()
		require.Nil(t, err)

		require.Equal(t, "foobar", cfg.InstanceID)
		require.Equal(t, "|", cfg.Tagging.Delimiter)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.Nil(t, err)

		require.Equal(t, "pg", cfg.Database.Driver)
		require.Equal(t, 25, cfg.Tagging.SearchLimit)
	})
}
