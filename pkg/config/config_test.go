package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ssargent/dtaus/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 0, config.Tolerance)
	assert.Equal(t, "ISO-8859-1", config.Encoding)
	assert.False(t, config.Verify)
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "production", config.Logging.Mode)
	assert.Empty(t, config.Metrics.Textfile)
	assert.NoError(t, config.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Run("load existing config", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "dtaus_config_test")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		configPath := filepath.Join(tmpDir, "config.yaml")
		expectedConfig := &Config{
			Tolerance: 5,
			Encoding:  "IBM850",
			Verify:    true,
			Logging: Logging{
				Level: "debug",
				Mode:  "development",
			},
			Metrics: Metrics{
				Textfile: "/var/lib/node_exporter/dtaus.prom",
			},
		}

		err = SaveConfig(expectedConfig, configPath)
		require.NoError(t, err)

		loadedConfig, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, expectedConfig, loadedConfig)

		tol, err := loadedConfig.CodecTolerance()
		require.NoError(t, err)
		assert.True(t, tol.Has(codec.LenientCurrencyFlag))
		assert.True(t, tol.Has(codec.TranslateLegacyCharacters))
	})

	t.Run("partial config keeps defaults", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "dtaus_config_test")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		configPath := filepath.Join(tmpDir, "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("tolerance: 2\n"), 0600))

		config, err := LoadConfig(configPath)
		require.NoError(t, err)
		assert.Equal(t, 2, config.Tolerance)
		assert.Equal(t, "ISO-8859-1", config.Encoding)
		assert.Equal(t, "info", config.Logging.Level)
	})

	t.Run("non-existent config", func(t *testing.T) {
		_, err := LoadConfig("/non/existent/config.yaml")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "config file does not exist")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "dtaus_config_test")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		configPath := filepath.Join(tmpDir, "config.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("tolerance: [unclosed"), 0600))

		_, err = LoadConfig(configPath)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config file")
	})

	t.Run("invalid values", func(t *testing.T) {
		tmpDir, err := os.MkdirTemp("", "dtaus_config_test")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		for _, body := range []string{"tolerance: 8\n", "encoding: klingon\n", "logging:\n  mode: loud\n"} {
			configPath := filepath.Join(tmpDir, "config.yaml")
			require.NoError(t, os.WriteFile(configPath, []byte(body), 0600))

			_, err = LoadConfig(configPath)
			assert.Error(t, err, strings.TrimSpace(body))
		}
	})
}

func TestSaveConfig(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "dtaus_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "nested", "dir", "config.yaml")
	require.NoError(t, SaveConfig(DefaultConfig(), configPath))

	info, err := os.Stat(configPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Equal(t, "ISO-8859-1", raw["encoding"])
	assert.Contains(t, raw, "logging")
}

func TestGetDefaultConfigPath(t *testing.T) {
	path := GetDefaultConfigPath()
	assert.True(t, strings.HasSuffix(path, filepath.Join("dtaus", "config.yaml")) || path == "./dtaus.yaml")
}

func TestConfigExists(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "dtaus_config_test")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	configPath := filepath.Join(tmpDir, "config.yaml")
	assert.False(t, ConfigExists(configPath))

	require.NoError(t, SaveConfig(DefaultConfig(), configPath))
	assert.True(t, ConfigExists(configPath))
}
