package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intlcode.dev/pkg/intlcode/internal/adapter"
	"intlcode.dev/pkg/intlcode/internal/domain"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "intlcode", configBaseName)
	assert.Equal(t, "intlcode.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "exclude", excludeFlagName)
	assert.Equal(t, "parallel", generateParallelFlagName)
	assert.Equal(t, "generate.parallel", generateParallelConfigKey)
	assert.Equal(t, "paths.exclude", excludeConfigKey)
	assert.Equal(t, 1, defaultGenerateParallel)
	assert.Equal(t, "INTLCODE", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestConfigDefaults(t *testing.T) {
	assert.Equal(t, domain.DefaultSuffix, viper.GetString(generateSuffixConfigKey))
	assert.Equal(t, adapter.EncodingUTF8, viper.GetString(resourceEncodingKey))
	assert.False(t, viper.GetBool(adapter.KeyAddConstructorProperties))
	assert.False(t, viper.GetBool(adapter.KeySuppressConstructorProperties))
	assert.Empty(t, viper.GetStringSlice(adapter.KeyAccessorsPrefix))
	assert.Equal(t, defaultLogFilename, viper.GetString(logFilenameKey))
}

func TestBuildTimeout(t *testing.T) {
	t.Cleanup(func() { viper.Set(buildTimeoutConfigKey, int64(defaultBuildTimeout.Seconds())) })

	viper.Set(buildTimeoutConfigKey, 30)
	assert.Equal(t, 30*time.Second, buildTimeout())

	viper.Set(buildTimeoutConfigKey, 0)
	assert.Equal(t, defaultBuildTimeout, buildTimeout())
}

func TestReadConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		v := viper.New()
		v.SetConfigFile(filepath.Join(t.TempDir(), configFileName))

		require.NoError(t, readConfig(v))
	})

	t.Run("missing file in search path", func(t *testing.T) {
		v := viper.New()
		v.SetConfigName(configBaseName)
		v.AddConfigPath(t.TempDir())

		require.NoError(t, readConfig(v))
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), configFileName)
		require.NoError(t, os.WriteFile(path, []byte("generate:\n  suffix: _codes.go\n"), 0o644))

		v := viper.New()
		v.SetConfigFile(path)

		require.NoError(t, readConfig(v))
		assert.Equal(t, "_codes.go", v.GetString(generateSuffixConfigKey))
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), configFileName)
		require.NoError(t, os.WriteFile(path, []byte("generate: [\n"), 0o644))

		v := viper.New()
		v.SetConfigFile(path)

		err := readConfig(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), configFileName)
	})
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{value: "", want: slog.LevelInfo},
		{value: "debug", want: slog.LevelDebug},
		{value: " WARN ", want: slog.LevelWarn},
		{value: "warning", want: slog.LevelWarn},
		{value: "error", want: slog.LevelError},
		{value: "-4", want: slog.LevelDebug},
		{value: "loud", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelInfo))
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	configureLogger(filepath.Join(t.TempDir(), "intlcode.log"), true)

	require.NotNil(t, globalLogger)
	assert.Same(t, globalLogger, slog.Default())
	assert.True(t, globalLogger.Enabled(t.Context(), slog.LevelDebug))
}
