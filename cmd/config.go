package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"intlcode.dev/pkg/intlcode/internal/adapter"
	"intlcode.dev/pkg/intlcode/internal/domain"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "intlcode"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	excludeFlagName          = "exclude"
	generateParallelFlagName = "parallel"
	verboseFlagName          = "verbose"
	logFileFlagName          = "log-file"
	reportFlagName           = "report"
	formatFlagName           = "format"

	generateParallelConfigKey = "generate.parallel"
	generateSuffixConfigKey   = "generate.suffix"
	buildTimeoutConfigKey     = "generate.build_timeout"
	resourceEncodingKey       = "resource.encoding"
	excludeConfigKey          = "paths.exclude"

	defaultGenerateParallel = 1
	defaultBuildTimeout     = time.Minute * 2

	envPrefix = "INTLCODE"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".intlcode.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

// configReadErr is logged once the logger is configured.
var configReadErr error

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(generateParallelConfigKey, defaultGenerateParallel)
	viper.SetDefault(generateSuffixConfigKey, domain.DefaultSuffix)
	viper.SetDefault(buildTimeoutConfigKey, int64(defaultBuildTimeout.Seconds()))
	viper.SetDefault(excludeConfigKey, []string{})
	viper.SetDefault(resourceEncodingKey, adapter.EncodingUTF8)

	// Per-class keys; scoped intlcode.yaml files override these.
	viper.SetDefault(adapter.KeyAddConstructorProperties, false)
	viper.SetDefault(adapter.KeySuppressConstructorProperties, false)
	viper.SetDefault(adapter.KeyAccessorsPrefix, []string{})

	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	configReadErr = readConfig(viper.GetViper())
}

// readConfig loads the config file of v. A missing file is not an error.
func readConfig(v *viper.Viper) error {
	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
}

// buildTimeout returns the per-package timeout for --verify builds.
func buildTimeout() time.Duration {
	seconds := viper.GetInt64(buildTimeoutConfigKey)
	if seconds <= 0 {
		return defaultBuildTimeout
	}

	return time.Duration(seconds) * time.Second
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Numeric slog levels are accepted too (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at the configured level; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
