package providers

import (
	"fmt"
	"github.com/spf13/viper"
	"path/filepath"
	"strings"
	"time"
	"vcheck/internal/models"
	"vcheck/internal/structures"
)

const (
	defaultShutdownGrace   = 5 * time.Second
	defaultArchiveInterval = time.Hour
	defaultCacheTTL        = time.Hour
)

func NewConfigProvider(flags *structures.CliFlags) (*structures.Config, error) {
	var conf structures.Config

	v := viper.New()
	filename := filepath.Base(flags.ConfigPath)
	v.AddConfigPath(filepath.Dir(flags.ConfigPath))
	v.SetConfigName(strings.TrimSuffix(filename, filepath.Ext(filename)))
	v.SetConfigType("yaml")

	v.SetDefault("checkin.shutdownGrace", defaultShutdownGrace)
	v.SetDefault("checkin.archiveInterval", defaultArchiveInterval)
	v.SetDefault("cache.ttl", defaultCacheTTL)
	v.SetDefault("release.file", "version.yaml")

	v.BindEnv("logger.level", "VCHECK_LOG_LEVEL")
	v.BindEnv("checkin.dir", "VCHECK_CHECKIN_DIR")
	v.BindEnv("proxy", "VCHECK_PROXY")
	v.BindEnv("cache.enabled", "VCHECK_CACHE_ENABLED")

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}

	err = v.Unmarshal(&conf)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}

	// Relative paths in the config are resolved against the config file location.
	base := filepath.Dir(flags.ConfigPath)
	conf.Checkin.Dir = resolvePath(base, conf.Checkin.Dir)
	conf.Release.File = resolvePath(base, conf.Release.File)

	cnfValidator := NewCnfValidator(&conf)
	err = cnfValidator.Validate()
	if err != nil {
		return nil, err
	}

	conf.AppName = "VersionCheckDaemon"
	conf.Path = flags.ConfigPath
	conf.Debug = flags.DebugMode

	return &conf, nil
}

// NewReleaseProvider reads the release description once. The last version
// must be parseable, otherwise every caller would be told to update.
func NewReleaseProvider(conf *structures.Config) (*structures.Release, error) {
	var release structures.Release

	v := viper.New()
	v.SetConfigFile(conf.Release.File)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("unable to read release file: %w", err)
	}
	if err := v.Unmarshal(&release); err != nil {
		return nil, fmt.Errorf("unable to decode release file: %w", err)
	}
	if err := NewCnfValidator(&release).Validate(); err != nil {
		return nil, err
	}
	if models.ParseVersion(release.LastVersion).IsEmpty() {
		return nil, fmt.Errorf("release file: last_version %q is not a MAJOR.MINOR.PATCH version", release.LastVersion)
	}
	return &release, nil
}

func resolvePath(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
