package providers

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"vcheck/internal/structures"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
proxy: true
webServer:
  host: 127.0.0.1
  port: 8090
logger:
  level: debug
  mode: 0644
  dir: /tmp
checkin:
  dir: checkins
  shutdownGrace: 2s
  archiveAfterDays: 7
release:
  file: version.yaml
cache:
  enabled: true
  size: 4
rateLimit:
  enabled: true
  rps: 2.5
  burst: 10
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestNewConfigProvider_LoadsYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, testConfigYAML)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.True(t, conf.Proxy)
	assert.True(t, conf.Debug)
	assert.Equal(t, path, conf.Path)
	assert.Equal(t, 8090, conf.WebServer.Port)
	assert.Equal(t, "debug", conf.Logger.Level)
	assert.Equal(t, filepath.Join(dir, "checkins"), conf.Checkin.Dir)
	assert.Equal(t, filepath.Join(dir, "version.yaml"), conf.Release.File)
	assert.Equal(t, 2*time.Second, conf.Checkin.ShutdownGrace)
	assert.Equal(t, 7, conf.Checkin.ArchiveAfterDays)
	assert.Equal(t, defaultArchiveInterval, conf.Checkin.ArchiveInterval)
	assert.Equal(t, defaultCacheTTL, conf.Cache.TTL)
	assert.Equal(t, 2.5, conf.RateLimit.RPS)
	assert.Equal(t, 10, conf.RateLimit.Burst)
}

func TestNewConfigProvider_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, testConfigYAML)
	t.Setenv("VCHECK_LOG_LEVEL", "warn")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "warn", conf.Logger.Level)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}

func TestNewReleaseProvider(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "version.yaml")
	writeFile(t, path, "last_version: 1.2.3-rc1\nchangelog_link: https://example.com/changelog\n")

	release, err := NewReleaseProvider(&structures.Config{Release: structures.ReleaseConfig{File: path}})
	require.NoError(t, err)
	assert.Equal(t, "1.2.3-rc1", release.LastVersion)
	assert.Equal(t, "https://example.com/changelog", release.ChangelogLink)
}

func TestNewReleaseProvider_UnparseableVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "version.yaml")
	writeFile(t, path, "last_version: latest\nchangelog_link: https://example.com/changelog\n")

	_, err := NewReleaseProvider(&structures.Config{Release: structures.ReleaseConfig{File: path}})
	assert.Error(t, err)
}

func TestNewReleaseProvider_MissingFile(t *testing.T) {
	_, err := NewReleaseProvider(&structures.Config{Release: structures.ReleaseConfig{File: "/nonexistent/version.yaml"}})
	assert.Error(t, err)
}
