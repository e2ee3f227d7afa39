package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type CheckinConfig struct {
	Dir              string        `yaml:"dir" validate:"required|unixPath"`
	ShutdownGrace    time.Duration `yaml:"shutdownGrace"`
	ArchiveAfterDays int           `yaml:"archiveAfterDays" validate:"min:0"`
	ArchiveInterval  time.Duration `yaml:"archiveInterval"`
}

type ReleaseConfig struct {
	File string `yaml:"file" validate:"required"`
}

type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Size    int           `yaml:"size"`
	TTL     time.Duration `yaml:"ttl"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	Proxy     bool            `yaml:"proxy"`
	WebServer Server          `yaml:"webServer"`
	Logger    LoggerConfig    `yaml:"logger"`
	Checkin   CheckinConfig   `yaml:"checkin"`
	Release   ReleaseConfig   `yaml:"release"`
	Cache     CacheConfig     `yaml:"cache"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
}

// Release describes the newest published version, loaded once at startup.
type Release struct {
	LastVersion   string `yaml:"last_version" mapstructure:"last_version" validate:"required"`
	ChangelogLink string `yaml:"changelog_link" mapstructure:"changelog_link" validate:"required"`
}
