// Package config implements TOML configuration for the glosso server and
// CLI. Load reads a file into a Config pre-filled with defaults and checks
// its validity, so callers always see a usable configuration or an error.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/robfig/cron/v3"
)

// ErrInvalid is returned when a configuration file fails validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Store drivers accepted by the store.driver setting.
const (
	DriverFile     = "file"
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
)

// Sanitize policies accepted by the editing.sanitize setting.
const (
	SanitizeOff    = "off"
	SanitizePlain  = "plain"
	SanitizeInline = "inline"
)

// Duration wraps time.Duration so TOML values can be written as "30s" or
// "24h" strings.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config is the parsed configuration for a glosso deployment.
type Config struct {
	Project ProjectConfig `toml:"project"`
	Server  ServerConfig  `toml:"server"`
	Store   StoreConfig   `toml:"store"`
	Draft   DraftConfig   `toml:"draft"`
	Export  ExportConfig  `toml:"export"`
	Backup  BackupConfig  `toml:"backup"`
	Logging LoggingConfig `toml:"logging"`
	Editing EditingConfig `toml:"editing"`
}

// ProjectConfig names the catalog the server edits.
type ProjectConfig struct {
	Name string `toml:"name"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr            string   `toml:"addr"`
	ReadTimeout     Duration `toml:"read_timeout"`
	WriteTimeout    Duration `toml:"write_timeout"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
}

// StoreConfig selects and configures the catalog store backend.
type StoreConfig struct {
	Driver   string          `toml:"driver"`
	File     FileStoreConfig `toml:"file"`
	Postgres PostgresConfig  `toml:"postgres"`
	S3       S3Config        `toml:"s3"`
}

// FileStoreConfig configures the local filesystem store.
type FileStoreConfig struct {
	Dir string `toml:"dir"`
}

// PostgresConfig configures the Postgres store.
type PostgresConfig struct {
	URL           string   `toml:"url"`
	MaxConns      int32    `toml:"max_conns"`
	RetryAttempts int      `toml:"retry_attempts"`
	RetryInterval Duration `toml:"retry_interval"`
}

// S3Config configures the S3 store.
type S3Config struct {
	Bucket    string `toml:"bucket"`
	Region    string `toml:"region"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Endpoint  string `toml:"endpoint"`
	Prefix    string `toml:"prefix"`
	PathStyle bool   `toml:"path_style"`
}

// DraftConfig controls working-state autosave. With an empty redis_url
// drafts live in an in-process cache and do not survive restarts.
type DraftConfig struct {
	Enabled  bool     `toml:"enabled"`
	TTL      Duration `toml:"ttl"`
	RedisURL string   `toml:"redis_url"`
}

// ExportConfig controls per-language file export, including the
// re-export that runs after each successful save.
type ExportConfig struct {
	OnSave bool   `toml:"on_save"`
	Dir    string `toml:"dir"`
	Format string `toml:"format"`
}

// BackupConfig schedules catalog document backups. An empty schedule
// disables them.
type BackupConfig struct {
	Schedule string `toml:"schedule"`
	Dir      string `toml:"dir"`
	Keep     int    `toml:"keep"`
}

// LoggingConfig controls log level and the optional Sentry fan-out.
type LoggingConfig struct {
	Level       string `toml:"level"`
	SentryDSN   string `toml:"sentry_dsn"`
	Environment string `toml:"environment"`
}

// SlogLevel maps the configured level name onto a slog.Level,
// defaulting to info.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// EditingConfig controls value sanitization and key normalization.
type EditingConfig struct {
	Sanitize      string `toml:"sanitize"`
	SnakeCaseKeys bool   `toml:"snake_case_keys"`
}

// new returns a Config with workable defaults for a local file-backed
// deployment.
func new() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     Duration(10 * time.Second),
			WriteTimeout:    Duration(30 * time.Second),
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Store: StoreConfig{
			Driver: DriverFile,
			File:   FileStoreConfig{Dir: "./data"},
			Postgres: PostgresConfig{
				MaxConns:      4,
				RetryAttempts: 3,
				RetryInterval: Duration(time.Second),
			},
		},
		Draft: DraftConfig{
			TTL: Duration(24 * time.Hour),
		},
		Export: ExportConfig{
			Dir:    "./locales",
			Format: "json",
		},
		Backup: BackupConfig{
			Dir:  "./backups",
			Keep: 10,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Editing: EditingConfig{
			Sanitize: SanitizeOff,
		},
	}
}

// valid checks the Config in its current state.
func (c *Config) valid() error {
	if c.Project.Name == "" {
		return errors.Join(ErrInvalid, errors.New("missing project.name"))
	}
	if c.Server.Addr == "" {
		return errors.Join(ErrInvalid, errors.New("missing server.addr"))
	}
	switch c.Store.Driver {
	case DriverMemory:
	case DriverFile:
		if c.Store.File.Dir == "" {
			return errors.Join(ErrInvalid, errors.New("missing store.file.dir"))
		}
	case DriverPostgres:
		if c.Store.Postgres.URL == "" {
			return errors.Join(ErrInvalid, errors.New("missing store.postgres.url"))
		}
	case DriverS3:
		if c.Store.S3.Bucket == "" {
			return errors.Join(ErrInvalid, errors.New("missing store.s3.bucket"))
		}
		if c.Store.S3.Region == "" {
			return errors.Join(ErrInvalid, errors.New("missing store.s3.region"))
		}
	default:
		return errors.Join(ErrInvalid, fmt.Errorf("unknown store.driver %q", c.Store.Driver))
	}
	switch c.Export.Format {
	case "json", "yaml", "flat":
	default:
		return errors.Join(ErrInvalid, fmt.Errorf("unknown export.format %q", c.Export.Format))
	}
	if c.Export.OnSave && c.Export.Dir == "" {
		return errors.Join(ErrInvalid, errors.New("export.on_save requires export.dir"))
	}
	if c.Backup.Schedule != "" {
		if _, err := cron.ParseStandard(c.Backup.Schedule); err != nil {
			return errors.Join(ErrInvalid, fmt.Errorf("bad backup.schedule: %w", err))
		}
		if c.Backup.Dir == "" {
			return errors.Join(ErrInvalid, errors.New("backup.schedule requires backup.dir"))
		}
	}
	if c.Backup.Keep < 0 {
		return errors.Join(ErrInvalid, errors.New("backup.keep must not be negative"))
	}
	if c.Draft.Enabled && c.Draft.TTL <= 0 {
		return errors.Join(ErrInvalid, errors.New("draft.ttl must be positive"))
	}
	switch c.Editing.Sanitize {
	case SanitizeOff, SanitizePlain, SanitizeInline:
	default:
		return errors.Join(ErrInvalid, fmt.Errorf("unknown editing.sanitize %q", c.Editing.Sanitize))
	}
	return nil
}

// Load reads a TOML file into a Config with defaults applied and
// validates it.
func Load(file string) (Config, error) {
	conf := new()
	if _, err := toml.DecodeFile(file, &conf); err != nil {
		return conf, fmt.Errorf("config: decode %s: %w", file, err)
	}
	if err := conf.valid(); err != nil {
		return conf, err
	}
	return conf, nil
}
