// The module is resposible for finding, parsing and merging the coverd user
// configuration with the default. Configuration locations should be different
// depending on the host OS.
//
// Linux/BSD configurations should be in $HOME/.journeo/config.json
// Windows configurations should be in %APPDATA%/journeo/config.json
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/afero"

	"github.com/journeo/coverd/src/helpers"
	"github.com/journeo/coverd/src/validation"
)

// ConfigName is the file name of the user configuration in the user path.
const ConfigName = "config.json"

// Config represents everything in config.json.
type Config struct {
	Listen    string `json:"listen" validate:"required,hostname_port"`
	LogLevel  string `json:"log_level" validate:"omitempty,oneof=debug info warn warning error disabled off"`
	LogFormat string `json:"log_format" validate:"omitempty,oneof=json console"`

	// UserPath is where the configuration and the database live. When
	// empty the OS specific project directory is used.
	UserPath       string   `json:"user_path"`
	SqliteDatabase string   `json:"sqlite_database" validate:"required"`
	CacheTTL       Duration `json:"cache_ttl" validate:"gte=0"`

	LookupLanguages []string `json:"lookup_languages" validate:"dive,required,max=16"`
	LookupTimeout   Duration `json:"lookup_timeout" validate:"gt=0"`
	LookupRate      float64  `json:"lookup_rate" validate:"gte=0"`
	LookupBurst     int      `json:"lookup_burst" validate:"gte=0"`
	UserAgent       string   `json:"user_agent" validate:"required"`

	Gzip               bool     `json:"gzip"`
	Metrics            bool     `json:"metrics"`
	CORSAllowedOrigins []string `json:"cors_allowed_origins"`
	JWTSecret          string   `json:"jwt_secret"`

	ReadTimeout    Duration `json:"read_timeout" validate:"gte=0"`
	WriteTimeout   Duration `json:"write_timeout" validate:"gte=0"`
	MaxHeadersSize int      `json:"max_header_bytes" validate:"gte=0"`
}

// Default returns the configuration used for everything missing from the
// user's config.json.
func Default() Config {
	return Config{
		Listen:             "localhost:9996",
		LogLevel:           "info",
		LogFormat:          "json",
		SqliteDatabase:     "coverd.db",
		CacheTTL:           Duration(7 * 24 * time.Hour),
		LookupLanguages:    []string{"fr", "en"},
		LookupTimeout:      Duration(5 * time.Second),
		LookupRate:         10,
		LookupBurst:        5,
		UserAgent:          "coverd/1.0 (https://github.com/journeo/coverd)",
		Gzip:               true,
		Metrics:            true,
		CORSAllowedOrigins: []string{"http://localhost:4200"},
		ReadTimeout:        Duration(15 * time.Second),
		WriteTimeout:       Duration(30 * time.Second),
		MaxHeadersSize:     1 << 20,
	}
}

// FindAndParse reads the configuration file at `path` on top of the default
// configuration. An empty `path` means the file in the user path. If the file
// does not exist it is created with the default configuration.
func (cfg *Config) FindAndParse(fsys afero.Fs, path string) error {
	*cfg = Default()

	if path == "" {
		userPath, err := cfg.UserConfigPath()
		if err != nil {
			return err
		}
		path = userPath
	}

	if !cfg.exists(fsys, path) {
		if err := cfg.writeDefault(fsys, path); err != nil {
			return fmt.Errorf("creating default config: %w", err)
		}
	}

	if err := cfg.parse(fsys, path); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	return cfg.Validate()
}

// parse decodes the JSON file into cfg. Keys missing from the file keep their
// current values.
func (cfg *Config) parse(fsys afero.Fs, filename string) error {
	data, err := afero.ReadFile(fsys, filename)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, cfg)
}

func (cfg *Config) exists(fsys afero.Fs, path string) bool {
	st, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return !st.IsDir()
}

func (cfg *Config) writeDefault(fsys afero.Fs, path string) error {
	data, err := json.MarshalIndent(Default(), "", "    ")
	if err != nil {
		return err
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	return afero.WriteFile(fsys, path, data, fs.FileMode(0o600))
}

// Validate checks that all values are usable.
func (cfg *Config) Validate() error {
	if err := validation.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Directory returns the directory for coverd's files.
func (cfg *Config) Directory() (string, error) {
	if cfg.UserPath == "" {
		return helpers.ProjectUserPath()
	}

	if !filepath.IsAbs(cfg.UserPath) {
		return "", fmt.Errorf("user path %s was invalid as it was not rooted", cfg.UserPath)
	}

	return cfg.UserPath, nil
}

// UserConfigPath returns the full path to the place where the user's
// configuration file should be.
func (cfg *Config) UserConfigPath() (string, error) {
	dir, err := cfg.Directory()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigName), nil
}

// DatabasePath returns the sqlite database file. Relative paths are relative to
// the user path.
func (cfg *Config) DatabasePath() (string, error) {
	if filepath.IsAbs(cfg.SqliteDatabase) {
		return cfg.SqliteDatabase, nil
	}

	dir, err := cfg.Directory()
	if err != nil {
		return "", err
	}
	return helpers.AbsolutePath(cfg.SqliteDatabase, dir), nil
}

// Duration is a time.Duration which is written as "5s" or "168h" in the
// configuration file. Plain numbers are read as seconds.
type Duration time.Duration

// Std returns d as time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var val any
	if err := json.Unmarshal(data, &val); err != nil {
		return err
	}

	switch v := val.(type) {
	case float64:
		*d = Duration(v * float64(time.Second))
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("bad duration `%s`: %w", v, err)
		}
		*d = Duration(parsed)
	default:
		return errors.New("duration must be a string or a number of seconds")
	}

	return nil
}
