package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment variables that override file settings,
// e.g. DESKNOTIFY_BACKEND or DESKNOTIFY_LOG_LEVEL.
const EnvPrefix = "DESKNOTIFY_"

// ErrInvalidConfig indicates the configuration failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Default values.
const (
	DefaultBackend  = "auto"
	DefaultAppName  = AppName
	DefaultTimeout  = 10 * time.Second
	DefaultLogLevel = "info"
)

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is the logging level (debug, info, warn, error).
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	// JSON enables JSON-formatted logging.
	JSON bool `koanf:"json"`
	// File is an optional path to append log entries to.
	File string `koanf:"file"`
	// Journal sends log entries to the systemd journal when available.
	Journal bool `koanf:"journal"`
}

// Config represents the desknotify configuration.
type Config struct {
	// Backend is the notification backend, or "auto" for the platform default.
	Backend string `koanf:"backend" validate:"required,oneof=auto dbus beeep notify-send osascript toast"`
	// AppName identifies the sender to the notification server.
	AppName string `koanf:"app_name" validate:"required"`
	// Timeout bounds a single notification dispatch; 0 disables it.
	Timeout time.Duration `koanf:"timeout" validate:"gte=0,lte=5m"`
	// Log holds logging settings.
	Log LogConfig `koanf:"log"`

	// filePath is the path where this config was loaded from.
	filePath string
}

// Default returns a new Config with default values.
func Default() *Config {
	return &Config{
		Backend: DefaultBackend,
		AppName: DefaultAppName,
		Timeout: DefaultTimeout,
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		filePath: GetPaths().ConfigFile,
	}
}

func defaultValues() map[string]any {
	return map[string]any{
		"backend":     DefaultBackend,
		"app_name":    DefaultAppName,
		"timeout":     DefaultTimeout.String(),
		"log.level":   DefaultLogLevel,
		"log.json":    false,
		"log.file":    "",
		"log.journal": false,
	}
}

// Load loads the configuration from the default path.
func Load() (*Config, error) {
	return LoadFrom(GetPaths().ConfigFile)
}

// LoadFrom loads the configuration from a specific path.
// Priority: environment variables > config file > defaults.
// A missing file is not an error.
func LoadFrom(path string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range defaultValues() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply defaults: %w", err)
		}
	}

	if _, err := os.Stat(path); err == nil {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.filePath = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Log.File = expandHomePath(cfg.Log.File)
	return cfg, nil
}

// envKey converts environment variable names to config keys:
// DESKNOTIFY_APP_NAME -> app_name, DESKNOTIFY_LOG_LEVEL -> log.level.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if rest, ok := strings.CutPrefix(key, "log_"); ok {
		return "log." + rest
	}
	return key
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("koanf"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
}

// describe renders a field error using config key names.
func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// fileConfig is the on-disk YAML shape written by Save.
type fileConfig struct {
	Backend string        `yaml:"backend"`
	AppName string        `yaml:"app_name"`
	Timeout string        `yaml:"timeout"`
	Log     fileLogConfig `yaml:"log"`
}

type fileLogConfig struct {
	Level   string `yaml:"level"`
	JSON    bool   `yaml:"json"`
	File    string `yaml:"file,omitempty"`
	Journal bool   `yaml:"journal"`
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(fileConfig{
		Backend: c.Backend,
		AppName: c.AppName,
		Timeout: c.Timeout.String(),
		Log: fileLogConfig{
			Level:   c.Log.Level,
			JSON:    c.Log.JSON,
			File:    c.Log.File,
			Journal: c.Log.Journal,
		},
	})
}

// Save writes the configuration to its file path as YAML.
func (c *Config) Save() error {
	if c.filePath == "" {
		return errors.New("config file path not set")
	}

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(c.filePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// FilePath returns the path where this config was loaded from.
func (c *Config) FilePath() string {
	return c.filePath
}

// SetFilePath changes where Save writes the configuration.
func (c *Config) SetFilePath(path string) {
	c.filePath = path
}
