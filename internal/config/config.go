package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/meigma/actpak/internal/paktype"
)

const (
	// AppName is used for the config directory and the environment prefix.
	AppName = "actpak"

	// ConfigFileName is the config file name without extension.
	// Any extension viper understands is accepted (yaml, toml, json).
	ConfigFileName = "actpak"

	// EnvPrefix prefixes every environment variable, e.g. ACTPAK_LOG_LEVEL.
	EnvPrefix = "ACTPAK"

	// MaxLogLevel is the most verbose log level.
	MaxLogLevel = 5
)

// Keys understood by Load.
const (
	KeyInput        = "input"
	KeyOutput       = "output"
	KeyFile         = "file"
	KeyStream       = "stream"
	KeyGroup        = "group"
	KeyLogPath      = "log.path"
	KeyLogLevel     = "log.level"
	KeyLogFrequency = "log.frequency"
)

var (
	// ErrNoInput is returned by Validate when no input directory is set.
	ErrNoInput = errors.New("config: no input directory")

	// ErrNoKind is returned by Validate when no container kind is selected.
	ErrNoKind = errors.New("config: no container kind selected")
)

// LogConfig controls diagnostic output.
type LogConfig struct {
	// Path redirects log output to a file. Empty logs to stderr.
	Path string `mapstructure:"path"`

	// Level is the verbosity from 0 (off) to 5.
	Level int `mapstructure:"level"`

	// Frequency logs only every n-th per-asset line. 0 logs every asset.
	Frequency int `mapstructure:"frequency"`
}

// Config holds the settings of one run.
type Config struct {
	Input  string    `mapstructure:"input"`
	Output string    `mapstructure:"output"`
	File   bool      `mapstructure:"file"`
	Stream bool      `mapstructure:"stream"`
	Group  bool      `mapstructure:"group"`
	Log    LogConfig `mapstructure:"log"`
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Level: MaxLogLevel},
	}
}

// Flags returns the pass flags selected by c.
func (c *Config) Flags() paktype.Flags {
	var f paktype.Flags
	if c.File {
		f |= paktype.FlagFile
	}
	if c.Stream {
		f |= paktype.FlagStream
	}
	if c.Group {
		f |= paktype.FlagGroupByType
	}
	return f
}

// Validate reports whether c describes a runnable extraction.
func (c *Config) Validate() error {
	if strings.TrimSpace(strings.ReplaceAll(c.Input, `"`, "")) == "" {
		return ErrNoInput
	}
	if c.Flags()&paktype.FlagAll == 0 {
		return ErrNoKind
	}
	return nil
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// ConfigFilePath is an explicit config file. It must exist when set.
	ConfigFilePath string

	// SearchPaths are searched, in order, for ConfigFileName when
	// ConfigFilePath is empty. Nil searches the working directory and ConfigDir.
	SearchPaths []string

	// Flags are bound over every other source. Only flags the user changed
	// take effect.
	Flags *pflag.FlagSet
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"input":         KeyInput,
	"output":        KeyOutput,
	"file":          KeyFile,
	"stream":        KeyStream,
	"group":         KeyGroup,
	"log-path":      KeyLogPath,
	"log-level":     KeyLogLevel,
	"log-frequency": KeyLogFrequency,
}

// Load resolves the configuration and returns it together with the path of
// the config file that was read, if any.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault(KeyInput, defaults.Input)
	v.SetDefault(KeyOutput, defaults.Output)
	v.SetDefault(KeyFile, defaults.File)
	v.SetDefault(KeyStream, defaults.Stream)
	v.SetDefault(KeyGroup, defaults.Group)
	v.SetDefault(KeyLogPath, defaults.Log.Path)
	v.SetDefault(KeyLogLevel, defaults.Log.Level)
	v.SetDefault(KeyLogFrequency, defaults.Log.Frequency)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath, err := readConfigFile(v, opts)
	if err != nil {
		return nil, "", err
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if fl := opts.Flags.Lookup(name); fl != nil {
				if err := v.BindPFlag(key, fl); err != nil {
					return nil, "", fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse configuration: %w", err)
	}
	cfg.Log.Level = min(max(cfg.Log.Level, 0), MaxLogLevel)
	cfg.Log.Frequency = max(cfg.Log.Frequency, 0)

	return &cfg, resolvedPath, nil
}

// readConfigFile loads the explicit or discovered config file into v.
// A missing file is only an error when it was named explicitly.
func readConfigFile(v *viper.Viper, opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		if _, err := os.Stat(opts.ConfigFilePath); err != nil {
			return "", fmt.Errorf("config file not found: %w", err)
		}
		v.SetConfigFile(opts.ConfigFilePath)
		if err := v.ReadInConfig(); err != nil {
			return "", fmt.Errorf("failed to read config file %s: %w", opts.ConfigFilePath, err)
		}
		return opts.ConfigFilePath, nil
	}

	paths := opts.SearchPaths
	if paths == nil {
		paths = []string{"."}
		if dir, err := ConfigDir(); err == nil {
			paths = append(paths, dir)
		}
	}
	v.SetConfigName(ConfigFileName)
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read config file: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// ConfigDir returns the per-user config directory, $XDG_CONFIG_HOME/actpak
// or its platform equivalent.
func ConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, AppName), nil
}
