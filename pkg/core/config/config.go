// ============================================================================
// lumen - Scripting Language Front-End
// ============================================================================
//
// Package:     config
// Description: Configuration for the lumen tools, loaded from TOML or YAML
//              with defaults and LUMEN_* environment overrides
// Author:      msto63
// Created:     2025-02-18
// License:     MIT
// ============================================================================

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	lerror "github.com/msto63/lumen/foundation/core/error"
	llog "github.com/msto63/lumen/foundation/core/log"
)

// Config holds the complete tool configuration
type Config struct {
	General  GeneralConfig  `toml:"general" yaml:"general"`
	Compiler CompilerConfig `toml:"compiler" yaml:"compiler"`
	Output   OutputConfig   `toml:"output" yaml:"output"`
	Watch    WatchConfig    `toml:"watch" yaml:"watch"`

	path string
}

// GeneralConfig holds general settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// CompilerConfig holds front-end settings
type CompilerConfig struct {
	// MaxInputLength limits source size in bytes; negative disables the limit
	MaxInputLength int  `toml:"max_input_length" yaml:"max_input_length"`
	KeepComments   bool `toml:"keep_comments" yaml:"keep_comments"`
}

// OutputConfig holds rendering settings for the parse command and the REPL
type OutputConfig struct {
	Format  string `toml:"format" yaml:"format"`
	NoColor bool   `toml:"no_color" yaml:"no_color"`
}

// WatchConfig holds settings for check --watch
type WatchConfig struct {
	Debounce   Duration `toml:"debounce" yaml:"debounce"`
	Extensions []string `toml:"extensions" yaml:"extensions"`
}

// OutputFormats lists the accepted values of Output.Format
var OutputFormats = []string{"tree", "sexpr", "json", "yaml"}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalYAML formats the duration as a string
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension,
// then applies defaults and environment overrides
func Load(path string) (*Config, error) {
	const op = "config.Load"
	path = os.ExpandEnv(path)

	if strings.TrimSpace(path) == "" {
		return nil, lerror.New("config path is empty").
			WithCode(lerror.CodeValidationFailed).
			WithOperation(op)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, lerror.Wrap(err, "config file not found").
				WithCode(lerror.CodeNotFound).
				WithOperation(op).
				WithDetail("path", path)
		}
		return nil, lerror.Wrap(err, "failed to read config").
			WithCode(lerror.CodeConfigError).
			WithOperation(op).
			WithDetail("path", path)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		_, err = toml.Decode(string(content), &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &cfg)
	default:
		return nil, lerror.New("unsupported config format "+ext).
			WithCode(lerror.CodeInvalidFormat).
			WithOperation(op).
			WithDetail("path", path)
	}
	if err != nil {
		return nil, lerror.Wrap(err, "failed to parse config").
			WithCode(lerror.CodeInvalidConfig).
			WithOperation(op).
			WithDetail("path", path)
	}

	cfg.path = path
	cfg.applyDefaults()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SearchPaths returns the locations LoadFromEnv tries, in order, when
// LUMEN_CONFIG is not set
func SearchPaths() []string {
	paths := []string{
		"./lumen.toml",
		"./configs/lumen.toml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "lumen", "config.toml"))
	}
	return paths
}

// LoadFromEnv loads the file named by LUMEN_CONFIG or the first existing
// file of SearchPaths. Without any file it returns the defaults with
// environment overrides applied.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv("LUMEN_CONFIG"); path != "" {
		return Load(path)
	}
	for _, p := range SearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the file the configuration was loaded from, if any
func (c *Config) Path() string {
	return c.path
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.Name == "" {
		c.General.Name = "lumen"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	if c.Compiler.MaxInputLength == 0 {
		c.Compiler.MaxInputLength = 1 << 20
	}

	if c.Output.Format == "" {
		c.Output.Format = "tree"
	}

	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 200 * time.Millisecond
	}
	if len(c.Watch.Extensions) == 0 {
		c.Watch.Extensions = []string{".lum"}
	}
}

// applyEnv overrides settings from LUMEN_* environment variables
func (c *Config) applyEnv() error {
	const op = "config.applyEnv"

	if v := os.Getenv("LUMEN_LOG_LEVEL"); v != "" {
		c.General.LogLevel = v
	}
	if v := os.Getenv("LUMEN_LOG_FORMAT"); v != "" {
		c.General.LogFormat = v
	}
	if v := os.Getenv("LUMEN_OUTPUT_FORMAT"); v != "" {
		c.Output.Format = v
	}

	if v := os.Getenv("LUMEN_MAX_INPUT_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return envError(op, "LUMEN_MAX_INPUT_LENGTH", v, err)
		}
		c.Compiler.MaxInputLength = n
	}
	if v := os.Getenv("LUMEN_KEEP_COMMENTS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError(op, "LUMEN_KEEP_COMMENTS", v, err)
		}
		c.Compiler.KeepComments = b
	}
	if v := os.Getenv("LUMEN_NO_COLOR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return envError(op, "LUMEN_NO_COLOR", v, err)
		}
		c.Output.NoColor = b
	}
	if v := os.Getenv("LUMEN_WATCH_DEBOUNCE"); v != "" {
		if err := c.Watch.Debounce.UnmarshalText([]byte(v)); err != nil {
			return envError(op, "LUMEN_WATCH_DEBOUNCE", v, err)
		}
	}
	return nil
}

func envError(op, name, value string, err error) error {
	return lerror.Wrap(err, "invalid value for "+name).
		WithCode(lerror.CodeEnvironmentError).
		WithOperation(op).
		WithDetail("variable", name).
		WithDetail("value", value)
}

// Validate checks that every setting holds an accepted value
func (c *Config) Validate() error {
	const op = "config.Validate"

	invalid := func(field string, value interface{}, message string) error {
		return lerror.New(field+": "+message).
			WithCode(lerror.CodeValidationFailed).
			WithOperation(op).
			WithDetail("field", field).
			WithDetail("value", value)
	}

	if _, err := llog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel, "must be one of "+strings.Join(levelNames(), ", "))
	}
	if _, err := llog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat, "unknown log format")
	}
	if !contains(OutputFormats, c.Output.Format) {
		return invalid("output.format", c.Output.Format, "must be one of "+strings.Join(OutputFormats, ", "))
	}
	if c.Watch.Debounce.Duration < 0 {
		return invalid("watch.debounce", c.Watch.Debounce.String(), "must not be negative")
	}
	for _, ext := range c.Watch.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return invalid("watch.extensions", ext, "extensions start with a dot")
		}
	}
	return nil
}

func levelNames() []string {
	levels := llog.AllLevels()
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.String()
	}
	return names
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
