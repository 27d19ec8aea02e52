package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"

	"github.com/mcncl/vjp/internal/parser"
)

// DefaultMaxDepth is the default limit on nested container levels
const DefaultMaxDepth = parser.DefaultMaxDepth

// EnvPrefix prefixes every environment override
const EnvPrefix = "VJP"

// Colour modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Log formats
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config represents the complete configuration for vjp
type Config struct {
	MaxDepth int           `yaml:"max_depth"`
	Parsing  ParsingConfig `yaml:"parsing"`
	Output   OutputConfig  `yaml:"output"`
	Dev      DevConfig     `yaml:"dev"`
}

// ParsingConfig controls what the parser accepts
type ParsingConfig struct {
	StrictNumbers bool `yaml:"strict_numbers"`
}

// OutputConfig controls how documents are written back
type OutputConfig struct {
	Pretty           bool   `yaml:"pretty"`
	CanonicalEscapes bool   `yaml:"canonical_escapes"`
	Color            string `yaml:"color"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug     bool   `yaml:"debug"`
	LogFormat string `yaml:"log_format"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		MaxDepth: DefaultMaxDepth,
		Output: OutputConfig{
			Color: ColorAuto,
		},
		Dev: DevConfig{
			LogFormat: LogFormatText,
		},
	}
}

// LoadConfig loads configuration from a YAML file. Keys missing from the
// file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfigFile searches for a config file in dir and its parents
func FindConfigFile(dir string) string {
	configNames := []string{".vjp.yml", ".vjp.yaml", "vjp.yml", "vjp.yaml"}

	currentDir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that every setting has an allowed value
func (c *Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("output.color must be one of %s, %s or %s, got %q", ColorAuto, ColorAlways, ColorNever, c.Output.Color)
	}
	switch c.Dev.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("dev.log_format must be %s or %s, got %q", LogFormatText, LogFormatJSON, c.Dev.LogFormat)
	}
	return nil
}

type envSetting struct {
	path string
	set func(c *Config, value string) error
}

func boolSetting(path string, field func(c *Config) *bool) envSetting {
	return envSetting{path: path, set: func(c *Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		*field(c) = b
		return nil
	}}
}

func stringSetting(path string, field func(c *Config) *string) envSetting {
	return envSetting{path: path, set: func(c *Config, value string) error {
		*field(c) = strings.ToLower(strings.TrimSpace(value))
		return nil
	}}
}

var envSettings = []envSetting{
	{path: "MaxDepth", set: func(c *Config, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		c.MaxDepth = n
		return nil
	}},
	boolSetting("Parsing.StrictNumbers", func(c *Config) *bool { return &c.Parsing.StrictNumbers }),
	boolSetting("Output.Pretty", func(c *Config) *bool { return &c.Output.Pretty }),
	boolSetting("Output.CanonicalEscapes", func(c *Config) *bool { return &c.Output.CanonicalEscapes }),
	stringSetting("Output.Color", func(c *Config) *string { return &c.Output.Color }),
	boolSetting("Dev.Debug", func(c *Config) *bool { return &c.Dev.Debug }),
	stringSetting("Dev.LogFormat", func(c *Config) *string { return &c.Dev.LogFormat }),
}

// EnvName returns the environment variable that overrides the Config field
// at path, e.g. "Output.CanonicalEscapes" becomes VJP_OUTPUT_CANONICAL_ESCAPES
func EnvName(path string) string {
	return EnvPrefix + "_" + strcase.ToScreamingSnake(path)
}

// EnvNames lists every environment variable ApplyEnv reads
func EnvNames() []string {
	names := make([]string, 0, len(envSettings))
	for _, s := range envSettings {
		names = append(names, EnvName(s.path))
	}
	return names
}

// ApplyEnv overrides settings from environment variables found by lookup,
// usually os.LookupEnv. The result is validated.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, s := range envSettings {
		name := EnvName(s.path)
		value, ok := lookup(name)
		if !ok {
			continue
		}
		if err := s.set(c, value); err != nil {
			return fmt.Errorf("invalid value %q for %s: %w", value, name, err)
		}
	}
	return c.Validate()
}

// Overrides holds settings given on the command line. Nil fields were not
// set and leave the config untouched.
type Overrides struct {
	MaxDepth         *int
	StrictNumbers    *bool
	Pretty           *bool
	CanonicalEscapes *bool
	Color            *string
	Debug            *bool
}

// MergeCLI applies command line overrides on top of c, which already holds
// defaults, the config file and the environment. The result is validated.
func (c *Config) MergeCLI(o Overrides) error {
	if o.MaxDepth != nil {
		c.MaxDepth = *o.MaxDepth
	}
	if o.StrictNumbers != nil {
		c.Parsing.StrictNumbers = *o.StrictNumbers
	}
	if o.Pretty != nil {
		c.Output.Pretty = *o.Pretty
	}
	if o.CanonicalEscapes != nil {
		c.Output.CanonicalEscapes = *o.CanonicalEscapes
	}
	if o.Color != nil {
		c.Output.Color = *o.Color
	}
	if o.Debug != nil {
		c.Dev.Debug = *o.Debug
	}
	return c.Validate()
}

// LoadConfigWithCLI builds the effective config: defaults, then the config
// file at configPath (if any), then the environment, then CLI overrides
func LoadConfigWithCLI(configPath string, lookup func(string) (string, bool), o Overrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.MergeCLI(o); err != nil {
		return nil, err
	}
	return cfg, nil
}
