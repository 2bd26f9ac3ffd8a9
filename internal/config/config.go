package config

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/viper"
)

// Configuration keys
const (
	KeyModule           = "module"
	KeyDoc              = "doc"
	KeyOutput           = "output"
	KeyFormats          = "formats"
	KeyExtended         = "extended"
	KeyCapabilityMethod = "capability_method"
	KeyExclude          = "exclude"
	KeyLogFile          = "log.file"
	KeyLogVerbose       = "log.verbose"
	KeyProgress         = "progress"
	KeyWatchDebounce    = "watch.debounce"
)

// EnvPrefix prefixes environment overrides, e.g. MAMLGEN_EXTENDED=true
const EnvPrefix = "MAMLGEN"

// Formats lists the supported output formats. maml is always written.
var Formats = []string{"maml", "json", "html", "xlsx", "docx"}

// Config represents the application configuration
type Config struct {
	Module           string      `mapstructure:"module"`            // Go command module (directory or .go file)
	Doc              string      `mapstructure:"doc"`               // Documentation-comment file
	Output           string      `mapstructure:"output"`            // MAML output file
	Formats          []string    `mapstructure:"formats"`           // Extra publishers
	Extended         bool        `mapstructure:"extended"`          // Emit parameters/inputTypes/returnValues
	CapabilityMethod string      `mapstructure:"capability_method"` // Method a command type must have
	Exclude          []string    `mapstructure:"exclude"`           // Command name patterns to drop
	Log              LogConfig   `mapstructure:"log"`
	Progress         bool        `mapstructure:"progress"`
	Watch            WatchConfig `mapstructure:"watch"`

	docDefaulted bool
}

// LogConfig holds logging settings
type LogConfig struct {
	File    string `mapstructure:"file"`
	Verbose bool   `mapstructure:"verbose"`
}

// WatchConfig holds watch mode settings
type WatchConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
}

// New creates a viper instance with defaults and environment overrides
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyModule, "")
	v.SetDefault(KeyDoc, "")
	v.SetDefault(KeyOutput, "")
	v.SetDefault(KeyFormats, []string{})
	v.SetDefault(KeyExtended, false)
	v.SetDefault(KeyCapabilityMethod, "ProcessRecord")
	v.SetDefault(KeyExclude, []string{})
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogVerbose, false)
	v.SetDefault(KeyProgress, true)
	v.SetDefault(KeyWatchDebounce, 500*time.Millisecond)
}

// Load reads the configuration into v and decodes it. An explicit configPath
// must exist; otherwise mamlgen.yaml in the working directory is used when
// present.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("mamlgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Formats = splitFormats(cfg.Formats)
	return &cfg, nil
}

// splitFormats accepts both list values and comma-joined entries
func splitFormats(in []string) []string {
	var out []string
	for _, f := range in {
		for _, part := range strings.Split(f, ",") {
			if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Resolve fills in the defaulted documentation and output paths
func (c *Config) Resolve() {
	if c.Doc == "" && c.Module != "" {
		c.Doc = DefaultDocPath(c.Module)
		c.docDefaulted = true
	}
	if c.Output == "" && c.Module != "" {
		c.Output = DefaultOutputPath(c.Module)
	}
}

// DocDefaulted reports whether Doc was derived from the module path
func (c *Config) DocDefaulted() bool {
	return c.docDefaulted
}

// DefaultDocPath replaces the module path extension with ".xml". A directory
// module named widgets maps to widgets/widgets.xml.
func DefaultDocPath(module string) string {
	return changeExtension(module, ".xml")
}

// DefaultOutputPath replaces the module path extension with ".dll-help.xml"
func DefaultOutputPath(module string) string {
	return changeExtension(module, ".dll-help.xml")
}

func changeExtension(module, ext string) string {
	module = filepath.Clean(module)
	if filepath.Ext(module) == ".go" {
		return strings.TrimSuffix(module, ".go") + ext
	}
	base := filepath.Base(module)
	if base == "." || base == string(filepath.Separator) {
		if abs, err := filepath.Abs(module); err == nil {
			base = filepath.Base(abs)
		}
	}
	return filepath.Join(module, base+ext)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Module) == "" {
		return fmt.Errorf("module path is required")
	}
	if !token.IsIdentifier(c.CapabilityMethod) {
		return fmt.Errorf("capability_method must be a Go identifier, got %q", c.CapabilityMethod)
	}
	for _, f := range c.Formats {
		if !isFormat(f) {
			return fmt.Errorf("unknown format %q (supported: %s)", f, strings.Join(Formats, ", "))
		}
	}
	for _, p := range c.Exclude {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce cannot be negative")
	}
	return nil
}

func isFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

// Excluded checks if a command name matches any exclude pattern
func (c *Config) Excluded(commandName string) bool {
	for _, pattern := range c.Exclude {
		if ok, err := doublestar.Match(pattern, commandName); err == nil && ok {
			return true
		}
	}
	return false
}

// Print writes the resolved configuration to w
func (c *Config) Print(w io.Writer) {
	fmt.Fprintln(w, "=== mamlgen configuration ===")
	fmt.Fprintf(w, "Module:            %s\n", c.Module)
	fmt.Fprintf(w, "Doc file:          %s\n", c.Doc)
	fmt.Fprintf(w, "Output:            %s\n", c.Output)
	fmt.Fprintf(w, "Formats:           %v\n", c.Formats)
	fmt.Fprintf(w, "Extended:          %v\n", c.Extended)
	fmt.Fprintf(w, "Capability method: %s\n", c.CapabilityMethod)
	fmt.Fprintf(w, "Exclude:           %v\n", c.Exclude)
	fmt.Fprintln(w, "=============================")
}
