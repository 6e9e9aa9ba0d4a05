package platform

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/aretw0/restorm/pkg/core"
)

// Config is the file/environment configuration used by the command line.
//
//	base_url: https://api.example.com/v1
//	format: json
//	resources:
//	  - "resources/**/*.yaml"
//	timeout: 10s
type Config struct {
	BaseURL    string        `mapstructure:"base_url"`
	Format     string        `mapstructure:"format"`
	Resources  []string      `mapstructure:"resources"`
	PathSuffix string        `mapstructure:"path_suffix"`
	UserAgent  string        `mapstructure:"user_agent"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Strict     bool          `mapstructure:"strict"`

	// Dir is the directory the configuration was found in. Relative resource patterns are
	// resolved against it.
	Dir string `mapstructure:"-"`
}

// LoadConfig reads restorm.yaml from the project root above startDir, or from file when
// given. Environment variables prefixed with RESTORM_ (e.g. RESTORM_BASE_URL) override it.
// A missing file is not an error.
func LoadConfig(startDir, file string) (*Config, error) {
	v := viper.New()

	v.SetDefault("base_url", "")
	v.SetDefault("format", string(core.FormatJSON))
	v.SetDefault("path_suffix", "")
	v.SetDefault("user_agent", "restorm")
	v.SetDefault("strict", false)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("resources", []string{"resources/**/*.yaml"})

	v.SetEnvPrefix("restorm")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	dir := startDir
	if file != "" {
		v.SetConfigFile(file)
		dir = filepath.Dir(file)
	} else {
		if root, err := FindRoot(startDir); err == nil {
			dir = root
		}
		v.SetConfigName("restorm")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found - use defaults and environment
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	cfg.Dir = abs

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	switch core.Format(c.Format) {
	case core.FormatJSON, core.FormatXML:
	default:
		return &core.UnsupportedFormatError{Format: core.Format(c.Format)}
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}

// ResourcePatterns returns the resource globs made absolute against Dir.
func (c *Config) ResourcePatterns() []string {
	out := make([]string, 0, len(c.Resources))
	for _, p := range c.Resources {
		if !filepath.IsAbs(p) {
			p = filepath.Join(c.Dir, p)
		}
		out = append(out, p)
	}
	return out
}
