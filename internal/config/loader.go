package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
	homeDir string
}

// NewLoader creates a loader that looks for .kinship/config.yml under
// rootDir, then under the user's home directory.
func NewLoader(rootDir string) Loader {
	home, _ := os.UserHomeDir()
	return &loader{rootDir: rootDir, homeDir: home}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (KINSHIP_*)
// 2. Config file (.kinship/config.yml or .kinship/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(l.rootDir, DirName))
	if l.homeDir != "" {
		v.AddConfigPath(filepath.Join(l.homeDir, DirName))
	}

	v.SetEnvPrefix("KINSHIP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindEnvVars(v)

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	v.BindEnv("import.default_charset")
	v.BindEnv("import.lookahead")
	v.BindEnv("import.ignore_tags")
	v.BindEnv("import.place_form")
	v.BindEnv("import.skip_lineage")

	v.BindEnv("store.path")
	v.BindEnv("store.cache_size")

	v.BindEnv("logging.level")
	v.BindEnv("logging.format")
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("import.default_charset", defaults.Import.DefaultCharset)
	v.SetDefault("import.lookahead", defaults.Import.Lookahead)
	v.SetDefault("import.ignore_tags", defaults.Import.IgnoreTags)
	v.SetDefault("import.place_form", defaults.Import.PlaceForm)
	v.SetDefault("import.skip_lineage", defaults.Import.SkipLineage)

	v.SetDefault("store.path", defaults.Store.Path)
	v.SetDefault("store.cache_size", defaults.Store.CacheSize)

	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
}

// LoadConfig loads configuration rooted at the current working directory.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
