// Package config loads kinship settings.
//
// Settings come from three places, highest priority first:
//  1. Environment variables (KINSHIP_*, nested keys joined with "_",
//     e.g. KINSHIP_STORE_PATH)
//  2. .kinship/config.yml in the working directory, or ~/.kinship/config.yml
//  3. Built-in defaults
package config

import (
	"path/filepath"

	"github.com/mvp-joe/kinship/internal/gedcom"
	"github.com/mvp-joe/kinship/internal/storage"
)

// DirName is the directory holding the config file and the default database.
const DirName = ".kinship"

// Config is the complete kinship configuration.
type Config struct {
	Import  ImportConfig  `yaml:"import" mapstructure:"import"`
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// ImportConfig tunes the GEDCOM reader.
type ImportConfig struct {
	DefaultCharset string   `yaml:"default_charset" mapstructure:"default_charset"` // used when a file has no BOM and no HEAD.CHAR
	Lookahead      int      `yaml:"lookahead" mapstructure:"lookahead"`             // physical lines read ahead for CONC/CONT
	IgnoreTags     []string `yaml:"ignore_tags" mapstructure:"ignore_tags"`         // glob patterns, e.g. "_*"
	PlaceForm      string   `yaml:"place_form" mapstructure:"place_form"`           // e.g. "City, County, State, Country"
	SkipLineage    bool     `yaml:"skip_lineage" mapstructure:"skip_lineage"`
}

// StoreConfig locates the database.
type StoreConfig struct {
	Path      string `yaml:"path" mapstructure:"path"`             // empty means .kinship/tree.db under the root
	CacheSize int    `yaml:"cache_size" mapstructure:"cache_size"` // decoded objects kept in memory
}

// LoggingConfig configures log/slog output.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // text or json
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Import: ImportConfig{
			DefaultCharset: "ANSEL",
			Lookahead:      gedcom.DefaultLookahead,
		},
		Store: StoreConfig{
			CacheSize: storage.DefaultCacheSize,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DatabasePath returns the configured database path, resolving the
// default against rootDir.
func (c *Config) DatabasePath(rootDir string) string {
	if c.Store.Path != "" {
		return c.Store.Path
	}
	return filepath.Join(rootDir, DirName, "tree.db")
}
