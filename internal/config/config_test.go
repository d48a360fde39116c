package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/kinship/internal/charset"
	"github.com/mvp-joe/kinship/internal/gedcom"
	"github.com/mvp-joe/kinship/internal/storage"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - Load() uses defaults when no config file exists
// - Load() loads from .kinship/config.yml and .kinship/config.yaml
// - Load() merges a partial config file with defaults
// - Load() falls back to the home directory config
// - Environment variables override config file values and defaults
// - Load() returns error for malformed YAML and invalid values
// - Validate() rejects unknown charsets, bad lookahead, bad glob patterns,
//   negative cache sizes, unknown log levels and formats
// - Validate() reports every invalid field and keeps sentinels reachable
// - DatabasePath() and ImportOptions() translate settings

// newTestLoader ignores the real home directory.
func newTestLoader(rootDir, homeDir string) Loader {
	return &loader{rootDir: rootDir, homeDir: homeDir}
}

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	cfgDir := filepath.Join(dir, DirName)
	require.NoError(t, os.MkdirAll(cfgDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, name), []byte(content), 0644))
}

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.Equal(t, "ANSEL", cfg.Import.DefaultCharset)
	assert.Equal(t, gedcom.DefaultLookahead, cfg.Import.Lookahead)
	assert.Empty(t, cfg.Import.IgnoreTags)
	assert.False(t, cfg.Import.SkipLineage)
	assert.Equal(t, "", cfg.Store.Path)
	assert.Equal(t, storage.DefaultCacheSize, cfg.Store.CacheSize)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)

	assert.NoError(t, Validate(cfg))
}

func TestLoad_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	cfg, err := newTestLoader(t.TempDir(), "").Load()

	require.NoError(t, err)
	expected := Default()
	assert.Equal(t, expected.Import.DefaultCharset, cfg.Import.DefaultCharset)
	assert.Equal(t, expected.Import.Lookahead, cfg.Import.Lookahead)
	assert.Empty(t, cfg.Import.IgnoreTags)
	assert.Equal(t, expected.Store, cfg.Store)
	assert.Equal(t, expected.Logging, cfg.Logging)
}

func TestLoad_LoadsFromConfigYml(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yml", `
import:
  default_charset: UTF-8
  lookahead: 8
  ignore_tags: ["_*", "REFN"]
  place_form: City, County, State, Country
  skip_lineage: true
store:
  path: /data/family.db
  cache_size: 500
logging:
  level: debug
  format: json
`)

	cfg, err := newTestLoader(dir, "").Load()
	require.NoError(t, err)

	assert.Equal(t, "UTF-8", cfg.Import.DefaultCharset)
	assert.Equal(t, 8, cfg.Import.Lookahead)
	assert.Equal(t, []string{"_*", "REFN"}, cfg.Import.IgnoreTags)
	assert.Equal(t, "City, County, State, Country", cfg.Import.PlaceForm)
	assert.True(t, cfg.Import.SkipLineage)
	assert.Equal(t, "/data/family.db", cfg.Store.Path)
	assert.Equal(t, 500, cfg.Store.CacheSize)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_LoadsFromConfigYaml(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yaml", `
logging:
  level: warn
`)

	cfg, err := newTestLoader(dir, "").Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_MergesConfigWithDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yml", `
store:
  path: tree.db
`)

	cfg, err := newTestLoader(dir, "").Load()
	require.NoError(t, err)

	assert.Equal(t, "tree.db", cfg.Store.Path)
	assert.Equal(t, storage.DefaultCacheSize, cfg.Store.CacheSize)
	assert.Equal(t, "ANSEL", cfg.Import.DefaultCharset)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_FallsBackToHomeConfig(t *testing.T) {
	root, home := t.TempDir(), t.TempDir()
	writeConfig(t, home, "config.yml", `
import:
  place_form: Parish, County
`)

	cfg, err := newTestLoader(root, home).Load()
	require.NoError(t, err)
	assert.Equal(t, "Parish, County", cfg.Import.PlaceForm)

	// A project config shadows the home config.
	writeConfig(t, root, "config.yml", `
import:
  place_form: City
`)
	cfg, err = newTestLoader(root, home).Load()
	require.NoError(t, err)
	assert.Equal(t, "City", cfg.Import.PlaceForm)
}

func TestLoad_EnvironmentOverridesConfigFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yml", `
store:
  path: from-file.db
logging:
  level: debug
`)
	t.Setenv("KINSHIP_STORE_PATH", "from-env.db")
	t.Setenv("KINSHIP_IMPORT_LOOKAHEAD", "12")

	cfg, err := newTestLoader(dir, "").Load()
	require.NoError(t, err)

	assert.Equal(t, "from-env.db", cfg.Store.Path)
	assert.Equal(t, 12, cfg.Import.Lookahead)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("KINSHIP_LOGGING_FORMAT", "json")
	t.Setenv("KINSHIP_IMPORT_DEFAULT_CHARSET", "ANSI")

	cfg, err := newTestLoader(t.TempDir(), "").Load()
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "ANSI", cfg.Import.DefaultCharset)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yml", "import:\n  lookahead: [unclosed\n")

	_, err := newTestLoader(dir, "").Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "config.yml", `
import:
  lookahead: 0
`)

	_, err := newTestLoader(dir, "").Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLookahead)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestValidate_RejectsInvalidFields(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"charset", func(c *Config) { c.Import.DefaultCharset = "EBCDIC" }, ErrInvalidCharset},
		{"lookahead", func(c *Config) { c.Import.Lookahead = -1 }, ErrInvalidLookahead},
		{"ignore pattern", func(c *Config) { c.Import.IgnoreTags = []string{"_[A"} }, ErrInvalidIgnorePattern},
		{"cache size", func(c *Config) { c.Store.CacheSize = -5 }, ErrInvalidCacheSize},
		{"log level", func(c *Config) { c.Logging.Level = "verbose" }, ErrInvalidLogLevel},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.ErrorIs(t, Validate(cfg), tt.want)
		})
	}
}

func TestValidate_AcceptsCharsetSpellings(t *testing.T) {
	for _, cs := range []string{"ansel", "UTF-8", "utf8", "UNICODE", "ASCII", "IBMPC"} {
		cfg := Default()
		cfg.Import.DefaultCharset = cs
		assert.NoError(t, Validate(cfg), cs)
	}
}

func TestValidate_ReportsMultipleErrors(t *testing.T) {
	cfg := Default()
	cfg.Import.Lookahead = 0
	cfg.Logging.Format = "xml"
	cfg.Store.CacheSize = -1

	err := Validate(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidLookahead)
	assert.ErrorIs(t, err, ErrInvalidLogFormat)
	assert.ErrorIs(t, err, ErrInvalidCacheSize)
	assert.Contains(t, err.Error(), "validation failed:")
}

func TestConfig_DatabasePath(t *testing.T) {
	cfg := Default()
	assert.Equal(t, filepath.Join("/work", DirName, "tree.db"), cfg.DatabasePath("/work"))

	cfg.Store.Path = "/data/tree.db"
	assert.Equal(t, "/data/tree.db", cfg.DatabasePath("/work"))
}

func TestConfig_ImportOptions(t *testing.T) {
	cfg := Default()
	cfg.Import.DefaultCharset = "utf-8"
	cfg.Import.IgnoreTags = []string{"_*"}
	cfg.Import.PlaceForm = "City, Country"
	cfg.Import.SkipLineage = true

	opts := cfg.ImportOptions("family.ged")
	assert.Equal(t, "family.ged", opts.Source)
	assert.Equal(t, charset.UTF8, opts.DefaultCharset)
	assert.Equal(t, gedcom.DefaultLookahead, opts.Lookahead)
	assert.Equal(t, []string{"_*"}, opts.IgnoreTags)
	assert.Equal(t, "City, Country", opts.PlaceForm)
	assert.True(t, opts.SkipLineage)
	assert.Nil(t, opts.Progress)
}
