package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mvp-joe/kinship/internal/gedcom"
)

var (
	// ErrInvalidCharset indicates an unsupported default character set
	ErrInvalidCharset = errors.New("invalid default charset")

	// ErrInvalidLookahead indicates a non-positive lexer lookahead
	ErrInvalidLookahead = errors.New("invalid lookahead")

	// ErrInvalidIgnorePattern indicates an ignore tag pattern that does not compile
	ErrInvalidIgnorePattern = errors.New("invalid ignore tag pattern")

	// ErrInvalidCacheSize indicates a negative object cache size
	ErrInvalidCacheSize = errors.New("invalid cache size")

	// ErrInvalidLogLevel indicates an unknown log level
	ErrInvalidLogLevel = errors.New("invalid log level")

	// ErrInvalidLogFormat indicates an unknown log format
	ErrInvalidLogFormat = errors.New("invalid log format")
)

var knownCharsets = map[string]bool{
	"ANSEL": true, "UTF-8": true, "UTF8": true, "UNICODE": true,
	"UTF-16": true, "UTF-16LE": true, "UTF-16BE": true,
	"ASCII": true, "ANSI": true, "IBMPC": true, "CP1252": true, "WINDOWS-1252": true,
}

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateImport(&cfg.Import); err != nil {
		errs = append(errs, err)
	}
	if err := validateStore(&cfg.Store); err != nil {
		errs = append(errs, err)
	}
	if err := validateLogging(&cfg.Logging); err != nil {
		errs = append(errs, err)
	}

	return joinErrors(errs)
}

func validateImport(cfg *ImportConfig) error {
	var errs []error

	if !knownCharsets[strings.ToUpper(strings.TrimSpace(cfg.DefaultCharset))] {
		errs = append(errs, fmt.Errorf("%w: got '%s'", ErrInvalidCharset, cfg.DefaultCharset))
	}

	if cfg.Lookahead <= 0 {
		errs = append(errs, fmt.Errorf("%w: lookahead must be positive, got %d", ErrInvalidLookahead, cfg.Lookahead))
	}

	for _, pattern := range cfg.IgnoreTags {
		if _, err := gedcom.NewMatcher(pattern); err != nil {
			errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidIgnorePattern, pattern))
		}
	}

	return joinErrors(errs)
}

func validateStore(cfg *StoreConfig) error {
	// Zero means the store default.
	if cfg.CacheSize < 0 {
		return fmt.Errorf("%w: cache_size cannot be negative, got %d", ErrInvalidCacheSize, cfg.CacheSize)
	}
	return nil
}

func validateLogging(cfg *LoggingConfig) error {
	var errs []error

	switch strings.ToLower(cfg.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("%w: must be debug, info, warn or error, got '%s'", ErrInvalidLogLevel, cfg.Level))
	}

	switch strings.ToLower(cfg.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: must be 'text' or 'json', got '%s'", ErrInvalidLogFormat, cfg.Format))
	}

	return joinErrors(errs)
}

// joinErrors combines multiple errors into a single error with clear formatting.
// The sentinels stay reachable through errors.Is.
func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return &validationError{errs: errs, msg: "validation failed:\n  - " + strings.Join(msgs, "\n  - ")}
}

type validationError struct {
	errs []error
	msg  string
}

func (e *validationError) Error() string   { return e.msg }
func (e *validationError) Unwrap() []error { return e.errs }
