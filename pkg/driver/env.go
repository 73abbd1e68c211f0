package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"ep/interpreter-go/pkg/lexer"
)

const (
	EnvPath      = "EP_ENV_PATH"
	EnvLexerMode = "EP_LEXER_MODE"
	EnvAllowGaps = "EP_ALLOW_GAPS"
	EnvCheck     = "EP_CHECK"
	EnvLogLevel  = "EP_LOG_LEVEL"

	DefaultEnvFile = ".env"
)

// LookupFunc has the shape of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadDotEnv loads variables from a .env file without overriding ones already
// set. The path comes from EP_ENV_PATH when present, otherwise defaultPath. A
// missing default file is not an error; a missing EP_ENV_PATH file is.
func LoadDotEnv(defaultPath string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	envPath, explicit := os.LookupEnv(EnvPath)
	if !explicit || envPath == "" {
		logger.Debug("EP_ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		envPath = defaultPath
		explicit = false
	}

	if err := godotenv.Load(envPath); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			logger.Debug("Skipping .env ...", "path", envPath)
			return nil
		}
		return fmt.Errorf("env: load %s: %w", envPath, err)
	}
	logger.Debug("loaded environment file", "path", envPath)
	return nil
}

// ApplyEnv overrides c with any EP_* variables lookup reports.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	var errs ValidationError

	if v, ok := lookup(EnvLexerMode); ok && strings.TrimSpace(v) != "" {
		mode, err := lexer.ParseMode(v)
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: %v", EnvLexerMode, err))
		} else {
			c.Lexer.Mode = mode
		}
	}
	if v, ok := lookup(EnvAllowGaps); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: invalid boolean %q", EnvAllowGaps, v))
		} else {
			c.Lexer.AllowGaps = b
		}
	}
	if v, ok := lookup(EnvCheck); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: invalid boolean %q", EnvCheck, v))
		} else {
			c.Check = b
		}
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		if _, err := parseLogLevel(v); err != nil {
			errs.Issues = append(errs.Issues, fmt.Sprintf("%s: %v", EnvLogLevel, err))
		} else {
			c.LogLevel = strings.ToLower(strings.TrimSpace(v))
		}
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// LoadEnvOverrides loads the .env file and then applies EP_* overrides from
// the process environment to cfg.
func LoadEnvOverrides(cfg *Config, defaultPath string, logger *slog.Logger) error {
	if err := LoadDotEnv(defaultPath, logger); err != nil {
		return err
	}
	return cfg.ApplyEnv(os.LookupEnv)
}
