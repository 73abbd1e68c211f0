package driver

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"ep/interpreter-go/pkg/lexer"
)

// DefaultConfigName is the file the CLI looks for when no -c flag is given.
const DefaultConfigName = "ep.yml"

// Config represents the parsed contents of ep.yml.
type Config struct {
	Path     string
	Lexer    LexerConfig
	Check    bool
	LogLevel string
	Output   OutputConfig
}

type LexerConfig struct {
	Mode      lexer.Mode
	AllowGaps bool
}

type OutputConfig struct {
	Color ColorMode
}

// ColorMode controls colored diagnostics.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether the color mode is recognised.
func (m ColorMode) IsValid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Lexer:    LexerConfig{Mode: lexer.ModeSplit},
		LogLevel: "info",
		Output:   OutputConfig{Color: ColorAuto},
	}
}

// ValidationError aggregates configuration validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadConfig parses ep.yml from disk, returning a validated config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()
	return ParseConfig(file, absPath)
}

// ParseConfig decodes and validates config YAML. Unknown keys are rejected and
// an empty document yields the defaults.
func ParseConfig(r io.Reader, path string) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg, issues := raw.toConfig(path)
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return cfg, nil
}

// LexerOptions translates the lexer settings into lexer options.
func (c *Config) LexerOptions(logger *slog.Logger) []lexer.Option {
	return []lexer.Option{
		lexer.WithMode(c.Lexer.Mode),
		lexer.WithAllowGaps(c.Lexer.AllowGaps),
		lexer.WithLogger(logger),
	}
}

// SlogLevel maps LogLevel onto a slog level; unknown names fall back to info.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLogLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

func parseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelInfo, fmt.Errorf("unsupported log level %q", name)
	}
	return level, nil
}

type configFile struct {
	Lexer    lexerYAML  `yaml:"lexer"`
	Check    *bool      `yaml:"check"`
	LogLevel string     `yaml:"log_level"`
	Output   outputYAML `yaml:"output"`
}

type lexerYAML struct {
	Mode      string `yaml:"mode"`
	AllowGaps *bool  `yaml:"allow_gaps"`
}

type outputYAML struct {
	Color string `yaml:"color"`
}

func (raw configFile) toConfig(path string) (*Config, []string) {
	cfg := DefaultConfig()
	cfg.Path = path
	var issues []string

	if raw.Lexer.Mode != "" {
		mode, err := lexer.ParseMode(raw.Lexer.Mode)
		if err != nil {
			issues = append(issues, fmt.Sprintf("lexer.mode: %v", err))
		} else {
			cfg.Lexer.Mode = mode
		}
	}
	if raw.Lexer.AllowGaps != nil {
		cfg.Lexer.AllowGaps = *raw.Lexer.AllowGaps
	}
	if raw.Check != nil {
		cfg.Check = *raw.Check
	}
	if raw.LogLevel != "" {
		if _, err := parseLogLevel(raw.LogLevel); err != nil {
			issues = append(issues, fmt.Sprintf("log_level: %v", err))
		} else {
			cfg.LogLevel = strings.ToLower(strings.TrimSpace(raw.LogLevel))
		}
	}
	if raw.Output.Color != "" {
		color := ColorMode(strings.ToLower(strings.TrimSpace(raw.Output.Color)))
		if !color.IsValid() {
			issues = append(issues, fmt.Sprintf("output.color: unsupported value %q (want auto, always, or never)", raw.Output.Color))
		} else {
			cfg.Output.Color = color
		}
	}
	return cfg, issues
}
