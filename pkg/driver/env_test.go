package driver

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ep/interpreter-go/pkg/lexer"
)

func lookupFrom(values map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(lookupFrom(map[string]string{
		EnvLexerMode: "legacy",
		EnvAllowGaps: "true",
		EnvCheck:     "1",
		EnvLogLevel:  "Warn",
	}))

	require.NoError(t, err)
	assert.Equal(t, lexer.ModeLegacy, cfg.Lexer.Mode)
	assert.True(t, cfg.Lexer.AllowGaps)
	assert.True(t, cfg.Check)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestApplyEnvIgnoresBlankValues(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Check = true
	require.NoError(t, cfg.ApplyEnv(lookupFrom(map[string]string{EnvCheck: "  ", EnvLexerMode: ""})))
	assert.True(t, cfg.Check)
	assert.Equal(t, lexer.ModeSplit, cfg.Lexer.Mode)
}

func TestApplyEnvInvalidValues(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ApplyEnv(lookupFrom(map[string]string{
		EnvLexerMode: "regex",
		EnvAllowGaps: "maybe",
		EnvCheck:     "sure",
		EnvLogLevel:  "loud",
	}))

	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Len(t, validation.Issues, 4)
	assert.Equal(t, lexer.ModeSplit, cfg.Lexer.Mode)
}

func TestLoadDotEnvMissingDefaultIsSkipped(t *testing.T) {
	t.Setenv(EnvPath, "")
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env"), nil))
}

func TestLoadDotEnvMissingExplicitPathFails(t *testing.T) {
	t.Setenv(EnvPath, filepath.Join(t.TempDir(), "nope.env"))
	err := LoadDotEnv(".env", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadEnvOverridesFromFile(t *testing.T) {
	const key = EnvAllowGaps
	if _, set := os.LookupEnv(key); set {
		t.Skipf("%s already set in the test environment", key)
	}
	t.Cleanup(func() { os.Unsetenv(key) })

	path := writeFile(t, "test.env", key+"=true\n")
	t.Setenv(EnvPath, path)

	cfg := DefaultConfig()
	require.NoError(t, LoadEnvOverrides(cfg, ".env", nil))
	assert.True(t, cfg.Lexer.AllowGaps)
}
