package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/fatih/color"
	"github.com/google/uuid"

	"ep/interpreter-go/pkg/driver"
	"ep/interpreter-go/pkg/lexer"
)

const cliToolVersion = "ep 0.1.0-dev"

var errConfigNotFound = errors.New(driver.DefaultConfigName + " not found")

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	warningLabel = color.New(color.FgYellow, color.Bold)
)

type cliOptions struct {
	configPath string
	mode       string
	allowGaps  bool
	check      bool
	dumpTokens bool
	dumpAST    bool
	verbose    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, optind, err := getopt.Getopts(append([]string{"ep"}, args...), "c:m:gntavhV")
	if err != nil {
		printError(stderr, err)
		printUsage(stderr)
		return 1
	}

	var cli cliOptions
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			cli.configPath = opt.Value
		case 'm':
			cli.mode = opt.Value
		case 'g':
			cli.allowGaps = true
		case 'n':
			cli.check = true
		case 't':
			cli.dumpTokens = true
		case 'a':
			cli.dumpAST = true
		case 'v':
			cli.verbose = true
		case 'h':
			printUsage(stdout)
			return 0
		case 'V':
			fmt.Fprintln(stdout, cliToolVersion)
			return 0
		}
	}

	rest := args[optind-1:]
	if len(rest) == 0 {
		printUsage(stderr)
		return 1
	}
	if len(rest) > 1 {
		printError(stderr, fmt.Errorf("unexpected arguments: %s", strings.Join(rest[1:], " ")))
		return 1
	}
	path := rest[0]

	cfg, err := resolveConfig(cli, path)
	if err != nil {
		printError(stderr, err)
		return 1
	}
	configureColor(cfg.Output.Color)

	logger := newLogger(stderr, cfg.SlogLevel()).With("run", uuid.NewString())
	logger.Debug("starting", "path", path, "config", cfg.Path, "mode", cfg.Lexer.Mode, "allowGaps", cfg.Lexer.AllowGaps, "check", cfg.Check)

	src, err := driver.ReadSource(path)
	if err != nil {
		printError(stderr, err)
		return 1
	}

	runner := driver.NewRunner(cfg, stdout, logger)
	switch {
	case cli.dumpTokens:
		if cli.dumpAST {
			printWarning(stderr, "-a ignored when -t is given")
		}
		return dumpTokens(runner, src, stdout, stderr)
	case cli.dumpAST:
		return dumpAST(runner, src, stdout, stderr)
	}

	if err := runner.Run(src); err != nil {
		reportRunError(stderr, err)
		logger.Debug("run failed", "error", err)
		return 1
	}
	logger.Debug("finished")
	return 0
}

// resolveConfig layers the config file, then EP_* environment overrides, then
// command-line flags.
func resolveConfig(cli cliOptions, sourcePath string) (*driver.Config, error) {
	cfg := driver.DefaultConfig()
	configPath := cli.configPath
	if configPath == "" {
		found, err := findConfig(filepath.Dir(sourcePath))
		switch {
		case err == nil:
			configPath = found
		case errors.Is(err, errConfigNotFound):
		default:
			return nil, fmt.Errorf("failed to locate %s: %w", driver.DefaultConfigName, err)
		}
	}
	if configPath != "" {
		loaded, err := driver.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := driver.LoadEnvOverrides(cfg, driver.DefaultEnvFile, nil); err != nil {
		return nil, err
	}

	if cli.mode != "" {
		mode, err := lexer.ParseMode(cli.mode)
		if err != nil {
			return nil, err
		}
		cfg.Lexer.Mode = mode
	}
	if cli.allowGaps {
		cfg.Lexer.AllowGaps = true
	}
	if cli.check {
		cfg.Check = true
	}
	if cli.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// findConfig looks for ep.yml in start and each of its parents.
func findConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, driver.DefaultConfigName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", driver.DefaultConfigName, origin, errConfigNotFound)
		}
		dir = parent
	}
}

func dumpTokens(runner *driver.Runner, src string, stdout, stderr io.Writer) int {
	tokens, err := runner.Tokenize(src)
	if err != nil {
		reportRunError(stderr, err)
		return 1
	}
	for _, tok := range tokens {
		fmt.Fprintln(stdout, tok.String())
	}
	return 0
}

func dumpAST(runner *driver.Runner, src string, stdout, stderr io.Writer) int {
	program, err := runner.Parse(src)
	if err != nil {
		reportRunError(stderr, err)
		return 1
	}
	data, err := json.MarshalIndent(program, "", "  ")
	if err != nil {
		printError(stderr, fmt.Errorf("encode ast: %w", err))
		return 1
	}
	fmt.Fprintln(stdout, string(data))
	return 0
}

func reportRunError(w io.Writer, err error) {
	var checkErr *driver.CheckError
	if errors.As(err, &checkErr) {
		for _, d := range checkErr.Diagnostics {
			printError(w, errors.New(d.String()))
		}
		return
	}
	printError(w, err)
}

func configureColor(mode driver.ColorMode) {
	switch mode {
	case driver.ColorAlways:
		color.NoColor = false
	case driver.ColorNever:
		color.NoColor = true
	}
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func printError(w io.Writer, err error) {
	errorLabel.Fprint(w, "error:")
	fmt.Fprintf(w, " %v\n", err)
}

func printWarning(w io.Writer, msg string) {
	warningLabel.Fprint(w, "warning:")
	fmt.Fprintf(w, " %s\n", msg)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  ep [-c config.yml] [-m legacy|split] [-g] [-n] [-t] [-a] [-v] <file.ep>")
	fmt.Fprintln(w, "  ep -h")
	fmt.Fprintln(w, "  ep -V")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  -c path   load configuration from path (default: nearest ep.yml)")
	fmt.Fprintln(w, "  -m mode   lexical grammar: split (default) or legacy")
	fmt.Fprintln(w, "  -g        skip unrecognized characters instead of failing")
	fmt.Fprintln(w, "  -n        run the static checker before evaluating")
	fmt.Fprintln(w, "  -t        print tokens and exit")
	fmt.Fprintln(w, "  -a        print the syntax tree as JSON and exit")
	fmt.Fprintln(w, "  -v        debug logging")
	fmt.Fprintln(w, "  -h        show this help")
	fmt.Fprintln(w, "  -V        show version")
}
