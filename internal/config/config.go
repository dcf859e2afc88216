// Package config parses and validates the largeint command-line
// configuration.
//
// Values are resolved with the following priority (highest first):
//  1. command-line flags
//  2. LARGEINT_* environment variables
//  3. the TOML file named by --config
//  4. adaptive defaults (see adaptive.go) and static defaults
package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/largeint/internal/errors"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "LARGEINT_"

// Default values.
const (
	DefaultIterations = 2000
	DefaultMaxBits    = 1 << 20
	DefaultTimeout    = 5 * time.Minute
	DefaultPort       = "8080"
	DefaultCacheSize  = 1024
	DefaultMaxExprLen = 4096
)

// Shells accepted by --completion.
var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	// Eval is a single expression to evaluate (-e/--eval or positional args).
	Eval string
	// REPL starts the interactive calculator.
	REPL bool
	// Verify runs the cross-check against math/big.
	Verify bool
	// Iterations is the number of random cases per operator in verify mode.
	Iterations int
	// Workers is the number of verification goroutines. Zero selects an
	// estimate based on the CPU count.
	Workers int
	// Seed makes verification runs reproducible. Zero derives it from the clock.
	Seed int64
	// Reference names the implementation verify mode checks against.
	Reference string
	// MaxBits caps the length of any intermediate value. Zero disables the cap.
	MaxBits int
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Server starts the HTTP API.
	Server bool
	// Port is the TCP port for the HTTP API.
	Port string
	// CacheSize is the number of evaluation results the server keeps.
	CacheSize int
	// MaxExprLen rejects longer expressions in the HTTP API.
	MaxExprLen int
	// Decimal prints results in base 10 as well as base 2.
	Decimal bool
	// Quiet prints bare results only.
	Quiet bool
	// Verbose enables debug logging.
	Verbose bool
	// NoColor disables ANSI colours.
	NoColor bool
	// Output is a file the eval result is also written to.
	Output string
	// Session is the file the REPL loads its variables from and saves them to.
	Session string
	// ConfigFile is the optional TOML configuration file.
	ConfigFile string
	// Completion selects a shell for completion script output.
	Completion string
}

// Mode names the operation the configuration selects.
func (c AppConfig) Mode() string {
	switch {
	case c.Completion != "":
		return "completion"
	case c.Server:
		return "server"
	case c.Verify:
		return "verify"
	case c.Eval != "":
		return "eval"
	default:
		return "repl"
	}
}

// Validate checks the configuration for invalid or conflicting values.
func (c AppConfig) Validate() error {
	if c.Iterations <= 0 {
		return apperrors.NewConfigError("iterations must be positive, got %d", c.Iterations)
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("workers must not be negative, got %d", c.Workers)
	}
	if c.MaxBits < 0 {
		return apperrors.NewConfigError("max-bits must not be negative, got %d", c.MaxBits)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.CacheSize <= 0 {
		return apperrors.NewConfigError("cache-size must be positive, got %d", c.CacheSize)
	}
	if c.MaxExprLen <= 0 {
		return apperrors.NewConfigError("max-expr-len must be positive, got %d", c.MaxExprLen)
	}
	if p, err := strconv.Atoi(c.Port); err != nil || p < 1 || p > 65535 {
		return apperrors.NewConfigError("invalid port %q", c.Port)
	}
	if c.Completion != "" && !contains(completionShells, c.Completion) {
		return apperrors.NewConfigError("unsupported shell %q (supported: %s)",
			c.Completion, strings.Join(completionShells, ", "))
	}

	modes := 0
	for _, on := range []bool{c.Eval != "", c.REPL, c.Verify, c.Server} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("--eval, --repl, --verify and --server are mutually exclusive")
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("--quiet and --verbose cannot be combined")
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ParseConfig parses args (without the program name) into an AppConfig.
// Usage and parse errors are written to errWriter. flag.ErrHelp is returned
// unchanged when -h or --help was requested.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	config := AppConfig{}
	fs.StringVar(&config.Eval, "eval", "", "Evaluate a single expression and exit.")
	fs.StringVar(&config.Eval, "e", "", "Shorthand for --eval.")
	fs.BoolVar(&config.REPL, "repl", false, "Start the interactive calculator (default when no other mode is set).")
	fs.BoolVar(&config.Verify, "verify", false, "Cross-check every operator against math/big on random operands.")
	fs.IntVar(&config.Iterations, "iterations", DefaultIterations, "Random cases per operator in --verify mode.")
	fs.IntVar(&config.Workers, "workers", 0, "Verification workers (0 = based on CPU count).")
	fs.Int64Var(&config.Seed, "seed", 0, "Random seed for --verify (0 = time based).")
	fs.StringVar(&config.Reference, "reference", "math/big", "Reference implementation for --verify (math/big, or gmp when built with -tags gmp).")
	fs.IntVar(&config.MaxBits, "max-bits", DefaultMaxBits, "Maximum length of any value in bits (0 = unlimited).")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum run time (e.g. 30s, 5m).")
	fs.BoolVar(&config.Server, "server", false, "Serve the HTTP API.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port for the HTTP API.")
	fs.IntVar(&config.CacheSize, "cache-size", DefaultCacheSize, "Number of cached evaluation results in server mode.")
	fs.IntVar(&config.MaxExprLen, "max-expr-len", DefaultMaxExprLen, "Maximum expression length accepted by the HTTP API.")
	fs.BoolVar(&config.Decimal, "decimal", false, "Also print results in decimal.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print bare results only.")
	fs.BoolVar(&config.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Enable debug logging.")
	fs.BoolVar(&config.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable coloured output.")
	fs.StringVar(&config.Output, "output", "", "Also write the --eval result to this file.")
	fs.StringVar(&config.Output, "o", "", "Shorthand for --output.")
	fs.StringVar(&config.Session, "session", "", "REPL session file to load at start and save on exit.")
	fs.StringVar(&config.ConfigFile, "config", "", "TOML configuration file.")
	fs.StringVar(&config.Completion, "completion", "", "Print a completion script for bash, zsh, fish or powershell.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if config.Eval == "" && fs.NArg() > 0 {
		config.Eval = strings.Join(fs.Args(), " ")
	}

	if config.ConfigFile == "" {
		config.ConfigFile = getEnvString("CONFIG", "")
	}
	if config.ConfigFile != "" {
		if err := applyFileConfig(&config, fs, config.ConfigFile); err != nil {
			fmt.Fprintln(errWriter, "Error:", err)
			return AppConfig{}, err
		}
	}
	applyEnvOverrides(&config, fs)
	config = ApplyAdaptiveDefaults(config)

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errWriter, "Error:", err)
		return AppConfig{}, err
	}
	return config, nil
}
