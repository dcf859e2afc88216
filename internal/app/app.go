// Package app wires configuration, logging and metrics to the command-line
// modes: completion, one-shot evaluation, the REPL, verification and the
// HTTP server.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/agbru/largeint/internal/cli"
	"github.com/agbru/largeint/internal/config"
	apperrors "github.com/agbru/largeint/internal/errors"
	"github.com/agbru/largeint/internal/largeint"
	"github.com/agbru/largeint/internal/logging"
	"github.com/agbru/largeint/internal/metrics"
	"github.com/agbru/largeint/internal/oracle"
	"github.com/agbru/largeint/internal/ui"
)

// Application represents the largeint application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// In is the REPL input; nil means stdin.
	In        io.Reader
	Logger    logging.Logger
	Metrics   *metrics.Registry
	reference oracle.Reference
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger replaces the default zerolog logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithInput sets the reader the REPL reads from.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// WithMetrics sets the Prometheus registry shared by every mode.
func WithMetrics(r *metrics.Registry) AppOption {
	return func(a *Application) { a.Metrics = r }
}

// New creates a new Application instance by parsing command-line arguments.
// args includes the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "largeint"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	ref, ok := oracle.NewReference(cfg.Reference)
	if !ok {
		err := apperrors.NewConfigError("unknown reference %q (available: %v)", cfg.Reference, references())
		fmt.Fprintln(errWriter, "Error:", err)
		return nil, err
	}
	app.reference = ref
	app.Config = cfg

	if app.Logger == nil {
		app.Logger = logging.NewLogger(errWriter, "largeint")
	}
	if app.Metrics == nil {
		app.Metrics = metrics.New()
	}
	return app, nil
}

// references lists the names accepted by --reference in this build.
func references() []string {
	if oracle.GMPAvailable {
		return []string{"math/big", "gmp"}
	}
	return []string{"math/big"}
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	level := zerolog.InfoLevel
	if a.Config.Verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	ui.InitTheme(a.Config.NoColor || !isTerminal(out))

	largeint.SetLogger(a.Logger)
	largeint.SetOverflowHook(a.Metrics.ObserveOverflow)
	defer func() {
		largeint.SetLogger(nil)
		largeint.SetOverflowHook(nil)
	}()

	a.Logger.Debug("starting", logging.String("mode", a.Config.Mode()), logging.String("version", Version))

	switch a.Config.Mode() {
	case "server":
		return a.runServer(ctx, out)
	case "verify":
		return a.runVerify(ctx, out)
	case "eval":
		return a.runEval(ctx, out)
	default:
		return a.runREPL(ctx, out)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsTerminal(f)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, references()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
