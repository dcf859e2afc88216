package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/agbru/largeint/internal/cli"
	apperrors "github.com/agbru/largeint/internal/errors"
	"github.com/agbru/largeint/internal/expr"
	"github.com/agbru/largeint/internal/logging"
	"github.com/agbru/largeint/internal/oracle"
	"github.com/agbru/largeint/internal/server"
	"github.com/agbru/largeint/internal/ui"
)

// lifecycle derives a context cancelled by SIGINT/SIGTERM and, when timeout
// is positive, by the deadline.
func lifecycle(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	cancelTimeout := context.CancelFunc(func() {})
	if timeout > 0 {
		ctx, cancelTimeout = context.WithTimeout(ctx, timeout)
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// newEnv builds the evaluation environment, loading the session file when it
// exists.
func (a *Application) newEnv() (*expr.Env, error) {
	opts := []expr.Option{
		expr.WithMaxBits(a.Config.MaxBits),
		expr.WithObserver(a.Metrics.ObserveOp),
	}
	if a.Config.Session == "" {
		return expr.NewEnv(opts...), nil
	}
	env, err := expr.LoadEnv(a.Config.Session, opts...)
	if errors.Is(err, fs.ErrNotExist) {
		a.Logger.Debug("session file not found, starting empty", logging.String("path", a.Config.Session))
		return expr.NewEnv(opts...), nil
	}
	return env, err
}

// runEval evaluates the --eval expression and prints the result.
func (a *Application) runEval(ctx context.Context, out io.Writer) int {
	ctx, cancel := lifecycle(ctx, a.Config.Timeout)
	defer cancel()

	env, err := a.newEnv()
	if err != nil {
		return cli.HandleError(err, 0, a.ErrWriter)
	}

	start := time.Now()
	res, err := env.Eval(ctx, a.Config.Eval)
	if err != nil {
		return cli.HandleError(err, time.Since(start), a.ErrWriter)
	}

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.Output,
		Quiet:      a.Config.Quiet,
		Decimal:    a.Config.Decimal,
		Full:       a.Config.Verbose,
	}
	outputCfg, err = cli.RenderDecimal(ctx, res.Value, outputCfg)
	if err != nil {
		return cli.HandleError(err, time.Since(start), a.ErrWriter)
	}
	if err := cli.DisplayResultWithConfig(out, a.Config.Eval, res, outputCfg); err != nil {
		return cli.HandleError(err, res.Duration, a.ErrWriter)
	}

	if a.Config.Session != "" {
		if err := env.Save(a.Config.Session); err != nil {
			return cli.HandleError(err, res.Duration, a.ErrWriter)
		}
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive calculator on stdin. Each evaluation is
// bounded by the configured timeout; the session itself is not.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	ctx, cancel := lifecycle(ctx, 0)
	defer cancel()

	env, err := a.newEnv()
	if err != nil {
		return cli.HandleError(err, 0, a.ErrWriter)
	}

	repl := cli.NewREPL(env, cli.REPLConfig{
		Timeout:     a.Config.Timeout,
		Decimal:     a.Config.Decimal,
		Full:        a.Config.Verbose,
		SessionFile: a.Config.Session,
	})
	if a.In != nil {
		repl.SetInput(a.In)
	}
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// runVerify cross-checks every operator against the reference and prints
// the report.
func (a *Application) runVerify(ctx context.Context, out io.Writer) int {
	ctx, cancel := lifecycle(ctx, a.Config.Timeout)
	defer cancel()

	seed := a.Config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg := oracle.Config{
		Iterations: a.Config.Iterations,
		Workers:    a.Config.Workers,
		Seed:       seed,
		Reference:  a.reference,
		OnMismatch: a.Metrics.ObserveMismatch,
		Logger:     a.Logger,
	}

	if !a.Config.Quiet {
		fmt.Fprintf(out, "--- Verification Configuration ---\n")
		fmt.Fprintf(out, "Checking %s%d%s cases per operator against %s%s%s with a timeout of %s%s%s.\n",
			ui.ColorMagenta(), cfg.Iterations, ui.ColorReset(),
			ui.ColorCyan(), a.reference.Name(), ui.ColorReset(),
			ui.ColorYellow(), a.Config.Timeout, ui.ColorReset())
		fmt.Fprintf(out, "Environment: %s%d%s logical processors, %s%d%s workers, Go %s%s%s, seed %d.\n",
			ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
			ui.ColorCyan(), cfg.Workers, ui.ColorReset(),
			ui.ColorCyan(), runtime.Version(), ui.ColorReset(), seed)
		fmt.Fprintf(out, "\n--- Starting Execution ---\n")
	}

	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
	}
	progress := make(chan oracle.Update, cfg.Workers)
	var wg sync.WaitGroup
	wg.Add(1)
	go cli.DisplayProgress(&wg, progress, cfg.Workers, progressOut)

	report, err := oracle.Run(ctx, cfg, progress)
	close(progress)
	wg.Wait()

	if a.Config.Quiet {
		if report.OK() && err == nil {
			fmt.Fprintf(out, "ok %d cases\n", report.Cases)
		} else {
			fmt.Fprintf(out, "FAIL %d/%d mismatches\n", report.Mismatches, report.Cases)
		}
	} else {
		cli.DisplayReport(report, out)
	}

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = apperrors.TimeoutError{Operation: "verify", Limit: a.Config.Timeout}
		}
		return cli.HandleError(err, report.Duration, a.ErrWriter)
	}
	if !report.OK() {
		fmt.Fprintf(a.ErrWriter, "%sVerification failed: %d mismatches.%s\n", ui.ColorRed(), report.Mismatches, ui.ColorReset())
		return apperrors.ExitErrorMismatch
	}
	return apperrors.ExitSuccess
}

// runServer serves the HTTP API until interrupted.
func (a *Application) runServer(ctx context.Context, out io.Writer) int {
	ctx, cancel := lifecycle(ctx, 0)
	defer cancel()

	security := server.DefaultSecurityConfig()
	security.MaxExprLength = a.Config.MaxExprLen
	srv, err := server.New(server.Config{
		Port:        a.Config.Port,
		MaxBits:     a.Config.MaxBits,
		CacheSize:   a.Config.CacheSize,
		EvalTimeout: a.Config.Timeout,
		Security:    security,
	}, a.Logger, server.WithMetrics(server.NewMetricsWithRegistry(a.Metrics)))
	if err != nil {
		return cli.HandleError(err, 0, a.ErrWriter)
	}

	if !a.Config.Quiet {
		fmt.Fprintf(out, "Serving on %s:%s%s (GET /eval?expr=..., /health, /metrics)\n",
			ui.ColorCyan(), a.Config.Port, ui.ColorReset())
	}
	if err := srv.ListenAndServe(ctx); err != nil {
		return cli.HandleError(err, 0, a.ErrWriter)
	}
	return apperrors.ExitSuccess
}
