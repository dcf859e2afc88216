package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/largeint/internal/errors"
	"github.com/agbru/largeint/internal/format"
	"github.com/agbru/largeint/internal/metrics"
	"github.com/agbru/largeint/internal/oracle"
	"github.com/agbru/largeint/internal/ui"
)

// DisplayReport prints the per-operator summary of a verification run
// followed by its totals and the first recorded mismatches.
func DisplayReport(report oracle.Report, out io.Writer) {
	fmt.Fprintf(out, "\n--- Verification Summary (reference: %s) ---\n", report.Reference)

	maxNameLen := 8 // "Operator" header length
	for _, s := range report.Ops {
		if len(s.Op) > maxNameLen {
			maxNameLen = len(s.Op)
		}
	}

	fmt.Fprintf(out, "%sOperator%s%s   %s   Cases%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-8),
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset())

	for _, s := range report.Ops {
		var status string
		switch {
		case s.Mismatches > 0:
			status = fmt.Sprintf("%s❌ %d mismatches%s", ui.ColorRed(), s.Mismatches, ui.ColorReset())
		case s.Cases == 0:
			status = fmt.Sprintf("%s- not run%s", ui.ColorYellow(), ui.ColorReset())
		default:
			status = fmt.Sprintf("%s✅ OK%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(out, "%s%s%s%s   %s%8d%s   %s\n",
			ui.ColorBlue(), s.Op, ui.ColorReset(), padRight("", maxNameLen-len(s.Op)),
			ui.ColorYellow(), s.Cases, ui.ColorReset(),
			status)
	}

	fmt.Fprintf(out, "\nCases: %s%s%s, mismatches: %s%d%s, workers: %d, seed: %d, max bits: %d\n",
		ui.ColorCyan(), format.FormatNumberString(fmt.Sprint(report.Cases)), ui.ColorReset(),
		mismatchColor(report.Mismatches), report.Mismatches, ui.ColorReset(),
		report.Workers, report.Seed, report.MaxBits)
	fmt.Fprintf(out, "Duration: %s%s%s\n", ui.ColorYellow(), format.FormatExecutionDuration(report.Duration), ui.ColorReset())
	DisplayMemoryStats(report.Memory, out)

	if len(report.Failures) > 0 {
		fmt.Fprintf(out, "\n%sFirst mismatches:%s\n", ui.ColorBold(), ui.ColorReset())
		for _, m := range report.Failures {
			fmt.Fprintf(out, "  %s%s%s\n", ui.ColorRed(), m, ui.ColorReset())
		}
	}
}

func mismatchColor(n int) string {
	if n > 0 {
		return ui.ColorRed()
	}
	return ui.ColorGreen()
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// DisplayMemoryStats shows how memory use changed during a run.
func DisplayMemoryStats(delta metrics.MemoryDelta, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap change:     %s\n", signedBytes(delta.HeapAlloc))
	fmt.Fprintf(out, "  Sys change:      %s\n", signedBytes(delta.Sys))
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.NumGC)
	if delta.PauseTotal > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(delta.PauseTotal)/float64(time.Millisecond))
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms\n")
	}
}

func signedBytes(n int64) string {
	if n < 0 {
		return "-" + format.FormatBytes(uint64(-n))
	}
	return "+" + format.FormatBytes(uint64(n))
}

// DisplayParseError prints the input with a caret under the offending
// position.
func DisplayParseError(input string, perr apperrors.ParseError, out io.Writer) {
	fmt.Fprintf(out, "%sError: %s%s\n", ui.ColorRed(), perr.Message, ui.ColorReset())
	fmt.Fprintf(out, "  %s\n", input)
	pos := min(max(perr.Pos, 0), len(input))
	fmt.Fprintf(out, "  %s%s^%s\n", strings.Repeat(" ", pos), ui.ColorRed(), ui.ColorReset())
}

// HandleError reports err on out and returns the matching exit code.
func HandleError(err error, duration time.Duration, out io.Writer) int {
	if err == nil {
		return apperrors.ExitSuccess
	}
	var (
		cfgErr   apperrors.ConfigError
		timeout  apperrors.TimeoutError
		parseErr apperrors.ParseError
	)
	switch {
	case errors.As(err, &timeout) || errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sStatus: Failure (Timeout). The execution limit was reached after %s.%s\n",
			ui.ColorRed(), format.FormatExecutionDuration(duration), ui.ColorReset())
		return apperrors.ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sStatus: Canceled after %s.%s\n",
			ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())
		return apperrors.ExitErrorCanceled
	case errors.As(err, &cfgErr):
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitErrorConfig
	case errors.As(err, &parseErr):
		DisplayParseError(parseErr.Input, parseErr, out)
		return apperrors.ExitErrorGeneric
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitErrorGeneric
	}
}
