// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult], [FormatValue].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/agbru/largeint/internal/expr"
	"github.com/agbru/largeint/internal/format"
	"github.com/agbru/largeint/internal/largeint"
	"github.com/agbru/largeint/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet prints the bare value only.
	Quiet bool
	// Decimal adds the base 10 rendering.
	Decimal bool
	// Full disables truncation of long values.
	Full bool
	// DecimalText is the base 10 rendering when the caller already computed
	// it; empty means it is derived from the value.
	DecimalText string
}

func (c OutputConfig) decimal(value *largeint.Int) string {
	if c.DecimalText != "" {
		return c.DecimalText
	}
	return value.Decimal()
}

// RenderDecimal fills cfg.DecimalText when cfg needs base 10 output, stopping
// when ctx is done.
func RenderDecimal(ctx context.Context, value *largeint.Int, cfg OutputConfig) (OutputConfig, error) {
	if !cfg.Decimal && cfg.OutputFile == "" {
		return cfg, nil
	}
	dec, err := value.DecimalContext(ctx)
	if err != nil {
		return cfg, err
	}
	cfg.DecimalText = dec
	return cfg, nil
}

// FormatValue renders digits for the terminal: grouped with group when short
// enough, otherwise cut to its edges unless full is set. The second result
// reports whether truncation happened.
func FormatValue(digits string, full bool, group func(string) string) (string, bool) {
	sign := ""
	if len(digits) > 0 && digits[0] == '-' {
		sign, digits = "-", digits[1:]
	}
	if full || len(digits) <= TruncationLimit {
		return sign + group(digits), false
	}
	return sign + digits[:DisplayEdges] + "..." + digits[len(digits)-DisplayEdges:], true
}

// DisplayResult prints an evaluated value with its size and timing.
//
// Parameters:
//   - value: The value to print.
//   - label: The name shown left of the value ("_" for anonymous results).
//   - duration: The evaluation time.
//   - cfg: Output configuration; Decimal and Full are honoured.
//   - out: The output writer.
func DisplayResult(value *largeint.Int, label string, duration time.Duration, cfg OutputConfig, out io.Writer) {
	fmt.Fprintf(out, "%s%s%s = ", ui.ColorMagenta(), label, ui.ColorReset())
	bin, truncated := FormatValue(value.String(), cfg.Full, format.FormatBinaryString)
	fmt.Fprintf(out, "%s%s%s\n", ui.ColorGreen(), bin, ui.ColorReset())

	if cfg.Decimal {
		dec, cut := FormatValue(cfg.decimal(value), cfg.Full, format.FormatNumberString)
		truncated = truncated || cut
		fmt.Fprintf(out, "  decimal: %s%s%s\n", ui.ColorCyan(), dec, ui.ColorReset())
	}
	fmt.Fprintf(out, "  %s%d%s bits, evaluated in %s%s%s\n",
		ui.ColorCyan(), value.BitLen(), ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(duration), ui.ColorReset())
	if truncated {
		fmt.Fprintf(out, "  %s(truncated) Tip: use --verbose to display the full value.%s\n", ui.ColorGrey(), ui.ColorReset())
	}
}

// FormatQuietResult formats a value for quiet mode: one line, base 2 or, if
// decimal is set, base 10.
func FormatQuietResult(value *largeint.Int, decimal bool) string {
	if decimal {
		return value.Decimal()
	}
	return value.String()
}

// DisplayQuietResult outputs a value in quiet mode.
func DisplayQuietResult(out io.Writer, value *largeint.Int, decimal bool) {
	fmt.Fprintln(out, FormatQuietResult(value, decimal))
}

// WriteResultToFile writes an evaluation result to cfg.OutputFile, creating
// parent directories as needed. It does nothing when OutputFile is empty.
func WriteResultToFile(input string, res expr.Result, cfg OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# largeint evaluation result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Expression: %s\n", input)
	fmt.Fprintf(file, "# Duration: %s\n", res.Duration)
	fmt.Fprintf(file, "# Bits: %d\n", res.Value.BitLen())
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "binary:\n%s\n", res.Value.String())
	fmt.Fprintf(file, "decimal:\n%s\n", cfg.decimal(res.Value))

	return file.Close()
}

// DisplayResultWithConfig displays an evaluation result in the mode selected
// by cfg and saves it when an output file is configured.
func DisplayResultWithConfig(out io.Writer, input string, res expr.Result, cfg OutputConfig) error {
	if cfg.Quiet {
		if cfg.Decimal {
			fmt.Fprintln(out, cfg.decimal(res.Value))
		} else {
			DisplayQuietResult(out, res.Value, false)
		}
	} else {
		label := res.Assigned
		if label == "" {
			label = "_"
		}
		DisplayResult(res.Value, label, res.Duration, cfg, out)
	}

	if cfg.OutputFile != "" {
		if err := WriteResultToFile(input, res, cfg); err != nil {
			return err
		}
		if !cfg.Quiet {
			fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
		}
	}
	return nil
}
