// Package cli provides the command-line presentation layer: the interactive
// REPL, result and report display, verification progress and shell
// completion scripts.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	apperrors "github.com/agbru/largeint/internal/errors"
	"github.com/agbru/largeint/internal/expr"
	"github.com/agbru/largeint/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout bounds each evaluation. Zero means no limit.
	Timeout time.Duration
	// Decimal also prints results in base 10.
	Decimal bool
	// Full disables truncation of long values.
	Full bool
	// SessionFile is used by save and load without an argument, and is
	// written on exit when set.
	SessionFile string
}

// REPL represents an interactive calculator session.
type REPL struct {
	config REPLConfig
	env    *expr.Env
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a new REPL instance evaluating in env.
//
// Parameters:
//   - env: The variable environment. A nil env starts empty.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(env *expr.Env, config REPLConfig) *REPL {
	if env == nil {
		env = expr.NewEnv()
	}
	return &REPL{
		config: config,
		env:    env,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start runs the read-eval-print loop until exit, EOF or cancellation of
// ctx. The session file, if configured, is saved before returning.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		reader := bufio.NewReader(r.in)
		for {
			input, err := reader.ReadString('\n')
			if input != "" {
				select {
				case lines <- input:
				case <-done:
					return
				}
			}
			if err != nil {
				readErr <- err
				return
			}
		}
	}()

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"largeint> "+ui.ColorReset())

		var input string
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			r.exit()
			return
		case err := <-readErr:
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			}
			fmt.Fprintln(r.out)
			r.exit()
			return
		case input = <-lines:
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !r.processCommand(ctx, input) {
			return
		}
	}
}

func (r *REPL) exit() {
	r.autosave()
	fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, ui.RenderBanner("🔢 largeint - Interactive Mode",
		"Literals are binary (101); prefix 0d for decimal (0d42)."))
	fmt.Fprintln(r.out)
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sEnter an expression, or one of:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sname = expr%s   - Assign a variable (_ holds the last result)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %svars%s          - List variables\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sdel <name>%s    - Delete a variable\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sreset%s         - Delete all variables\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %ssave [file]%s   - Save the session\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sload [file]%s   - Load a session\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sdecimal%s       - Toggle decimal display\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sfull%s          - Toggle full display of long values\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sfuncs%s         - List functions (%s)\n", ui.ColorYellow(), ui.ColorReset(), strings.Join(expr.Builtins(), ", "))
	fmt.Fprintf(r.out, "  %sstatus%s        - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s  - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand executes a command or evaluates an expression.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	// Commands without arguments only match alone, so "h = 1" assigns.
	switch {
	case len(args) == 0 && (cmd == "exit" || cmd == "quit" || cmd == "q"):
		r.exit()
		return false
	case len(args) == 0 && (cmd == "help" || cmd == "h" || cmd == "?"):
		r.printHelp()
	case len(args) == 0 && (cmd == "vars" || cmd == "ls"):
		r.cmdVars()
	case len(args) == 0 && cmd == "funcs":
		fmt.Fprintf(r.out, "Functions: %s\n", strings.Join(expr.Builtins(), ", "))
	case len(args) == 0 && cmd == "reset":
		r.env.Reset()
		fmt.Fprintf(r.out, "%sAll variables deleted.%s\n", ui.ColorGreen(), ui.ColorReset())
	case len(args) == 0 && (cmd == "decimal" || cmd == "dec"):
		r.config.Decimal = !r.config.Decimal
		fmt.Fprintf(r.out, "Decimal display: %s%s%s\n", ui.ColorGreen(), onOff(r.config.Decimal), ui.ColorReset())
	case len(args) == 0 && cmd == "full":
		r.config.Full = !r.config.Full
		fmt.Fprintf(r.out, "Full display: %s%s%s\n", ui.ColorGreen(), onOff(r.config.Full), ui.ColorReset())
	case len(args) == 0 && (cmd == "status" || cmd == "st"):
		r.cmdStatus()
	case len(args) == 1 && cmd == "del":
		r.cmdDel(args[0])
	case len(args) <= 1 && cmd == "save":
		r.cmdSave(args)
	case len(args) <= 1 && cmd == "load":
		r.cmdLoad(args)
	default:
		r.evaluate(ctx, input)
	}
	return true
}

// evaluate runs one expression and prints its result or error.
func (r *REPL) evaluate(ctx context.Context, input string) {
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	res, err := r.env.Eval(ctx, input)
	if err != nil {
		var perr apperrors.ParseError
		if errors.As(err, &perr) {
			DisplayParseError(input, perr, r.out)
			return
		}
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	label := res.Assigned
	if label == "" {
		label = "_"
	}
	cfg, err := RenderDecimal(ctx, res.Value, OutputConfig{Decimal: r.config.Decimal, Full: r.config.Full})
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	DisplayResult(res.Value, label, res.Duration, cfg, r.out)
}

// cmdVars lists the defined variables.
func (r *REPL) cmdVars() {
	names := r.env.Names()
	if len(names) == 0 {
		fmt.Fprintln(r.out, "No variables defined.")
		return
	}
	fmt.Fprintf(r.out, "\n%sVariables:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range names {
		v, _ := r.env.Get(name)
		bin, _ := FormatValue(v.String(), r.config.Full, func(s string) string { return s })
		fmt.Fprintf(r.out, "  %s%-12s%s %s (%d bits)\n", ui.ColorYellow(), name, ui.ColorReset(), bin, v.BitLen())
	}
	fmt.Fprintln(r.out)
}

// cmdDel handles the "del" command.
func (r *REPL) cmdDel(name string) {
	if !r.env.Delete(name) {
		fmt.Fprintf(r.out, "%sUnknown variable: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "Deleted %s%s%s\n", ui.ColorYellow(), name, ui.ColorReset())
}

func (r *REPL) sessionPath(args []string) (string, bool) {
	if len(args) == 1 {
		return args[0], true
	}
	if r.config.SessionFile != "" {
		return r.config.SessionFile, true
	}
	fmt.Fprintf(r.out, "%sUsage: save|load <file> (no --session configured)%s\n", ui.ColorRed(), ui.ColorReset())
	return "", false
}

// cmdSave handles the "save" command.
func (r *REPL) cmdSave(args []string) {
	path, ok := r.sessionPath(args)
	if !ok {
		return
	}
	if err := r.env.Save(path); err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "Session saved to %s%s%s\n", ui.ColorCyan(), path, ui.ColorReset())
}

// cmdLoad handles the "load" command.
func (r *REPL) cmdLoad(args []string) {
	path, ok := r.sessionPath(args)
	if !ok {
		return
	}
	if err := r.env.Load(path); err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "Session loaded from %s%s%s (%d variables)\n",
		ui.ColorCyan(), path, ui.ColorReset(), len(r.env.Names()))
}

// autosave writes the session file on exit when one is configured.
func (r *REPL) autosave() {
	if r.config.SessionFile == "" {
		return
	}
	if err := r.env.Save(r.config.SessionFile); err != nil {
		fmt.Fprintf(r.out, "%sCould not save session: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
}

// cmdStatus displays current REPL configuration.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	timeout := "none"
	if r.config.Timeout > 0 {
		timeout = r.config.Timeout.String()
	}
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", ui.ColorCyan(), timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Decimal:        %s%s%s\n", ui.ColorCyan(), onOff(r.config.Decimal), ui.ColorReset())
	fmt.Fprintf(r.out, "  Full display:   %s%s%s\n", ui.ColorCyan(), onOff(r.config.Full), ui.ColorReset())
	session := "none"
	if r.config.SessionFile != "" {
		session = r.config.SessionFile
	}
	fmt.Fprintf(r.out, "  Session file:   %s%s%s\n", ui.ColorCyan(), session, ui.ColorReset())
	fmt.Fprintf(r.out, "  Variables:      %s%d%s\n", ui.ColorCyan(), len(r.env.Names()), ui.ColorReset())
	fmt.Fprintln(r.out)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
