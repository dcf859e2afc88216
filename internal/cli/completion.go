package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "help")
	Short     string   // short flag without "-" (e.g., "h")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
	IsRef     bool     // true if values come from the reference list (dynamic)
	BashGroup string   // flags with same non-empty BashGroup share a bash case entry
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "eval", Short: "e", Help: "Evaluate an expression and exit", ValueName: "expression"},
	{Long: "repl", Help: "Start the interactive calculator"},
	{Long: "verify", Help: "Cross-check operators against a reference"},
	{Long: "iterations", Help: "Random cases per operator", Values: []string{"100", "1000", "10000"}, ValueName: "count", BashGroup: "count"},
	{Long: "workers", Help: "Verification workers", Values: []string{"1", "2", "4", "8"}, ValueName: "count"},
	{Long: "seed", Help: "Random seed for verification", ValueName: "number"},
	{Long: "reference", Help: "Reference implementation", IsRef: true, ValueName: "reference"},
	{Long: "max-bits", Help: "Maximum value length in bits", Values: []string{"0", "4096", "65536", "1048576"}, ValueName: "bits"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"30s", "1m", "5m", "10m"}, ValueName: "duration"},
	{Long: "server", Help: "Serve the HTTP API"},
	{Long: "port", Help: "HTTP API port", Values: []string{"8080", "9090"}, ValueName: "port"},
	{Long: "cache-size", Help: "Cached results in server mode", Values: []string{"100", "1000", "10000"}, ValueName: "count", BashGroup: "count"},
	{Long: "max-expr-len", Help: "Maximum expression length for the HTTP API", Values: []string{"1024", "4096", "16384"}, ValueName: "bytes"},
	{Long: "decimal", Help: "Also print results in decimal"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "session", Help: "REPL session file", IsFile: true, ValueName: "file"},
	{Long: "config", Help: "TOML configuration file", IsFile: true, ValueName: "file"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "verbose", Short: "v", Help: "Debug logging and full values"},
	{Long: "no-color", Help: "Disable coloured output"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// bashGroupValues defines the completion values used in bash for grouped flags.
var bashGroupValues = map[string][]string{
	"count": {"100", "1000", "10000"},
}

// zshHelpOverrides provides shell-specific help text overrides for zsh.
var zshHelpOverrides = map[string]string{
	"eval": "Expression to evaluate",
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//   - references: Names accepted by --reference.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, references []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, references)
	case "zsh":
		return generateZshCompletion(out, references)
	case "fish":
		return generateFishCompletion(out, references)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, references)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// flagKey returns the identifier used for lookups: Long name if present, else Short.
func flagKey(f FlagCompletion) string {
	if f.Long != "" {
		return f.Long
	}
	return f.Short
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, references []string) error {
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	type caseEntry struct {
		patterns []string
		body     string
	}
	var cases []caseEntry

	// 1. Reference flag
	for _, f := range flagRegistry {
		if f.IsRef {
			cases = append(cases, caseEntry{
				patterns: []string{"--" + f.Long},
				body:     `COMPREPLY=( $(compgen -W "${references}" -- "${cur}") )`,
			})
		}
	}

	// 2. File completion flags
	var filePatterns []string
	for _, f := range flagRegistry {
		if !f.IsFile {
			continue
		}
		if f.Long != "" {
			filePatterns = append(filePatterns, "--"+f.Long)
		}
		if f.Short != "" {
			filePatterns = append(filePatterns, "-"+f.Short)
		}
	}
	if len(filePatterns) > 0 {
		cases = append(cases, caseEntry{
			patterns: filePatterns,
			body:     `COMPREPLY=( $(compgen -f -- "${cur}") )`,
		})
	}

	// 3. Ungrouped flags with static values
	for _, f := range flagRegistry {
		if !f.IsRef && !f.IsFile && f.BashGroup == "" && len(f.Values) > 0 {
			cases = append(cases, caseEntry{
				patterns: []string{"--" + f.Long},
				body:     fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")),
			})
		}
	}

	// 4. Grouped flags
	seenGroups := map[string]bool{}
	for _, f := range flagRegistry {
		if f.BashGroup == "" || seenGroups[f.BashGroup] {
			continue
		}
		seenGroups[f.BashGroup] = true
		var patterns []string
		for _, gf := range flagRegistry {
			if gf.BashGroup == f.BashGroup {
				patterns = append(patterns, "--"+gf.Long)
			}
		}
		cases = append(cases, caseEntry{
			patterns: patterns,
			body:     fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(bashGroupValues[f.BashGroup], " ")),
		})
	}

	var caseBody strings.Builder
	for _, c := range cases {
		caseBody.WriteString("        ")
		caseBody.WriteString(strings.Join(c.patterns, "|"))
		caseBody.WriteString(")\n")
		caseBody.WriteString("            ")
		caseBody.WriteString(c.body)
		caseBody.WriteString("\n            return 0\n            ;;\n")
	}

	script := fmt.Sprintf(`# Bash completion script for largeint
# Add this to your ~/.bashrc or ~/.bash_completion

_largeint_completions() {
    local cur prev opts references
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main options
    opts="%s"

    # Reference implementations
    references="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _largeint_completions largeint
`, strings.Join(opts, " "), strings.Join(references, " "), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, references []string) error {
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef largeint

# Zsh completion script for largeint
# Add this to your ~/.zshrc or place in $fpath

_largeint() {
    local -a references
    references=(%s)

    _arguments -s \
%s
}

_largeint "$@"
`, strings.Join(references, " "), strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	help := f.Help
	if override, ok := zshHelpOverrides[flagKey(f)]; ok {
		help = override
	}

	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case f.IsRef:
		valueSuffix = fmt.Sprintf(":%s:($references)", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, help, valueSuffix)
	}
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, references []string) error {
	lines := []string{
		"# Fish completion script for largeint",
		"# Add this to ~/.config/fish/completions/largeint.fish",
		"",
		"# Disable file completion by default",
		"complete -c largeint -f",
		"",
	}

	sections := []struct {
		comment string
		flags   []FlagCompletion
	}{
		{"# Help and version", filterFlags("help", "version")},
		{"# Modes", filterFlags("eval", "repl", "verify", "server")},
		{"# Verification", filterFlags("iterations", "workers", "seed", "reference")},
		{"# Limits", filterFlags("max-bits", "timeout", "max-expr-len")},
		{"# Server", filterFlags("port", "cache-size")},
		{"# Output options", filterFlags("decimal", "output", "session", "config", "quiet", "verbose", "no-color")},
		{"# Completion", filterFlags("completion")},
	}

	refList := strings.Join(references, " ")
	for _, sec := range sections {
		lines = append(lines, sec.comment)
		for _, f := range sec.flags {
			lines = append(lines, fishCompleteLine(f, refList))
		}
		lines = append(lines, "")
	}

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// filterFlags returns flags from the registry matching the given long names.
func filterFlags(names ...string) []FlagCompletion {
	var result []FlagCompletion
	for _, name := range names {
		for _, f := range flagRegistry {
			if f.Long == name {
				result = append(result, f)
				break
			}
		}
	}
	return result
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, refList string) string {
	parts := []string{"complete -c largeint"}
	if f.Short != "" {
		parts = append(parts, fmt.Sprintf("-s %s", f.Short))
	}
	if f.Long != "" {
		parts = append(parts, fmt.Sprintf("-l %s", f.Long))
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case f.IsRef:
		parts = append(parts, fmt.Sprintf("-xa '%s'", refList))
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer, references []string) error {
	var optionEntries []string
	for _, f := range flagRegistry {
		if f.Short != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '-%s'; Description = '%s' }", f.Short, f.Help))
		}
		if f.Long != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '--%s'; Description = '%s' }", f.Long, f.Help))
		}
	}

	psSwitchEntry := func(flag, values string) string {
		return fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, flag, values)
	}

	var switchEntries []string
	for _, f := range flagRegistry {
		switch {
		case f.IsRef:
			switchEntries = append(switchEntries, psSwitchEntry(f.Long, "$largeintReferences"))
		case !f.IsFile && len(f.Values) > 0:
			switchEntries = append(switchEntries, psSwitchEntry(f.Long, psQuote(f.Values)))
		}
	}

	script := fmt.Sprintf(`# PowerShell completion script for largeint
# Add this to your $PROFILE

$largeintReferences = @(%s)

Register-ArgumentCompleter -CommandName 'largeint' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    # Context-aware completions
    switch ($prevElement) {
%s
    }

    # Default: show options
    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, psQuote(references), strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	_, err := fmt.Fprint(out, script)
	return err
}

// psQuote renders values as a PowerShell array body: 'a', 'b'.
func psQuote(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
