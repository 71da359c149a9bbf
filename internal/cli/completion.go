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
	Short     string   // short flag without "-" (e.g., "q")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "bytes", "duration")
	IsFile    bool     // true if the flag takes a file path
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Help: "Show version information"},
	{Long: "eval", Short: "e", Help: "Evaluate commands and exit", ValueName: "commands"},
	{Long: "repl", Help: "Start the interactive prompt"},
	{Long: "bench", Help: "Benchmark the engine operations"},
	{Long: "bench-sizes", Help: "Operand sizes in bytes", Values: []string{"16,128,1024", "64,4096"}, ValueName: "sizes"},
	{Long: "bench-rounds", Help: "Iterations per benchmark case", ValueName: "count"},
	{Long: "bench-gc", Help: "GC control during --bench", Values: []string{"auto", "aggressive", "disabled"}, ValueName: "mode"},
	{Long: "capacity", Help: "Initial byte length of new values", Values: []string{"1", "8", "64", "256"}, ValueName: "bytes"},
	{Long: "slab-size", Help: "Arena slab size per value", Values: []string{"0", "4096", "65536"}, ValueName: "bytes"},
	{Long: "memory-limit", Help: "Per-value memory limit", Values: []string{"1MiB", "64MiB", "1GiB"}, ValueName: "size"},
	{Long: "trim", Help: "Trim results before display"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "verbose", Short: "v", Help: "Show byte lists and debug logs"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "theme", Help: "Color theme", Values: []string{"dark", "light", "none"}, ValueName: "theme"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "session", Help: "Session file", IsFile: true, ValueName: "file"},
	{Long: "config", Help: "TOML configuration file", IsFile: true, ValueName: "file"},
	{Long: "metrics-addr", Help: "Prometheus metrics address", Values: []string{":9090"}, ValueName: "addr"},
	{Long: "log-format", Help: "Log format", Values: []string{"console", "json"}, ValueName: "format"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m"}, ValueName: "duration"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish"}, ValueName: "shell"},
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish").
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion()
	case "zsh":
		script = zshCompletion()
	case "fish":
		script = fishCompletion()
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish)", shell)
	}
	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

func flagNames(f FlagCompletion) []string {
	var names []string
	if f.Long != "" {
		names = append(names, "--"+f.Long)
	}
	if f.Short != "" {
		names = append(names, "-"+f.Short)
	}
	return names
}

func bashCompletion() string {
	var opts []string
	var cases strings.Builder
	var files []string
	for _, f := range flagRegistry {
		opts = append(opts, flagNames(f)...)
		switch {
		case f.IsFile:
			files = append(files, flagNames(f)...)
		case len(f.Values) > 0:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				strings.Join(flagNames(f), "|"), strings.Join(f.Values, " "))
		}
	}
	if len(files) > 0 {
		fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n",
			strings.Join(files, "|"))
	}

	return fmt.Sprintf(`# Bash completion script for biguint
# Add this to your ~/.bashrc or ~/.bash_completion

_biguint_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _biguint_completions biguint
`, strings.Join(opts, " "), cases.String())
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}
	if f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

func zshCompletion() string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	return fmt.Sprintf(`#compdef biguint

# Zsh completion script for biguint
# Add this to your ~/.zshrc or place in $fpath

_biguint() {
    _arguments -s \
%s
}

_biguint "$@"
`, strings.Join(args, " \\\n"))
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion) string {
	parts := []string{"complete -c biguint"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	parts = append(parts, "-l "+f.Long, fmt.Sprintf("-d '%s'", f.Help))
	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

func fishCompletion() string {
	lines := []string{
		"# Fish completion script for biguint",
		"# Add this to ~/.config/fish/completions/biguint.fish",
		"",
		"complete -c biguint -f",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(f))
	}
	return strings.Join(lines, "\n") + "\n"
}
