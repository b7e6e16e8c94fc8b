package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every generator reads flagRegistry, so a new flag only needs an entry there.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "trials")
	Short     string   // short flag without "-" (e.g., "n")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "count", "duration")
}

// takesValue reports whether the flag expects an argument.
func (f FlagCompletion) takesValue() bool {
	return f.ValueName != ""
}

var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "trials", Short: "n", Help: "Number of trial pairs to simulate", Values: []string{"10000", "1000000", "100000000", "4294967295"}, ValueName: "count"},
	{Long: "workers", Help: "Number of parallel workers", ValueName: "count"},
	{Long: "chunk-size", Help: "Trial pairs per worker chunk", Values: []string{"1024", "65536", "1048576"}, ValueName: "count"},
	{Long: "seed", Help: "Base random seed", ValueName: "seed"},
	{Long: "timeout", Help: "Maximum run time", Values: []string{"30s", "1m", "5m", "10m", "1h"}, ValueName: "duration"},
	{Long: "progress", Help: "Show a progress spinner"},
	{Long: "tui", Help: "Launch the interactive dashboard"},
	{Long: "metrics-addr", Help: "Serve Prometheus metrics on this address", Values: []string{":9100", "127.0.0.1:9100"}, ValueName: "address"},
	{Long: "log-level", Help: "Log level", Values: []string{"debug", "info", "warn", "error"}, ValueName: "level"},
	{Long: "log-format", Help: "Log encoding", Values: []string{"console", "json"}, ValueName: "format"},
	{Long: "verbose", Short: "v", Help: "Print an execution summary"},
	{Long: "no-color", Help: "Disable colored output"},
	{Long: "completion", Help: "Generate completion script", Values: SupportedShells, ValueName: "shell"},
}

// SupportedShells lists the shells GenerateCompletion accepts.
var SupportedShells = []string{"bash", "zsh", "fish"}

// GenerateCompletion writes a completion script for programName to out.
func GenerateCompletion(out io.Writer, shell, programName string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion(programName)
	case "zsh":
		script = zshCompletion(programName)
	case "fish":
		script = fishCompletion(programName)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(SupportedShells, ", "))
	}
	if _, err := io.WriteString(out, script); err != nil {
		return fmt.Errorf("completion %s generation failed: %w", shell, err)
	}
	return nil
}

// shellIdent turns a program name into a shell function identifier.
func shellIdent(programName string) string {
	return strings.NewReplacer("-", "_", ".", "_").Replace(programName)
}

func bashCompletion(programName string) string {
	var opts []string
	var cases strings.Builder
	for _, f := range flagRegistry {
		var patterns []string
		if f.Long != "" {
			patterns = append(patterns, "--"+f.Long)
		}
		if f.Short != "" {
			patterns = append(patterns, "-"+f.Short)
		}
		opts = append(opts, patterns...)
		if len(f.Values) == 0 {
			continue
		}
		fmt.Fprintf(&cases, "        %s)\n", strings.Join(patterns, "|"))
		fmt.Fprintf(&cases, "            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n", strings.Join(f.Values, " "))
		cases.WriteString("            return 0\n            ;;\n")
	}

	fn := "_" + shellIdent(programName) + "_completions"
	return fmt.Sprintf(`# Bash completion script for %[1]s
# Add this to your ~/.bashrc or ~/.bash_completion

%[2]s() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    opts="%[3]s"

    case "${prev}" in
%[4]s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F %[2]s %[1]s
`, programName, fn, strings.Join(opts, " "), cases.String())
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.takesValue():
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

func zshCompletion(programName string) string {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}
	fn := "_" + shellIdent(programName)
	return fmt.Sprintf(`#compdef %[1]s

# Zsh completion script for %[1]s
# Add this to your ~/.zshrc or place in $fpath

%[2]s() {
    _arguments -s \
%[3]s
}

%[2]s "$@"
`, programName, fn, strings.Join(args, " \\\n"))
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(programName string, f FlagCompletion) string {
	var b strings.Builder
	fmt.Fprintf(&b, "complete -c %s", programName)
	if f.Short != "" {
		fmt.Fprintf(&b, " -s %s", f.Short)
	}
	if f.Long != "" {
		fmt.Fprintf(&b, " -l %s", f.Long)
	}
	if f.takesValue() {
		b.WriteString(" -r")
	}
	if len(f.Values) > 0 {
		fmt.Fprintf(&b, " -a '%s'", strings.Join(f.Values, " "))
	}
	fmt.Fprintf(&b, " -d '%s'", f.Help)
	return b.String()
}

func fishCompletion(programName string) string {
	lines := []string{
		"# Fish completion script for " + programName,
		"# Add this to ~/.config/fish/completions/" + programName + ".fish",
		"",
		"complete -c " + programName + " -f",
	}
	for _, f := range flagRegistry {
		lines = append(lines, fishCompleteLine(programName, f))
	}
	return strings.Join(lines, "\n") + "\n"
}
