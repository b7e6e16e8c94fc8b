package ui

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the ANSI escape sequences used for plain terminal output.
// The zero value prints no escape codes at all.
type Theme struct {
	Name string

	Primary   string // counts and headings
	Secondary string // labels
	Success   string // the winning strategy, finished runs
	Warning   string // cancellations
	Error     string // failures
	Info      string // configuration details
	Reset     string
}

func ansi256(code int) string { return fmt.Sprintf("\033[38;5;%dm", code) }

var (
	// DarkTheme is the default palette.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   ansi256(39),
		Secondary: ansi256(245),
		Success:   ansi256(82),
		Warning:   ansi256(220),
		Error:     ansi256(196),
		Info:      ansi256(141),
		Reset:     "\033[0m",
	}

	// NoColorTheme is selected by --no-color, NO_COLOR or TERM=dumb.
	NoColorTheme = Theme{Name: "none"}
)

var active atomic.Pointer[Theme]

func init() { SetCurrentTheme(DarkTheme) }

// GetCurrentTheme returns the active theme. Safe for concurrent use.
func GetCurrentTheme() Theme { return *active.Load() }

// SetCurrentTheme replaces the active theme.
func SetCurrentTheme(t Theme) { active.Store(&t) }

// TUITheme is the dashboard palette.
type TUITheme struct {
	Text, Border, Accent lipgloss.TerminalColor
	Stay, Switch         lipgloss.TerminalColor
	Warning, Error, Dim  lipgloss.TerminalColor
}

var (
	DarkTUITheme = TUITheme{
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#5F87AF"),
		Accent:  lipgloss.Color("#FFAF00"),
		Stay:    lipgloss.Color("#4488FF"),
		Switch:  lipgloss.Color("#9ECE6A"),
		Warning: lipgloss.Color("#FFB347"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
	}

	NoColorTUITheme = TUITheme{
		lipgloss.NoColor{}, lipgloss.NoColor{}, lipgloss.NoColor{},
		lipgloss.NoColor{}, lipgloss.NoColor{},
		lipgloss.NoColor{}, lipgloss.NoColor{}, lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the dashboard palette for the active theme.
func GetCurrentTUITheme() TUITheme {
	if GetCurrentTheme().Name == NoColorTheme.Name {
		return NoColorTUITheme
	}
	return DarkTUITheme
}

// InitTheme picks the theme from the --no-color flag and the environment.
// NO_COLOR (https://no-color.org/) and TERM=dumb disable colors.
func InitTheme(noColor bool) {
	initTheme(noColor, os.LookupEnv)
}

func initTheme(noColor bool, lookupEnv func(string) (string, bool)) {
	_, noColorEnv := lookupEnv("NO_COLOR")
	term, _ := lookupEnv("TERM")
	if noColor || noColorEnv || term == "dumb" {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetCurrentTheme(DarkTheme)
}
