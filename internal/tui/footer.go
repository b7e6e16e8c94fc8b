package tui

import (
	"strings"
)

// FooterModel renders key hints and the run status.
type FooterModel struct {
	keymap KeyMap
	paused bool
	done   bool
	err    bool
	width  int
}

// NewFooterModel creates a footer for the given key map.
func NewFooterModel(keymap KeyMap) FooterModel {
	return FooterModel{keymap: keymap}
}

func (f *FooterModel) SetPaused(p bool) { f.paused = p }
func (f *FooterModel) SetDone(d bool)   { f.done = d }
func (f *FooterModel) SetError(e bool)  { f.err = e }
func (f *FooterModel) SetWidth(w int)   { f.width = w }

// Status returns the status label.
func (f FooterModel) Status() string {
	switch {
	case f.err:
		return "ERROR"
	case f.done:
		return "DONE"
	case f.paused:
		return "PAUSED"
	}
	return "RUNNING"
}

// View renders the footer.
func (f FooterModel) View() string {
	hints := make([]string, 0, len(f.keymap.ShortHelp()))
	for _, b := range f.keymap.ShortHelp() {
		h := b.Help()
		hints = append(hints, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}

	var status string
	switch f.Status() {
	case "ERROR":
		status = statusErrorStyle.Render("ERROR")
	case "DONE":
		status = statusDoneStyle.Render("DONE")
	case "PAUSED":
		status = statusPausedStyle.Render("PAUSED")
	default:
		status = statusRunningStyle.Render("RUNNING")
	}
	return " " + status + "  " + strings.Join(hints, "  ")
}
