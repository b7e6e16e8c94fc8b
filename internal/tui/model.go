package tui

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/montyhall/internal/config"
	apperrors "github.com/agbru/montyhall/internal/errors"
	"github.com/agbru/montyhall/internal/metrics"
	"github.com/agbru/montyhall/internal/orchestration"
	"github.com/agbru/montyhall/internal/simulation"
	"github.com/agbru/montyhall/internal/sysmon"
)

// Layout constants for the dashboard.
const (
	headerHeight      = 1
	footerHeight      = 1
	minBodyHeight     = 12
	RatesPanelPercent = 60
	MetricsPanelRows  = 5
	tickInterval      = 500 * time.Millisecond
)

// ExecutionState holds the execution-related fields of a dashboard session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
	result     orchestration.RunResult
}

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width  int
	height int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	return max(l.height-headerHeight-footerHeight, minBodyHeight)
}

// ratesWidth returns the width of the left column.
func (l LayoutManager) ratesWidth() int {
	return l.width * RatesPanelPercent / 100
}

// rightWidth returns the width of the right column (metrics + chart).
func (l LayoutManager) rightWidth() int {
	return l.width - l.ratesWidth()
}

// metricsHeight returns the height allocated to the metrics panel.
func (l LayoutManager) metricsHeight() int {
	return min(MetricsPanelRows, l.bodyHeight()/2)
}

// chartHeight returns the height allocated to the chart panel.
func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - l.metricsHeight()
}

// Model is the root bubbletea model of the dashboard.
type Model struct {
	header  HeaderModel
	rates   RatesModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	config    config.AppConfig
	opts      orchestration.Options
	memory    *metrics.MemoryCollector
	ref       *programRef
	paused    bool
}

// NewModel creates a dashboard model. A zero cfg.Seed draws a fresh random
// seed for every run, including restarts.
func NewModel(parentCtx context.Context, cfg config.AppConfig, opts orchestration.Options, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	keymap := DefaultKeyMap()
	workers := opts.Workers
	if uint64(workers) > uint64(cfg.Trials) {
		workers = int(cfg.Trials)
	}

	return Model{
		header:  NewHeaderModel(version, cfg.Trials, workers),
		rates:   NewRatesModel(),
		metrics: NewMetricsModel(),
		chart:   NewChartModel(),
		footer:  NewFooterModel(keymap),
		keymap:  keymap,
		ExecutionState: ExecutionState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		config:    cfg,
		opts:      opts,
		memory:    metrics.NewMemoryCollector(),
		ref:       &programRef{},
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return m.startCmds()
}

func (m Model) startCmds() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startRunCmd(m.ctx, m.ref, m.config, m.opts, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case RunStartedMsg:
		if msg.Generation == m.generation {
			m.header.SetSeed(msg.Seed)
		}
		return m, nil

	case ProgressMsg:
		if msg.Generation == m.generation && !m.paused && !m.done {
			m.rates.Update(msg.Snapshot)
			m.metrics.UpdateTrials(msg.Running.Trials)
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ReportMsg:
		if msg.Generation == m.generation {
			m.rates.SetFinal(msg.Result.Tally)
		}
		return m, nil

	case ErrorMsg:
		// A restart cancels the previous run, which then reports its
		// cancellation here under the old generation.
		if msg.Generation == m.generation {
			m.rates.SetError(msg.Err)
			m.footer.SetError(true)
		}
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			return m, tea.Batch(sampleMemStatsCmd(m.memory), sampleSysStatsCmd(), tickCmd())
		}
		return m, tickCmd()

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case RunCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous run
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.result = msg.Result
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from a previous run
		}
		m.header.SetDone()
		m.footer.SetDone(true)
		if !m.done {
			// Canceled from outside (signal or timeout) before the run
			// reported; report the matching exit code.
			m.done = true
			m.exitCode = apperrors.HandleRunError(msg.Err, m.header.Elapsed(), io.Discard, nil)
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
			m.result.Err = context.Canceled
		}
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		cmd := m.restart()
		return m, cmd
	}
	return m, nil
}

// restart abandons the current run and starts a fresh one under a new
// generation. Messages still in flight from the old run carry the old
// generation and are ignored.
func (m *Model) restart() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	m.generation++
	m.ctx, m.cancel = context.WithCancel(m.parentCtx)
	m.done, m.paused = false, false
	m.exitCode, m.result = apperrors.ExitSuccess, orchestration.RunResult{}

	m.header.Reset()
	m.rates.Reset()
	m.chart.Reset()
	m.metrics = NewMetricsModel()
	m.footer.SetDone(false)
	m.footer.SetError(false)
	m.footer.SetPaused(false)
	m.layoutPanels()
	return m.startCmds()
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	rightCol := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.rates.View(), rightCol)
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.rates.SetSize(m.ratesWidth(), m.bodyHeight())
	m.metrics.SetSize(m.rightWidth(), m.metricsHeight())
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
}

// Run shows the dashboard until the user quits or the context ends, and
// returns the last run's result and exit code.
func Run(ctx context.Context, cfg config.AppConfig, opts orchestration.Options, version string) (orchestration.RunResult, int) {
	// Rebuild styles from the current ui theme (set by the app via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, cfg, opts, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return orchestration.RunResult{Err: err}, apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.result, m.exitCode
	}
	return orchestration.RunResult{}, apperrors.ExitSuccess
}

// runSeed returns the configured seed, or a fresh random one.
func runSeed(cfg config.AppConfig) uint64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return simulation.RandomSeed()
}

// startRunCmd returns a tea.Cmd that runs the simulation.
func startRunCmd(ctx context.Context, ref *programRef, cfg config.AppConfig, opts orchestration.Options, gen uint64) tea.Cmd {
	return func() tea.Msg {
		seed := runSeed(cfg)
		ref.Send(RunStartedMsg{Seed: seed, Generation: gen})

		presenter := &TUIResultPresenter{ref: ref, gen: gen}
		reporter := &TUIProgressReporter{ref: ref, gen: gen}
		result := orchestration.ExecuteSimulation(ctx, cfg.Trials, seed, opts, reporter, io.Discard)
		exitCode := orchestration.AnalyzeResult(result, presenter, presenter, io.Discard)

		return RunCompleteMsg{Result: result, ExitCode: exitCode, Generation: gen}
	}
}

// tickCmd returns a command that sends a TickMsg after tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats.
func sampleMemStatsCmd(mc *metrics.MemoryCollector) tea.Cmd {
	return func() tea.Msg {
		return MemStatsMsg(mc.Snapshot())
	}
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		st := sysmon.Sample()
		return SysStatsMsg{CPUPercent: st.CPUPercent, MemPercent: st.MemPercent}
	}
}

// watchContextCmd reports the end of ctx, stamped with the run generation.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: context.Cause(ctx), Generation: gen}
	}
}
