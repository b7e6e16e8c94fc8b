package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/montyhall/internal/config"
	apperrors "github.com/agbru/montyhall/internal/errors"
	"github.com/agbru/montyhall/internal/orchestration"
	"github.com/agbru/montyhall/internal/simulation"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	cfg := config.AppConfig{Trials: 1000, Seed: 7}
	m := NewModel(context.Background(), cfg, orchestration.Options{Workers: 2}, "dev")
	t.Cleanup(m.cancel)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_ViewBeforeResize(t *testing.T) {
	t.Parallel()
	if got := newTestModel(t).View(); got != "Initializing..." {
		t.Errorf("View() = %q, want Initializing...", got)
	}
}

func TestModel_WindowSize(t *testing.T) {
	t.Parallel()
	m, _ := update(t, newTestModel(t), tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.width != 120 || m.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", m.width, m.height)
	}
	view := m.View()
	for _, want := range []string{"Monty Hall Simulator", "Running win rates", "Runtime", "System", "RUNNING"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestLayoutManager(t *testing.T) {
	t.Parallel()
	l := LayoutManager{width: 100, height: 30}
	if l.ratesWidth()+l.rightWidth() != 100 {
		t.Errorf("column widths %d+%d do not add up to 100", l.ratesWidth(), l.rightWidth())
	}
	if l.metricsHeight()+l.chartHeight() != l.bodyHeight() {
		t.Error("right column heights do not add up to the body height")
	}
	small := LayoutManager{width: 40, height: 3}
	if small.bodyHeight() != minBodyHeight {
		t.Errorf("bodyHeight() = %d, want %d", small.bodyHeight(), minBodyHeight)
	}
}

func TestModel_RunStartedSetsSeed(t *testing.T) {
	t.Parallel()
	m, _ := update(t, newTestModel(t), RunStartedMsg{Seed: 99, Generation: 0})
	if m.header.seed != 99 {
		t.Errorf("header seed = %d, want 99", m.header.seed)
	}

	m, _ = update(t, m, RunStartedMsg{Seed: 5, Generation: 3})
	if m.header.seed != 99 {
		t.Error("stale RunStartedMsg should be ignored")
	}
}

func TestModel_ProgressIgnoredWhilePaused(t *testing.T) {
	t.Parallel()
	m, _ := update(t, newTestModel(t), runeKey('p'))
	if !m.paused || m.footer.Status() != "PAUSED" {
		t.Fatal("expected the dashboard to be paused")
	}

	m, _ = update(t, m, ProgressMsg{Snapshot: orchestration.Snapshot{Average: 0.5, Running: simulation.Tally{Trials: 10, SwitchWins: 7, StayWins: 3}}})
	if m.rates.Tally().Trials != 0 {
		t.Error("progress should not update the panel while paused")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.paused {
		t.Fatal("expected space to resume")
	}
	m, _ = update(t, m, ProgressMsg{Snapshot: orchestration.Snapshot{Average: 0.5, Running: simulation.Tally{Trials: 10, SwitchWins: 7, StayWins: 3}}})
	if m.rates.Tally().Trials != 10 {
		t.Errorf("Tally().Trials = %d, want 10", m.rates.Tally().Trials)
	}
}

func TestModel_RunComplete(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	result := orchestration.RunResult{Trials: 3, Tally: simulation.Tally{Trials: 3, StayWins: 1, SwitchWins: 2}}

	m, _ = update(t, m, RunCompleteMsg{Result: result, ExitCode: 0, Generation: 5})
	if m.done {
		t.Fatal("stale RunCompleteMsg should be ignored")
	}

	m, _ = update(t, m, ReportMsg{Result: result})
	m, _ = update(t, m, RunCompleteMsg{Result: result, ExitCode: apperrors.ExitSuccess, Generation: 0})
	if !m.done || m.exitCode != apperrors.ExitSuccess {
		t.Errorf("done=%v exitCode=%d, want done with success", m.done, m.exitCode)
	}
	if m.result.Tally != result.Tally {
		t.Errorf("result tally = %+v, want %+v", m.result.Tally, result.Tally)
	}
	if m.footer.Status() != "DONE" {
		t.Errorf("footer status = %s, want DONE", m.footer.Status())
	}

	// Quitting after completion keeps the success code.
	m, cmd := update(t, m, runeKey('q'))
	if !isQuit(cmd) {
		t.Error("expected q to quit")
	}
	if m.exitCode != apperrors.ExitSuccess {
		t.Errorf("exitCode = %d after quitting a finished run, want 0", m.exitCode)
	}
}

func TestModel_QuitWhileRunning(t *testing.T) {
	t.Parallel()
	m, cmd := update(t, newTestModel(t), runeKey('q'))
	if !isQuit(cmd) {
		t.Fatal("expected q to quit")
	}
	if m.exitCode != apperrors.ExitErrorCanceled {
		t.Errorf("exitCode = %d, want %d", m.exitCode, apperrors.ExitErrorCanceled)
	}
	if m.ctx.Err() == nil {
		t.Error("expected the run context to be canceled")
	}
}

func TestModel_ErrorMsg(t *testing.T) {
	t.Parallel()
	m, _ := update(t, newTestModel(t), ErrorMsg{Err: errors.New("boom")})
	if m.footer.Status() != "ERROR" {
		t.Errorf("footer status = %s, want ERROR", m.footer.Status())
	}
}

func TestModel_ContextCancelled(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	m, cmd := update(t, m, ContextCancelledMsg{Err: context.Canceled, Generation: 1})
	if cmd != nil || m.done {
		t.Fatal("stale ContextCancelledMsg should be ignored")
	}

	m, cmd = update(t, m, ContextCancelledMsg{Err: context.DeadlineExceeded, Generation: 0})
	if !isQuit(cmd) {
		t.Error("expected the dashboard to quit")
	}
	if m.exitCode != apperrors.ExitErrorTimeout {
		t.Errorf("exitCode = %d, want %d", m.exitCode, apperrors.ExitErrorTimeout)
	}
}

func TestModel_Reset(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	oldCtx := m.ctx
	m, _ = update(t, m, ProgressMsg{Snapshot: orchestration.Snapshot{Running: simulation.Tally{Trials: 5, SwitchWins: 3, StayWins: 2}}})
	m, _ = update(t, m, RunCompleteMsg{Generation: 0, ExitCode: apperrors.ExitSuccess})

	m, cmd := update(t, m, runeKey('r'))
	if cmd == nil {
		t.Fatal("expected restart commands")
	}
	if m.generation != 1 {
		t.Errorf("generation = %d, want 1", m.generation)
	}
	if m.done || m.paused {
		t.Error("expected a fresh running state")
	}
	if m.rates.Tally().Trials != 0 {
		t.Error("expected rates to be cleared")
	}
	if oldCtx.Err() == nil {
		t.Error("expected the previous run context to be canceled")
	}
	if m.ctx.Err() != nil {
		t.Error("expected the new run context to be live")
	}
}

func TestModel_RestartIgnoresPreviousRun(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	oldCtx, oldGen := m.ctx, m.generation

	m, _ = update(t, m, runeKey('r'))

	// The abandoned run ends with a cancellation and reports it, along with
	// any progress still queued, under its own generation.
	_, runErr := orchestration.Run(oldCtx, 1000, 7, orchestration.Options{Workers: 2})
	if runErr == nil {
		t.Fatal("run on the canceled context should fail")
	}
	stale := []tea.Msg{
		ProgressMsg{Snapshot: orchestration.Snapshot{Average: 0.9, Running: simulation.Tally{Trials: 900, SwitchWins: 600}}, Generation: oldGen},
		ErrorMsg{Err: runErr, Generation: oldGen},
		ReportMsg{Result: orchestration.RunResult{Tally: simulation.Tally{Trials: 1000}}, Generation: oldGen},
	}
	for _, msg := range stale {
		m, _ = update(t, m, msg)
	}
	if m.footer.Status() == "ERROR" {
		t.Error("the previous run's cancellation leaked into the new run")
	}
	if m.rates.Tally().Trials != 0 {
		t.Errorf("rates show %d trials from the previous run", m.rates.Tally().Trials)
	}

	result := orchestration.RunResult{Trials: 3, Tally: simulation.Tally{Trials: 3, StayWins: 1, SwitchWins: 2}}
	m, _ = update(t, m, ProgressMsg{Snapshot: orchestration.Snapshot{Average: 1, Running: result.Tally}, Generation: m.generation})
	m, _ = update(t, m, ReportMsg{Result: result, Generation: m.generation})
	m, _ = update(t, m, RunCompleteMsg{Result: result, ExitCode: apperrors.ExitSuccess, Generation: m.generation})
	if got := m.footer.Status(); got != "DONE" {
		t.Errorf("footer status after the restarted run = %s, want DONE", got)
	}
	if m.rates.Tally() != result.Tally {
		t.Errorf("rates tally = %+v, want %+v", m.rates.Tally(), result.Tally)
	}
}

func TestStartRunCmd(t *testing.T) {
	t.Parallel()
	cfg := config.AppConfig{Trials: 10_000, Seed: 1}
	cmd := startRunCmd(context.Background(), &programRef{}, cfg, orchestration.Options{Workers: 4, ChunkSize: 256}, 3)

	raw := cmd()
	msg, ok := raw.(RunCompleteMsg)
	if !ok {
		t.Fatalf("startRunCmd produced %T, want RunCompleteMsg", raw)
	}
	if msg.Generation != 3 {
		t.Errorf("Generation = %d, want 3", msg.Generation)
	}
	if msg.ExitCode != apperrors.ExitSuccess {
		t.Errorf("ExitCode = %d, want 0", msg.ExitCode)
	}
	if msg.Result.Tally.Trials != 10_000 || msg.Result.Seed != 1 {
		t.Errorf("Result = %+v, want 10000 trials with seed 1", msg.Result)
	}
	if msg.Result.Tally.SwitchWins <= msg.Result.Tally.StayWins {
		t.Errorf("switching won %d, staying %d; expected switching ahead", msg.Result.Tally.SwitchWins, msg.Result.Tally.StayWins)
	}
}

func TestStartRunCmd_Canceled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := startRunCmd(ctx, &programRef{}, config.AppConfig{Trials: 1_000_000, Seed: 1}, orchestration.Options{Workers: 2}, 0)
	msg := cmd().(RunCompleteMsg)
	if msg.ExitCode != apperrors.ExitErrorCanceled {
		t.Errorf("ExitCode = %d, want %d", msg.ExitCode, apperrors.ExitErrorCanceled)
	}
}

func TestRunSeed(t *testing.T) {
	t.Parallel()
	if got := runSeed(config.AppConfig{Seed: 12}); got != 12 {
		t.Errorf("runSeed = %d, want 12", got)
	}
	if runSeed(config.AppConfig{}) == 0 {
		t.Error("expected a non-zero random seed")
	}
}

func TestWatchContextCmd(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msg := watchContextCmd(ctx, 4)().(ContextCancelledMsg)
	if msg.Generation != 4 || !errors.Is(msg.Err, context.Canceled) {
		t.Errorf("unexpected message %+v", msg)
	}
}
