// Package orchestration runs Monty Hall trials in parallel and reduces the
// per-worker tallies into a single result. It decouples the run from
// presentation via the ProgressReporter and ResultPresenter interfaces and
// from instrumentation via RunObserver.
package orchestration
