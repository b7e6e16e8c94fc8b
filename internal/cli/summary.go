package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/montyhall/internal/config"
	"github.com/agbru/montyhall/internal/format"
	"github.com/agbru/montyhall/internal/metrics"
	"github.com/agbru/montyhall/internal/orchestration"
	"github.com/agbru/montyhall/internal/sysmon"
	"github.com/agbru/montyhall/internal/ui"
)

// PrintExecutionConfig displays the resolved run configuration.
func PrintExecutionConfig(cfg config.AppConfig, seed uint64, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Simulating %s%s%s trial pairs with %s%d%s workers (chunk %s).\n",
		ui.ColorMagenta(), format.FormatUint(uint64(cfg.Trials)), ui.ColorReset(),
		ui.ColorMagenta(), cfg.Workers, ui.ColorReset(),
		format.FormatUint(cfg.ChunkSize))
	timeout := "none"
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout.String()
	}
	fmt.Fprintf(out, "Seed: %s%d%s, timeout: %s%s%s.\n",
		ui.ColorBlue(), seed, ui.ColorReset(), ui.ColorYellow(), timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorBlue(), runtime.NumCPU(), ui.ColorReset(), ui.ColorBlue(), runtime.Version(), ui.ColorReset())
	if sys := sysmon.Sample(); sys.MemTotal > 0 {
		fmt.Fprintf(out, "System memory: %s used of %s (%.1f%%).\n",
			format.FormatBytes(sys.MemUsed), format.FormatBytes(sys.MemTotal), sys.MemPercent)
	}
}

// DisplaySummary shows the execution summary of a run: counts, duration,
// throughput and memory.
func DisplaySummary(result orchestration.RunResult, mem metrics.MemorySnapshot, peakHeap uint64, out io.Writer) {
	t := result.Tally
	fmt.Fprintf(out, "\n--- Execution Summary ---\n")
	fmt.Fprintf(out, "  Trials:          %s\n", format.FormatUint(t.Trials))
	fmt.Fprintf(out, "  Workers:         %d\n", result.Workers)
	fmt.Fprintf(out, "  Seed:            %d\n", result.Seed)
	fmt.Fprintf(out, "  Duration:        %s\n", format.FormatExecutionDuration(result.Duration))
	fmt.Fprintf(out, "  Throughput:      %s\n", format.FormatThroughput(t.Trials, result.Duration))

	winner, label := ui.ColorGreen(), "switch"
	if t.StayWins > t.SwitchWins {
		label = "stay"
	} else if t.StayWins == t.SwitchWins {
		winner, label = ui.ColorGrey(), "tie"
	}
	fmt.Fprintf(out, "  Better strategy: %s%s%s\n", winner, label, ui.ColorReset())

	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(peakHeap))
	fmt.Fprintf(out, "  GC cycles:       %d\n", mem.NumGC)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(mem.PauseTotalNs)/1e6)
}
