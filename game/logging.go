package game

import "log/slog"

// logPerf logs the rolling frame timings and appends them to perf.csv.
func (g *Game) logPerf() {
	stats := g.perf.Stats()
	slog.Info("perf",
		"frame", g.frame,
		"blossoms", g.pool.Len(),
		"highlighted", len(g.sel.Highlighted()),
		"stats", stats,
	)
	if err := g.output.WritePerf(stats, g.frame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
