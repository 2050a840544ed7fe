package game

import (
	"log/slog"

	"github.com/pthm-cable/sakura/selection"
	"github.com/pthm-cable/sakura/telemetry"
)

// handleClick applies a pointer click and records any selection change.
func (g *Game) handleClick() {
	prev, _ := g.sel.Selected()
	action := g.bridge.Click()
	if action == selection.ActionNone {
		return
	}

	idx := prev
	if action == selection.ActionSelect {
		idx, _ = g.sel.Selected()
	}

	ev := telemetry.SelectionEvent{
		Frame:  g.frame,
		Time:   g.time,
		Action: action.String(),
		Index:  idx,
	}
	if idx >= 0 && idx < g.pool.Len() {
		ev.Author = g.pool.Author(idx)
		ev.X, ev.Z = g.pool.PlanarPosition(idx)
	}

	slog.Info("selection",
		"action", ev.Action,
		"index", ev.Index,
		"author", ev.Author,
		"frame", ev.Frame,
	)
	if err := g.output.WriteSelection(ev); err != nil {
		slog.Error("failed to write selection event", "error", err)
	}
}
