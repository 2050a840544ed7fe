package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/sakura/config"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if om != nil {
		t.Fatal("expected nil manager for empty dir")
	}
	if err := om.WritePerf(PerfStats{}, 1); err != nil {
		t.Errorf("expected nil-safe WritePerf, got %v", err)
	}
	if err := om.WriteSelection(SelectionEvent{}); err != nil {
		t.Errorf("expected nil-safe WriteSelection, got %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("expected nil-safe Close, got %v", err)
	}
}

func TestOutputManager_WritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := int64(1); i <= 2; i++ {
		if err := om.WritePerf(PerfStats{AvgFrame: 1000}, i*600); err != nil {
			t.Fatalf("WritePerf: %v", err)
		}
	}
	ev := SelectionEvent{Frame: 7, Time: 0.5, Action: "select", Index: 3, Author: "Rumi", X: 1, Z: 2}
	if err := om.WriteSelection(ev); err != nil {
		t.Fatalf("WriteSelection: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	perf, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(perf)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "frame,avg_frame_us") {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "1200,") {
		t.Errorf("unexpected second row: %q", lines[2])
	}

	sel, err := os.ReadFile(filepath.Join(dir, "selection.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(sel), "select,3,Rumi") {
		t.Errorf("expected selection row, got %q", sel)
	}
}

func TestOutputManager_WriteConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	om, err := NewOutputManager(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer om.Close()

	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if _, err := os.Stat(filepath.Join(om.Dir(), "config.yaml")); err != nil {
		t.Errorf("expected config.yaml, got %v", err)
	}
}
