package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/golife/internal/sim"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return s
}

func sampleResult() *sim.Result {
	return &sim.Result{
		Generations:       3,
		Population:        4,
		Reason:            sim.ReasonCompleted,
		PopulationHistory: []int{4, 4, 4, 4},
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := newTestStore(t)

	runID, err := s.Save("glider", 50, 25, 42, 0.1, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "glider_") {
		t.Errorf("run id should start with the label, got %q", runID)
	}

	meta, err := s.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID || meta.Label != "glider" {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Width != 50 || meta.Height != 25 || meta.Seed != 42 {
		t.Errorf("setup fields not persisted: %+v", meta)
	}
	if meta.Generations != 3 || meta.Population != 4 {
		t.Errorf("result fields not persisted: %+v", meta)
	}
	if meta.Reason != string(sim.ReasonCompleted) {
		t.Errorf("expected reason %q, got %q", sim.ReasonCompleted, meta.Reason)
	}
}

func TestSaveFileLayout(t *testing.T) {
	s := newTestStore(t)

	runID, err := s.Save("random", 10, 10, 1, 0, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(s.baseDir, runID)
	for _, name := range []string{"metadata.json", "population.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); err != nil {
			t.Errorf("expected %s in run directory: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(runDir, "population.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != "generation,population" {
		t.Errorf("unexpected csv header %q", lines[0])
	}
	if len(lines) != 5 {
		t.Errorf("expected header plus 4 rows, got %d lines", len(lines))
	}
}

func TestLoadSeries(t *testing.T) {
	s := newTestStore(t)

	result := &sim.Result{
		Generations:       4,
		Population:        0,
		Reason:            sim.ReasonExtinct,
		PopulationHistory: []int{9, 6, 3, 1, 0},
	}
	runID, err := s.Save("random", 20, 20, 7, 0, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	series, err := s.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	want := []float64{9, 6, 3, 1, 0}
	if len(series) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(series))
	}
	for i := range want {
		if series[i] != want[i] {
			t.Errorf("series[%d] = %f, want %f", i, series[i], want[i])
		}
	}
}

func TestList(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Save("glider", 50, 25, 1, 0.1, sampleResult()); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save("random", 80, 30, 2, 0.05, sampleResult()); err != nil {
		t.Fatal(err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}

	labels := map[string]bool{}
	for _, run := range runs {
		labels[run.Label] = true
	}
	if !labels["glider"] || !labels["random"] {
		t.Errorf("expected glider and random runs, got %v", labels)
	}
}

func TestListEmptyBaseDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "never-created"))
	runs, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestListSkipsStrayFiles(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(filepath.Join(s.baseDir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(s.baseDir, "broken_run"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("stray entries should be skipped, got %d runs", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Load("ghost_0"); err == nil {
		t.Error("expected error for unknown run id")
	}
}
