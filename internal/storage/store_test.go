package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/particlelab/internal/bench"
	"github.com/san-kum/particlelab/internal/effect"
)

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	cfg := bench.Config{Effect: effect.Matrix, Width: 400, Height: 300, Ticks: 2, Seed: 42, Sweep: true}
	result := &bench.Result{
		Effect: effect.Matrix,
		Samples: []bench.Sample{
			{Tick: 0, Particles: 20, Texts: 20},
			{Tick: 1, Particles: 20, Texts: 19},
		},
	}

	runID, err := st.Save(cfg, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Effect != effect.Matrix {
		t.Errorf("expected effect matrix, got '%s'", meta.Effect)
	}
	if meta.Seed != 42 || !meta.Sweep {
		t.Errorf("expected seed 42 with sweep, got %d/%v", meta.Seed, meta.Sweep)
	}
	if meta.Metrics["peak_texts"] != 20 {
		t.Errorf("expected peak_texts 20, got %f", meta.Metrics["peak_texts"])
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[1] != result.Samples[1] {
		t.Errorf("expected %+v, got %+v", result.Samples[1], samples[1])
	}
}

func TestStoreList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	for _, id := range []effect.ID{effect.Floating, effect.WaveField} {
		if _, err := st.Save(bench.Config{Effect: id, Ticks: 1}, &bench.Result{Effect: id}); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].Effect != effect.Floating {
		t.Errorf("expected oldest run first, got %s", runs[0].Effect)
	}
}

func TestStoreLoadMissing(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); err == nil {
		t.Error("expected error for missing run")
	}
	if _, err := st.LoadSamples("nope"); err == nil {
		t.Error("expected error for missing samples")
	}
}
