package bench

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"slices"
	"sync"
	"time"

	"github.com/san-kum/particlelab/internal/clock"
	"github.com/san-kum/particlelab/internal/effect"
	"github.com/san-kum/particlelab/internal/input"
	"github.com/san-kum/particlelab/internal/runtime"
	"github.com/san-kum/particlelab/internal/surface"
)

type Config struct {
	Effect        effect.ID
	Width, Height float64
	Ticks         int
	Seed          int64
	// ClickEvery fires a synthetic click every n ticks; 0 disables clicks.
	ClickEvery int
	// Sweep moves the pointer along a Lissajous path every tick.
	Sweep bool
}

type Sample struct {
	Tick      int
	Particles int
	Circles   int
	Lines     int
	Texts     int
}

type Result struct {
	Effect  effect.ID
	Samples []Sample
	Elapsed time.Duration
	// Frame holds the draw calls of the last completed tick.
	Frame []surface.Op
}

// Run drives one effect headless for cfg.Ticks frames on a recording surface.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	rec := surface.NewRecorder(cfg.Width, cfg.Height)
	frame := clock.NewFrame()
	src := input.NewSource(input.Identity())
	epoch := time.Unix(0, 0)
	tick := 0

	m, err := runtime.New(rec, frame, runtime.Options{
		Input: src,
		Rand:  rand.New(rand.NewSource(cfg.Seed)),
		// frame-locked clock keeps runs reproducible
		Now: func() time.Time { return epoch.Add(time.Duration(tick) * time.Second / 60) },
	})
	if err != nil {
		return nil, err
	}
	if err := m.Switch(cfg.Effect); err != nil {
		return nil, err
	}
	defer m.Stop()

	result := &Result{Effect: cfg.Effect, Samples: make([]Sample, 0, cfg.Ticks)}
	start := time.Now()

	for tick = 0; tick < cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			result.Elapsed = time.Since(start)
			return result, ctx.Err()
		default:
		}

		if cfg.Sweep {
			x, y := sweep(tick, cfg.Width, cfg.Height)
			src.Emit(input.Raw{Kind: input.Move, X: x, Y: y})
		}
		if cfg.ClickEvery > 0 && tick%cfg.ClickEvery == 0 {
			src.Emit(input.Raw{Kind: input.Click, X: cfg.Width / 2, Y: cfg.Height / 2})
		}

		frame.Fire()

		counts := rec.Count()
		result.Samples = append(result.Samples, Sample{
			Tick:      tick,
			Particles: m.Particles().Len(),
			Circles:   counts[surface.OpCircle],
			Lines:     counts[surface.OpLine],
			Texts:     counts[surface.OpText],
		})
	}

	result.Elapsed = time.Since(start)
	result.Frame = slices.Clone(rec.Ops)
	return result, nil
}

// RunAll runs every config on its own goroutine. Results keep the order of
// cfgs; the first error in that order is returned.
func RunAll(ctx context.Context, cfgs []Config) ([]*Result, error) {
	results := make([]*Result, len(cfgs))
	errs := make([]error, len(cfgs))

	var wg sync.WaitGroup
	for i, cfg := range cfgs {
		i, cfg := i, cfg
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = Run(ctx, cfg)
		}()
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

func validateConfig(cfg Config) error {
	if !cfg.Effect.Valid() {
		return fmt.Errorf("unknown effect: %s", cfg.Effect)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("surface size must be positive, got %.0fx%.0f", cfg.Width, cfg.Height)
	}
	if cfg.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.ClickEvery < 0 {
		return fmt.Errorf("click interval must not be negative, got %d", cfg.ClickEvery)
	}
	return nil
}

func sweep(tick int, w, h float64) (float64, float64) {
	t := float64(tick) / 60
	return w/2 + math.Sin(t*1.3)*w/3, h/2 + math.Sin(t*2.1)*h/3
}

// Series extracts one metric per sample, for plotting.
func (r *Result) Series(metric func(Sample) int) []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = float64(metric(s))
	}
	return out
}

func (r *Result) Peak(metric func(Sample) int) int {
	peak := 0
	for _, s := range r.Samples {
		peak = max(peak, metric(s))
	}
	return peak
}

// PerTick is the mean wall time of one frame.
func (r *Result) PerTick() time.Duration {
	if len(r.Samples) == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(len(r.Samples))
}

// Metrics summarises a run for storage and listing.
func (r *Result) Metrics() map[string]float64 {
	particles := func(s Sample) int { return s.Particles }
	circles := func(s Sample) int { return s.Circles }
	lines := func(s Sample) int { return s.Lines }
	texts := func(s Sample) int { return s.Texts }

	m := map[string]float64{
		"peak_particles": float64(r.Peak(particles)),
		"peak_circles":   float64(r.Peak(circles)),
		"peak_lines":     float64(r.Peak(lines)),
		"peak_texts":     float64(r.Peak(texts)),
		"tick_us":        float64(r.PerTick().Microseconds()),
	}
	if n := len(r.Samples); n > 0 {
		m["final_particles"] = float64(r.Samples[n-1].Particles)
	}
	return m
}
