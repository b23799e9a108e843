package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/san-kum/particlelab/internal/bench"
	"github.com/san-kum/particlelab/internal/effect"
)

// Store keeps bench runs on disk, one directory per run holding
// metadata.json and samples.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Effect     effect.ID          `json:"effect"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	Ticks      int                `json:"ticks"`
	ClickEvery int                `json:"click_every"`
	Sweep      bool               `json:"sweep"`
	Metrics    map[string]float64 `json:"metrics"`
}

var sampleHeader = []string{"tick", "particles", "circles", "lines", "texts"}

func (s *Store) Save(cfg bench.Config, result *bench.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", cfg.Effect, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Effect:     cfg.Effect,
		Timestamp:  now,
		Seed:       cfg.Seed,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Ticks:      cfg.Ticks,
		ClickEvery: cfg.ClickEvery,
		Sweep:      cfg.Sweep,
		Metrics:    result.Metrics(),
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(sampleHeader); err != nil {
		return "", err
	}
	for _, sm := range result.Samples {
		row := []string{
			strconv.Itoa(sm.Tick),
			strconv.Itoa(sm.Particles),
			strconv.Itoa(sm.Circles),
			strconv.Itoa(sm.Lines),
			strconv.Itoa(sm.Texts),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	slices.SortFunc(runs, func(a, b RunMetadata) int { return a.Timestamp.Compare(b.Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]bench.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(sampleHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []bench.Sample{}, nil
	}

	samples := make([]bench.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		var v [5]int
		for j, field := range record {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, fmt.Errorf("samples.csv line %d: %w", i+2, err)
			}
			v[j] = n
		}
		samples = append(samples, bench.Sample{Tick: v[0], Particles: v[1], Circles: v[2], Lines: v[3], Texts: v[4]})
	}

	return samples, nil
}
