// Package store persists run history: per-run metadata plus the
// population series. Grid contents are never written.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/golife/internal/sim"
)

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
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Timestamp   time.Time `json:"timestamp"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Seed        int64     `json:"seed"`
	Delay       float64   `json:"delay"`
	Generations int       `json:"generations"`
	Population  int       `json:"population"`
	Reason      string    `json:"reason"`
}

// Save writes metadata.json and population.csv for a completed run and
// returns the run id. The label names the starting setup (pattern name,
// "random", or preset).
func (s *Store) Save(label string, width, height int, seed int64, delay float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", label, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Label:       label,
		Timestamp:   time.Now(),
		Width:       width,
		Height:      height,
		Seed:        seed,
		Delay:       delay,
		Generations: result.Generations,
		Population:  result.Population,
		Reason:      string(result.Reason),
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "population.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"generation", "population"}); err != nil {
		return "", err
	}
	for i, pop := range result.PopulationHistory {
		row := []string{strconv.Itoa(i), strconv.Itoa(pop)}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads the population series back as one value per
// generation, index 0 being the initial frame.
func (s *Store) LoadSeries(runID string) ([]float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "population.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []float64{}, nil
	}

	series := make([]float64, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		if len(records[i]) < 2 {
			continue
		}
		pop, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			continue
		}
		series = append(series, pop)
	}

	return series, nil
}
