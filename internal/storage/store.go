package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/poitune/internal/analysis"
	"github.com/san-kum/poitune/internal/config"
	"github.com/san-kum/poitune/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
)

var traceHeader = []string{"t", "side", "hand_x", "hand_y", "poi_x", "poi_y"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// SideTrace is the sampled path of one side.
type SideTrace struct {
	Side    string
	Samples []analysis.Sample
}

type RunMetadata struct {
	ID        string         `json:"id"`
	Scenario  string         `json:"scenario"`
	Timestamp time.Time      `json:"timestamp"`
	Duration  float64        `json:"duration"`
	Step      float64        `json:"step"`
	Sides     []string       `json:"sides"`
	Petals    map[string]int `json:"petals,omitempty"`
	Params    config.Params  `json:"params"`
}

// Slug turns a scenario name into a lowercase file name. Empty names become "custom".
func Slug(name string) string {
	if name == "" {
		return "custom"
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// Save writes a new run directory holding metadata.json and trace.csv.
func (s *Store) Save(scenario string, duration, step float64, params config.Params, traces []SideTrace) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", Slug(scenario), now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scenario:  scenario,
		Timestamp: now,
		Duration:  duration,
		Step:      step,
		Params:    params,
		Petals:    make(map[string]int),
	}

	for _, tr := range traces {
		meta.Sides = append(meta.Sides, tr.Side)
	}
	for _, side := range []struct {
		name string
		rot  config.Rotation
	}{{"left", params.Left.Rotation}, {"right", params.Right.Rotation}} {
		if n, ok := analysis.Petals(side.rot); ok {
			meta.Petals[side.name] = n
		}
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, traceFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeTrace(csvFile, traces); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func writeTrace(out io.Writer, traces []SideTrace) error {
	w := csv.NewWriter(out)

	if err := w.Write(traceHeader); err != nil {
		return err
	}

	for _, tr := range traces {
		for _, smp := range tr.Samples {
			row := []string{
				formatFloat(smp.T),
				tr.Side,
				formatFloat(smp.Hand.X),
				formatFloat(smp.Hand.Y),
				formatFloat(smp.Poi.X),
				formatFloat(smp.Poi.Y),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrace reads a run's samples back, grouped by side in file order. Malformed rows
// are skipped.
func (s *Store) LoadTrace(runID string) ([]SideTrace, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var traces []SideTrace
	index := make(map[string]int)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) != len(traceHeader) {
			continue
		}

		vals := make([]float64, 0, 5)
		for _, j := range []int{0, 2, 3, 4, 5} {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				break
			}
			vals = append(vals, v)
		}
		if len(vals) != 5 {
			continue
		}

		side := record[1]
		idx, ok := index[side]
		if !ok {
			idx = len(traces)
			index[side] = idx
			traces = append(traces, SideTrace{Side: side})
		}
		traces[idx].Samples = append(traces[idx].Samples, analysis.Sample{
			T:    vals[0],
			Hand: dynamo.Vec2{X: vals[1], Y: vals[2]},
			Poi:  dynamo.Vec2{X: vals[3], Y: vals[4]},
		})
	}

	return traces, nil
}

// CopyTrace streams a run's trace.csv to w.
func (s *Store) CopyTrace(runID string, w io.Writer) error {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(w, file)
	return err
}
