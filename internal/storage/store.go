package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/gni/internal/config"
	"github.com/san-kum/gni/internal/experiment"
)

var ErrRunNotFound = errors.New("storage: run not found")

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
	ID          string             `json:"id"`
	Model       string             `json:"model"`
	Timestamp   time.Time          `json:"timestamp"`
	Method      string             `json:"method"`
	Composition string             `json:"composition"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	Sample      int                `json:"sample"`
	Params      map[string]float64 `json:"params,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes metadata.json and states.csv under a fresh run directory and
// returns the run id.
func (s *Store) Save(cfg *config.Config, result *experiment.Result) (string, error) {
	now := time.Now()
	runID, runDir, err := s.createRunDir(cfg.Model, now)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Model:       cfg.Model,
		Timestamp:   now,
		Method:      result.Method,
		Composition: result.Composition,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Steps:       result.Steps,
		Sample:      cfg.Sample,
		Params:      cfg.Params,
		Metrics:     result.Metrics,
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

	csvFile, err := os.Create(filepath.Join(runDir, "states.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeStates(csvFile, result); err != nil {
		return "", err
	}
	return runID, nil
}

// createRunDir picks the id <model>_<unix>, suffixed when a run with that id
// already exists.
func (s *Store) createRunDir(model string, now time.Time) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	base := fmt.Sprintf("%s_%d", model, now.Unix())
	runID := base
	for i := 2; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
}

func writeStates(out io.Writer, result *experiment.Result) error {
	w := csv.NewWriter(out)

	if len(result.States) > 0 {
		header := []string{"time"}
		for i := range result.States[0] {
			header = append(header, fmt.Sprintf("x%d", i))
		}
		if err := w.Write(header); err != nil {
			return err
		}
	}

	for i, state := range result.States {
		row := make([]string, 0, len(state)+1)
		row = append(row, strconv.FormatFloat(result.Times[i], 'g', -1, 64))
		for _, val := range state {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// List returns the metadata of every stored run, oldest first.
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

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "states.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([][]float64, 0, len(records)-1)

	for i, record := range records[1:] {
		if len(record) == 0 {
			continue
		}

		row := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("run %s: row %d: %w", runID, i+1, err)
			}
			row[j] = v
		}
		times = append(times, row[0])
		states = append(states, row[1:])
	}

	return states, times, nil
}

type ExportData struct {
	Model       string             `json:"model"`
	Method      string             `json:"method"`
	Composition string             `json:"composition"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Steps       int                `json:"steps"`
	Times       []float64          `json:"times"`
	States      [][]float64        `json:"states"`
	Metrics     map[string]float64 `json:"metrics"`
}

// ExportJSON writes the full sampled trajectory of a run as indented JSON.
func ExportJSON(w io.Writer, cfg *config.Config, result *experiment.Result) error {
	data := ExportData{
		Model:       cfg.Model,
		Method:      result.Method,
		Composition: result.Composition,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Steps:       result.Steps,
		Times:       result.Times,
		States:      make([][]float64, len(result.States)),
		Metrics:     result.Metrics,
	}

	for i, s := range result.States {
		data.States[i] = s
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
