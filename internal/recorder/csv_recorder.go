// internal/recorder/csv_recorder.go
package recorder

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/unclebandit/coldreach-backend/internal/model"
)

// CSVRecorder writes each run's outcomes as one batch into a uniquely
// named results file under Dir. The same directory doubles as a history
// source for later runs.
type CSVRecorder struct {
	Dir string
}

func NewCSVRecorder(dir string) *CSVRecorder {
	return &CSVRecorder{Dir: dir}
}

func (r *CSVRecorder) Persist(outcomes []model.RunOutcome) (string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create results dir: %w", err)
	}

	runID := uuid.NewString()[:8]
	name := fmt.Sprintf("results_%s_%s.csv", time.Now().Format("20060102_150405"), runID)
	path := filepath.Join(r.Dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create results file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"company", "email", "status", "timestamp"}); err != nil {
		return "", err
	}
	for _, o := range outcomes {
		if err := w.Write([]string{o.CompanyName, o.Email, o.Status, o.Timestamp}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	log.Printf("Results saved to %s\n", path)
	return path, nil
}

// ResultsDirSource reads every results_*.csv file in Dir back as
// outcome records. Files that cannot be read or parsed are skipped;
// the history index is best effort.
type ResultsDirSource struct {
	Dir string
}

func NewResultsDirSource(dir string) *ResultsDirSource {
	return &ResultsDirSource{Dir: dir}
}

func (s *ResultsDirSource) LoadOutcomes() ([]model.RunOutcome, error) {
	pattern := filepath.Join(s.Dir, "results_*.csv")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	outcomes := []model.RunOutcome{}
	for _, file := range files {
		rows, err := readResultsFile(file)
		if err != nil {
			log.Println("skipping unreadable results file:", file, err)
			continue
		}
		outcomes = append(outcomes, rows...)
	}
	return outcomes, nil
}

func readResultsFile(path string) ([]model.RunOutcome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Column order can vary across tool versions; map by header.
	idx := map[string]int{}
	for i, col := range records[0] {
		idx[col] = i
	}

	field := func(record []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	outcomes := make([]model.RunOutcome, 0, len(records)-1)
	for _, record := range records[1:] {
		outcomes = append(outcomes, model.RunOutcome{
			CompanyName: field(record, "company"),
			Email:       field(record, "email"),
			Status:      field(record, "status"),
			Timestamp:   field(record, "timestamp"),
		})
	}
	return outcomes, nil
}
