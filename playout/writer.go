package playout

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer stores the results of a run as CSV files in a directory named after
// the run.
type Writer struct {
	baseDir string
}

func NewWriter(root string, summary Summary) (*Writer, error) {
	baseDir := filepath.Join(root, summary.Run.String())
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

func (w *Writer) write(name string, header []string, rows [][]string) error {
	path := filepath.Join(w.baseDir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write %s header: %w", name, err)
	}
	err = writer.WriteAll(rows)
	if err != nil {
		return fmt.Errorf("failed to write %s rows: %w", name, err)
	}
	return nil
}

func (w *Writer) WriteSummary(s Summary) error {
	header := []string{"run", "game", "workers", "playouts", "moves", "draws", "unfinished", "start_time", "duration", "playouts_per_second"}
	row := []string{
		s.Run.String(),
		s.Game,
		strconv.Itoa(s.Workers),
		strconv.Itoa(s.Playouts),
		strconv.Itoa(s.Moves),
		strconv.Itoa(s.Draws),
		strconv.Itoa(s.Unfinished),
		s.StartTime.UTC().Format(time.RFC3339),
		s.Duration.String(),
		strconv.FormatFloat(s.PlayoutsPerSecond(), 'f', 2, 64),
	}
	for p := 1; p < len(s.Wins); p++ {
		header = append(header, fmt.Sprintf("wins_p%d", p))
		row = append(row, strconv.Itoa(s.Wins[p]))
	}
	return w.write("summary.csv", header, [][]string{row})
}

func (w *Writer) WriteRecords(records []Record) error {
	header := []string{"id", "seed", "finished", "winner", "moves", "duration"}
	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, []string{
			strconv.Itoa(record.ID),
			strconv.FormatUint(record.Seed, 10),
			strconv.FormatBool(record.Finished),
			strconv.Itoa(record.Winner),
			strconv.Itoa(record.Moves),
			record.Duration.String(),
		})
	}
	return w.write("playouts.csv", header, rows)
}
