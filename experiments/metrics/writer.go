package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type GameRecord struct {
	ID int
	GameMetric
}

type Writer struct {
	baseDir string
}

// NewWriter creates a subfolder of root named by the current timestamp.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, timestamp)
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

func (w *Writer) WriteGameRecords(records []GameRecord) error {
	// Create a file
	path := filepath.Join(w.baseDir, "game_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create game records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	// Write header
	header := []string{"id", "seed", "starting_player", "winner", "start_time", "end_time", "duration",
		"turns", "combat_rounds", "conquests", "eliminations", "warnings", "random_calls"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write game records header: %w", err)
	}

	// Write each row
	for _, record := range records {
		row := []string{
			strconv.Itoa(record.ID),
			strconv.FormatInt(record.Seed, 10),
			record.StartingPlayer,
			record.Winner,
			record.StartTime.Format(time.RFC3339),
			record.EndTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.Itoa(record.Turns),
			strconv.Itoa(record.CombatRounds),
			strconv.Itoa(record.Conquests),
			strconv.Itoa(record.Eliminations),
			strconv.Itoa(record.Warnings),
			strconv.Itoa(record.RandomCalls),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write game record row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush game records: %w", err)
	}
	return nil
}

// WriteWinTally writes one row per player with its strategy name and win count.
func (w *Writer) WriteWinTally(tally Tally, strategies map[string]string) error {
	path := filepath.Join(w.baseDir, "win_tally.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create win tally file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)

	err = writer.Write([]string{"player", "strategy", "wins"})
	if err != nil {
		return fmt.Errorf("failed to write win tally header: %w", err)
	}

	for _, entry := range tally.Sorted() {
		row := []string{entry.Player, strategies[entry.Player], strconv.Itoa(entry.Wins)}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write win tally row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
