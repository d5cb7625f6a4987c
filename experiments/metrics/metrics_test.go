package metrics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting events", func(t *testing.T) {
		c := NewCollector()
		c.Start(42, "BRAVO")
		for _, event := range []string{"turn", "combat", "combat", "conquer", "eliminate", "warning", "reinforce"} {
			c.Observe(event)
		}
		m := c.Complete("BRAVO", 17)

		require.Equal(t, int64(42), m.Seed)
		require.Equal(t, "BRAVO", m.StartingPlayer)
		require.Equal(t, "BRAVO", m.Winner)
		require.Equal(t, 1, m.Turns)
		require.Equal(t, 2, m.CombatRounds)
		require.Equal(t, 1, m.Conquests)
		require.Equal(t, 1, m.Eliminations)
		require.Equal(t, 1, m.Warnings)
		require.Equal(t, 17, m.RandomCalls)
		require.False(t, m.EndTime.Before(m.StartTime))
	})

	t.Run("dummy collector only keeps the winner", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(1, "ALPHA")
		c.Observe("combat")
		require.Equal(t, GameMetric{Winner: "ALPHA"}, c.Complete("ALPHA", 3))
	})
}

func TestTally(t *testing.T) {
	tally := Tally{}
	for _, w := range []string{"ALPHA", "BRAVO", "BRAVO", "CHARLIE", "ALPHA", "BRAVO"} {
		tally.Add(w)
	}
	require.Equal(t, []TallyEntry{{"CHARLIE", 1}, {"ALPHA", 2}, {"BRAVO", 3}}, tally.Sorted())
}

func TestWriter(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	now := time.Now()
	records := []GameRecord{{ID: 0, GameMetric: GameMetric{Seed: 5, Winner: "ALPHA", StartTime: now, EndTime: now, Turns: 12}}}
	require.NoError(t, w.WriteGameRecords(records))

	rows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, rows, 2)
	require.Equal(t, "id", rows[0][0])
	require.Equal(t, []string{"0", "5", "", "ALPHA"}, rows[1][:4])
	require.Equal(t, "12", rows[1][7])

	tally := Tally{"ALPHA": 2, "BRAVO": 1}
	require.NoError(t, w.WriteWinTally(tally, map[string]string{"ALPHA": "DeterministicAI", "BRAVO": "StupidAI"}))
	rows = readCSV(t, filepath.Join(w.Dir(), "win_tally.csv"))
	require.Equal(t, [][]string{
		{"player", "strategy", "wins"},
		{"BRAVO", "StupidAI", "1"},
		{"ALPHA", "DeterministicAI", "2"},
	}, rows)
}

func TestWriterReportsFlushFailures(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("needs /dev/full")
	}
	dir := t.TempDir()
	for _, name := range []string{"game_records.csv", "win_tally.csv"} {
		require.NoError(t, os.Symlink("/dev/full", filepath.Join(dir, name)))
	}
	w := &Writer{baseDir: dir}

	err := w.WriteGameRecords([]GameRecord{{ID: 1, GameMetric: GameMetric{Winner: "ALPHA"}}})
	require.ErrorContains(t, err, "failed to flush game records")

	require.Error(t, w.WriteWinTally(Tally{"ALPHA": 1}, nil))
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}
