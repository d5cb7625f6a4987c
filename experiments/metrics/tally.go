package metrics

import (
	"cmp"
	"slices"
)

// Tally counts wins per player name across rounds.
type Tally map[string]int

type TallyEntry struct {
	Player string
	Wins   int
}

// Add records a win. Draws ("" winner) are counted under the empty name.
func (t Tally) Add(winner string) {
	t[winner]++
}

// Sorted lists the entries by ascending wins, then name.
func (t Tally) Sorted() []TallyEntry {
	entries := make([]TallyEntry, 0, len(t))
	for player, wins := range t {
		entries = append(entries, TallyEntry{Player: player, Wins: wins})
	}
	slices.SortFunc(entries, func(a, b TallyEntry) int {
		if c := cmp.Compare(a.Wins, b.Wins); c != 0 {
			return c
		}
		return cmp.Compare(a.Player, b.Player)
	})
	return entries
}
