package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"riskparity/experiments/metrics"
	"riskparity/game"
	"riskparity/meta"
	"riskparity/strategy"
	"riskparity/trace"
)

func classicGame(t *testing.T, players int, opts ...Option) (*Engine, *trace.Recorder) {
	t.Helper()
	bindings, err := strategy.ParsePlayers([]string{fmt.Sprintf("DeterministicAI*%d", players)}, meta.NAMES)
	require.NoError(t, err)

	rec := trace.NewRecorder()
	e, err := New(game.ClassicWorld(), bindings, append([]Option{WithTrace(rec), WithMaxTurns(5000)}, opts...)...)
	require.NoError(t, err)
	return e, rec
}

func canonical(records []trace.Record) []string {
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.Canonical()
	}
	return lines
}

func TestFullGame(t *testing.T) {
	t.Run("playing to a victory", func(t *testing.T) {
		e, rec := classicGame(t, 2, WithSeed(42), WithMetrics(metrics.NewCollector()))
		winner, m := e.Run()

		require.Equal(t, "BRAVO", winner)
		require.Equal(t, []string{"BRAVO", "ALPHA"}, e.TurnOrder())
		require.Equal(t, Terminal, e.Phase())

		records := rec.Records()
		require.Equal(t, "random", records[0].Event, "The turn order shuffle is the first draw")
		require.Equal(t, "shuffle", records[0].Get("call_type"))
		require.Equal(t, "turn_order", records[1].Event)

		last := records[len(records)-1]
		require.Equal(t, "victory", last.Event)
		require.Equal(t, "BRAVO", last.Get("player"))

		require.Equal(t, winner, m.Winner)
		require.Equal(t, "BRAVO", m.StartingPlayer)
		require.Equal(t, len(only(records, "random")), m.RandomCalls)
		require.Equal(t, len(only(records, "turn")), m.Turns)
		require.Equal(t, len(only(records, "conquer")), m.Conquests)
		require.Zero(t, m.Warnings, "The reference strategy never needs correcting")
		require.Len(t, only(records, "claim"), 42)
	})

	t.Run("same seed same trace", func(t *testing.T) {
		first, rec1 := classicGame(t, 3, WithSeed(7))
		second, rec2 := classicGame(t, 3, WithSeed(7))
		w1, _ := first.Run()
		w2, _ := second.Run()

		require.Equal(t, w1, w2)
		require.Equal(t, canonical(rec1.Records()), canonical(rec2.Records()))
	})

	t.Run("call ids are dense", func(t *testing.T) {
		e, rec := classicGame(t, 2, WithSeed(123), WithDeal(true))
		e.Run()
		for i, r := range only(rec.Records(), "random") {
			require.Equal(t, i, r.Get("call_id"))
		}
	})

	t.Run("running twice", func(t *testing.T) {
		e, _ := classicGame(t, 2, WithSeed(1), WithMaxTurns(2))
		e.Run()
		require.Panics(t, func() { e.Run() })
	})
}

func TestInvariants(t *testing.T) {
	for _, deal := range []bool{false, true} {
		name := "choosing territories"
		if deal {
			name = "dealing territories"
		}
		t.Run(name, func(t *testing.T) {
			var e *Engine
			ledger := map[string]int{}
			checked := 0
			observe := func(r trace.Record) {
				switch r.Event {
				case "claim", "reinforce":
					ledger[r.Get("player").(string)] += r.Get("forces").(int)
				case "combat":
					ledger[r.Get("attacker").(string)] -= r.Get("attacker_losses").(int)
					ledger[r.Get("defender").(string)] -= r.Get("defender_losses").(int)
				case "turn":
					checked++
					board := e.Board()
					for _, territory := range board.World().Territories() {
						require.NotEmpty(t, board.Owner(territory), "Every territory is owned once play starts")
						require.GreaterOrEqual(t, board.Forces(territory), 1)
					}
					for p, total := range ledger {
						require.Equal(t, total, e.board.TotalForces(p), "Forces of %s should be conserved", p)
					}
				}
			}

			e, _ = classicGame(t, 3, WithSeed(42), WithDeal(deal), WithObserver(observe))
			e.Run()
			require.Positive(t, checked)
		})
	}

	t.Run("starting forces", func(t *testing.T) {
		var e *Engine
		totals := map[string]int{}
		observe := func(r trace.Record) {
			if r.Event == "turn" && len(totals) == 0 {
				for _, p := range e.TurnOrder() {
					totals[p] = e.board.TotalForces(p)
				}
			}
		}
		e, _ = classicGame(t, 2, WithSeed(7), WithDeal(true), WithObserver(observe))
		e.Run()
		require.Equal(t, map[string]int{"ALPHA": 31, "BRAVO": 31}, totals)
	})

	t.Run("eliminated players lose their turns", func(t *testing.T) {
		e, rec := classicGame(t, 3, WithSeed(42))
		e.Run()

		eliminated := map[string]bool{}
		for _, r := range rec.Records() {
			switch r.Event {
			case "eliminate":
				eliminated[r.Get("player").(string)] = true
			case "turn":
				require.False(t, eliminated[r.Get("player").(string)], "%s played after elimination", r.Get("player"))
			}
		}
		require.Len(t, eliminated, 2)
	})
}

func TestTurnCap(t *testing.T) {
	e, rec := classicGame(t, 2, WithSeed(42), WithMaxTurns(3))
	winner, m := e.Run()

	require.Empty(t, winner)
	require.Empty(t, m.Winner)
	records := rec.Records()
	last := records[len(records)-1]
	require.Equal(t, "draw", last.Event)
	require.Equal(t, 3, last.Get("turns"))
	require.Len(t, only(records, "turn"), 3)
}
