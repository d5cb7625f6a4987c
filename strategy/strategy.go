// Package strategy defines the decision-making boundary of the engine and the
// built-in players: the fully deterministic reference strategy used for
// conformance runs and a uniform random one.
package strategy

import (
	"iter"

	"riskparity/game"
	"riskparity/random"
	"riskparity/trace"
)

// Allocation assigns forces to one owned territory during reinforcement.
type Allocation struct {
	Territory string
	Forces    int
}

// AttackPlan names a source and a target. Continue and Move may be nil, in which
// case the engine keeps attacking until outnumbered and moves the minimum legal amount.
type AttackPlan struct {
	Source   string
	Target   string
	Continue func(attacker, defender int) bool
	Move     func(remaining int) int
}

// MoveOrder is a single fortification transfer.
type MoveOrder struct {
	Source string
	Target string
	Forces int
}

// Strategy is bound to one player for a whole game. Every method is called
// synchronously by the engine; the board seen through game.View must not be mutated.
type Strategy interface {
	Name() string

	// Start is called once after the turn order is fixed.
	Start()

	// InitialPlacement picks one of candidates to receive one unit. Candidates are the
	// unclaimed territories while claiming, then the player's own territories.
	// ok is false when the strategy declines.
	InitialPlacement(candidates []string, remaining int) (territory string, ok bool)

	// Reinforce distributes available units. Allocations are applied in order.
	Reinforce(available int) []Allocation

	// Attack yields plans lazily; the sequence is consumed once per attack phase.
	Attack() iter.Seq[AttackPlan]

	// Freemove returns an optional fortification.
	Freemove() (MoveOrder, bool)

	// Event observes every record the engine emits, randomness draws excluded.
	Event(r trace.Record)

	// End is called once with the winner, or "" when the game ends without one.
	End(winner string)
}

// Factory builds a strategy for one player of one game.
type Factory func(player string, board game.View, rng *random.Source) Strategy

// Base carries the per-player handles and no-op defaults for the optional hooks.
type Base struct {
	Player string
	Board  game.View
	Rng    *random.Source
}

func NewBase(player string, board game.View, rng *random.Source) Base {
	return Base{Player: player, Board: board, Rng: rng}
}

func (b *Base) Start()                      {}
func (b *Base) End(string)                  {}
func (b *Base) Event(trace.Record)          {}
func (b *Base) Freemove() (MoveOrder, bool) { return MoveOrder{}, false }

// Borders returns the player's territories that touch an enemy, by name.
func (b *Base) Borders() []string {
	var borders []string
	for _, name := range b.Board.Owned(b.Player) {
		if b.Board.IsBorder(name) {
			borders = append(borders, name)
		}
	}
	return borders
}

// Neighbours returns the adjacency list of a territory in ascending order.
func (b *Base) Neighbours(territory string) []string {
	t, ok := b.Board.World().Territory(territory)
	if !ok {
		return nil
	}
	return t.Adjacent
}

// EnemyForces sums the forces on adjacent territories owned by other players.
func (b *Base) EnemyForces(territory string) int {
	total := 0
	for _, adj := range b.Neighbours(territory) {
		if owner := b.Board.Owner(adj); owner != "" && owner != b.Player {
			total += b.Board.Forces(adj)
		}
	}
	return total
}
