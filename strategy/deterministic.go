package strategy

import (
	"cmp"
	"iter"
	"slices"

	"github.com/rs/zerolog/log"

	"riskparity/game"
	"riskparity/random"
	"riskparity/trace"
)

// DeterministicName is the registry name of the reference strategy.
const DeterministicName = "DeterministicAI"

// DeterministicAI never draws randomness, so two engines running it from the same
// seed must agree event for event. Ties are always broken by territory name.
type DeterministicAI struct {
	Base
}

func NewDeterministic(player string, board game.View, rng *random.Source) Strategy {
	return &DeterministicAI{Base: NewBase(player, board, rng)}
}

func (d *DeterministicAI) Name() string {
	return DeterministicName
}

func (d *DeterministicAI) Start() {
	log.Debug().Msgf("%s: %s starting with %d territories on the map", d.Player, DeterministicName, d.Board.World().Len())
}

func (d *DeterministicAI) End(winner string) {
	log.Debug().Msgf("%s: %s finished, winner %q", d.Player, DeterministicName, winner)
}

func (d *DeterministicAI) Event(r trace.Record) {
	log.Trace().Msgf("%s: event %s", d.Player, r.Event)
}

func (d *DeterministicAI) InitialPlacement(candidates []string, _ int) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	return slices.Min(candidates), true
}

// reinforceTargets orders border territories (or every owned one if none border an
// enemy) by most threatened, then strongest, then name.
func (d *DeterministicAI) reinforceTargets() []string {
	targets := d.Borders()
	if len(targets) == 0 {
		targets = d.Board.Owned(d.Player)
	}
	threat := make(map[string]int, len(targets))
	for _, t := range targets {
		threat[t] = d.EnemyForces(t)
	}
	slices.SortFunc(targets, func(a, b string) int {
		if c := cmp.Compare(threat[b], threat[a]); c != 0 {
			return c
		}
		if c := cmp.Compare(d.Board.Forces(b), d.Board.Forces(a)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return targets
}

// Reinforce hands out units one at a time, round-robin over the ordered targets.
func (d *DeterministicAI) Reinforce(available int) []Allocation {
	targets := d.reinforceTargets()
	if len(targets) == 0 {
		return nil
	}
	allocations := make([]Allocation, min(available, len(targets)))
	for i := range available {
		slot := i % len(targets)
		allocations[slot].Territory = targets[slot]
		allocations[slot].Forces++
	}
	return allocations
}

// Attack plans every attack up front from the forces at the start of the phase:
// each enemy neighbour at least two units weaker is targeted once, sources and
// targets taken in name order.
func (d *DeterministicAI) Attack() iter.Seq[AttackPlan] {
	var plans []AttackPlan
	targeted := make(map[string]bool)
	for _, src := range d.Board.Owned(d.Player) {
		for _, dst := range d.Neighbours(src) {
			if d.Board.Owner(dst) == d.Player || targeted[dst] {
				continue
			}
			if d.Board.Forces(src) <= d.Board.Forces(dst)+1 {
				continue
			}
			plans = append(plans, AttackPlan{
				Source:   src,
				Target:   dst,
				Continue: func(atk, def int) bool { return atk > def },
				Move:     func(remaining int) int { return min(remaining-1, 3) },
			})
			targeted[dst] = true
		}
	}
	return slices.Values(plans)
}
