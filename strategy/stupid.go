package strategy

import (
	"iter"

	"riskparity/game"
	"riskparity/random"
	"riskparity/utils"
)

const StupidName = "StupidAI"

// StupidAI plays uniformly at random: random placements, random reinforcements
// over its borders, and an attack on every weaker neighbour it can reach.
type StupidAI struct {
	Base
}

func NewStupid(player string, board game.View, rng *random.Source) Strategy {
	return &StupidAI{Base: NewBase(player, board, rng)}
}

func (s *StupidAI) Name() string {
	return StupidName
}

func (s *StupidAI) InitialPlacement(candidates []string, _ int) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}
	return random.Pick(s.Rng, candidates), true
}

func (s *StupidAI) Reinforce(available int) []Allocation {
	border := s.Borders()
	if len(border) == 0 {
		border = s.Board.Owned(s.Player)
	}
	if len(border) == 0 || available <= 0 {
		return nil
	}
	picks := make([]string, available)
	for i := range picks {
		picks[i] = random.Pick(s.Rng, border)
	}
	territories, counts := utils.CountOrdered(picks)
	allocations := make([]Allocation, len(territories))
	for i, t := range territories {
		allocations[i] = Allocation{Territory: t, Forces: counts[i]}
	}
	return allocations
}

// Attack checks forces as it goes, so earlier conquests shape later plans.
func (s *StupidAI) Attack() iter.Seq[AttackPlan] {
	return func(yield func(AttackPlan) bool) {
		for _, src := range s.Board.Owned(s.Player) {
			for _, dst := range s.Neighbours(src) {
				if s.Board.Owner(dst) == s.Player || s.Board.Owner(src) != s.Player {
					continue
				}
				if s.Board.Forces(src) <= s.Board.Forces(dst) {
					continue
				}
				if !yield(AttackPlan{Source: src, Target: dst}) {
					return
				}
			}
		}
	}
}
