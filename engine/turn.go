package engine

import (
	"slices"

	"riskparity/strategy"
	"riskparity/trace"
)

// reinforcements applies the strategy's allocation in listed order, clamping to the
// budget; whatever is left goes to the player's first territory by name.
func (e *Engine) reinforcements(p *player) {
	available := e.rules.Reinforcements(e.board.Count(p.name), e.board.AreaBonus(p.name))
	left := available

	for _, a := range p.strategy.Reinforce(available) {
		switch {
		case a.Forces == 0:
			continue
		case a.Forces < 0:
			e.warn(p, "negative allocation", trace.Fields{"territory": a.Territory, "forces": a.Forces})
			continue
		case e.board.Owner(a.Territory) != p.name:
			e.warn(p, "allocation to a territory not owned", trace.Fields{"territory": a.Territory, "forces": a.Forces})
			continue
		}
		forces := a.Forces
		if forces > left {
			e.warn(p, "allocation exceeds available forces", trace.Fields{
				"territory": a.Territory, "requested": a.Forces, "available": left,
			})
			forces = left
		}
		if forces == 0 {
			continue
		}
		e.reinforce(p, a.Territory, forces)
		left -= forces
	}

	if left > 0 {
		e.reinforce(p, e.board.Owned(p.name)[0], left)
	}
}

// attacks consumes the plan sequence. A plan whose target was captured earlier this
// phase is skipped. A plan from a source with a single unit fights no rounds and is
// recorded as a defeat.
func (e *Engine) attacks(p *player) {
	captured := make(map[string]bool)
	for plan := range p.strategy.Attack() {
		if e.alivePlayers() == 1 {
			return
		}
		if captured[plan.Target] {
			continue
		}
		if reason := e.checkPlan(p, plan); reason != "" {
			e.warn(p, reason, trace.Fields{"src": plan.Source, "dst": plan.Target})
			continue
		}
		if e.combat(p, plan) {
			captured[plan.Target] = true
		}
	}
}

func (e *Engine) checkPlan(p *player, plan strategy.AttackPlan) string {
	switch {
	case e.board.Owner(plan.Source) != p.name:
		return "attack from a territory not owned"
	case e.board.Owner(plan.Target) == p.name:
		return "attack on an own territory"
	case e.board.Owner(plan.Target) == "":
		return "attack on an unknown territory"
	case !e.board.World().AreAdjacent(plan.Source, plan.Target):
		return "attack on a territory not adjacent"
	}
	return ""
}

// Attack until outnumbered.
func defaultContinue(attacker, defender int) bool {
	return attacker >= defender
}

func (e *Engine) roll(n int) []int {
	rolls := make([]int, n)
	for i := range rolls {
		rolls[i] = e.rng.RandInt(1, e.rules.DieSides())
	}
	slices.SortFunc(rolls, func(a, b int) int { return b - a })
	return rolls
}

// combat resolves rounds until the defender falls, the attacker is down to one
// unit, or the plan says stop. Every round removes at least one unit, so it ends.
// It reports whether the target was conquered.
func (e *Engine) combat(p *player, plan strategy.AttackPlan) bool {
	src, dst := plan.Source, plan.Target
	defender := e.board.Owner(dst)
	cont := plan.Continue
	if cont == nil {
		cont = defaultContinue
	}

	atk, def := e.board.Forces(src), e.board.Forces(dst)
	initial := [2]int{atk, def}
	for atk > 1 && def > 0 && cont(atk, def) {
		atkRolls := e.roll(e.rules.AttackDice(atk))
		defRolls := e.roll(e.rules.DefendDice(def))
		atkLoss, defLoss := e.rules.DetermineAttackOutcome(atkRolls, defRolls)
		atk -= atkLoss
		def -= defLoss
		e.emit("combat", trace.Fields{
			"attacker":        p.name,
			"defender":        defender,
			"src":             src,
			"dst":             dst,
			"attack_dice":     atkRolls,
			"defend_dice":     defRolls,
			"attacker_losses": atkLoss,
			"defender_losses": defLoss,
		})
	}

	fields := trace.Fields{"attacker": p.name, "defender": defender, "src": src, "dst": dst, "initial": initial}
	if def > 0 {
		e.board.SetForces(src, atk)
		e.board.SetForces(dst, def)
		fields["final"] = [2]int{atk, def}
		e.emit("defeat", fields)
		return false
	}

	move := e.conquestMove(p, plan, atk)
	e.board.SetForces(src, atk-move)
	e.board.Capture(dst, p.name, move)
	fields["final"] = [2]int{atk - move, move}
	e.logger.Debug().Msgf("%s conquered %s from %s", p.name, dst, defender)
	e.emit("conquer", fields)

	if e.board.Count(defender) == 0 {
		e.logger.Debug().Msgf("%s eliminated by %s", defender, p.name)
		e.emit("eliminate", trace.Fields{"player": defender, "by": p.name})
	}
	return true
}

func (e *Engine) conquestMove(p *player, plan strategy.AttackPlan, remaining int) int {
	lo, hi := e.rules.ConquestMove(remaining)
	if plan.Move == nil {
		return lo
	}
	move := plan.Move(remaining)
	if move < lo || move > hi {
		e.warn(p, "conquest move out of range", trace.Fields{
			"src": plan.Source, "dst": plan.Target, "requested": move, "min": lo, "max": hi,
		})
		move = max(lo, min(move, hi))
	}
	return move
}

func (e *Engine) fortify(p *player) {
	order, ok := p.strategy.Freemove()
	if !ok || order.Forces == 0 {
		return
	}
	if order.Forces < 0 || e.board.Owner(order.Source) != p.name {
		e.warn(p, "illegal fortification", trace.Fields{"src": order.Source, "dst": order.Target, "forces": order.Forces})
		return
	}
	if err := e.board.MoveForces(order.Source, order.Target, order.Forces); err != nil {
		e.warn(p, err.Error(), trace.Fields{"src": order.Source, "dst": order.Target, "forces": order.Forces})
		return
	}
	e.emit("move", trace.Fields{"player": p.name, "src": order.Source, "dst": order.Target, "forces": order.Forces})
}
