package engine

import (
	"slices"

	"riskparity/experiments/metrics"
	"riskparity/trace"
)

// Run executes the entire game loop until a winner is found or the turn cap is hit.
// An engine runs once.
func (e *Engine) Run() (string, metrics.GameMetric) {
	if e.ran {
		panic("engine: Run called twice")
	}
	e.ran = true

	e.phase = Setup
	e.setupTurnOrder()
	e.collector.Start(e.seed, e.order[0].name)
	e.logger.Info().Msgf("player %s is starting", e.order[0].name)
	for _, p := range e.players {
		p.strategy.Start()
	}

	e.phase = InitialPlacement
	remaining := make(map[string]int, len(e.players))
	for _, p := range e.players {
		remaining[p.name] = e.rules.StartingForces(len(e.players))
	}
	if e.deal {
		e.dealTerritories(remaining)
	} else {
		e.chooseTerritories(remaining)
	}
	e.placeRemaining(remaining)

	played := 0
	for e.alivePlayers() > 1 {
		if e.maxTurns > 0 && played >= e.maxTurns {
			break
		}
		p := e.current()
		if e.alive(p) {
			e.playTurn(p)
			played++
		}
		e.turn++
	}

	e.phase = Terminal
	if alive := e.alivePlayers(); alive == 1 {
		for _, p := range e.order {
			if e.alive(p) {
				e.winner = p.name
				break
			}
		}
		e.logger.Info().Msgf("player %s won after %d turns", e.winner, played)
		e.emit("victory", trace.Fields{"player": e.winner})
	} else {
		e.logger.Info().Msgf("stopped after %d turns with %d players left", played, alive)
		e.emit("draw", trace.Fields{"turns": played})
	}
	for _, p := range e.players {
		p.strategy.End(e.winner)
	}

	return e.winner, e.collector.Complete(e.winner, e.rng.Calls())
}

func (e *Engine) setupTurnOrder() {
	names := make([]string, len(e.players))
	byName := make(map[string]*player, len(e.players))
	for i, p := range e.players {
		names[i] = p.name
		byName[p.name] = p
	}
	e.rng.Shuffle(names)

	e.order = make([]*player, len(names))
	for i, name := range names {
		e.order[i] = byName[name]
	}
	e.emit("turn_order", trace.Fields{"players": names})
}

// current is the player whose turn the running counter points at, dead or alive.
func (e *Engine) current() *player {
	return e.order[e.turn%len(e.order)]
}

func (e *Engine) alive(p *player) bool {
	return e.board.Count(p.name) > 0
}

func (e *Engine) alivePlayers() int {
	n := 0
	for _, p := range e.players {
		if e.alive(p) {
			n++
		}
	}
	return n
}

func (e *Engine) claim(p *player, territory string, remaining map[string]int) {
	if err := e.board.Claim(p.name, territory, 1); err != nil {
		panic("engine: " + err.Error())
	}
	remaining[p.name]--
	e.emit("claim", trace.Fields{"player": p.name, "territory": territory, "forces": 1})
}

// dealTerritories shuffles the sorted territory list once and deals from its end.
func (e *Engine) dealTerritories(remaining map[string]int) {
	empty := e.board.Unclaimed()
	e.rng.Shuffle(empty)
	for len(empty) > 0 {
		territory := empty[len(empty)-1]
		empty = empty[:len(empty)-1]
		e.claim(e.current(), territory, remaining)
		e.turn++
	}
}

func (e *Engine) chooseTerritories(remaining map[string]int) {
	for {
		empty := e.board.Unclaimed()
		if len(empty) == 0 {
			return
		}
		p := e.current()
		e.claim(p, e.placement(p, empty, remaining[p.name]), remaining)
		e.turn++
	}
}

// placeRemaining hands out the rest of the starting forces one unit at a time.
func (e *Engine) placeRemaining(remaining map[string]int) {
	left := func() int {
		total := 0
		for _, n := range remaining {
			total += max(n, 0)
		}
		return total
	}

	for left() > 0 {
		p := e.current()
		if remaining[p.name] > 0 {
			owned := e.board.Owned(p.name)
			if len(owned) == 0 {
				// more players than territories
				remaining[p.name] = 0
			} else {
				territory := e.placement(p, owned, remaining[p.name])
				e.reinforce(p, territory, 1)
				remaining[p.name]--
			}
		}
		e.turn++
	}
}

// placement asks the strategy for one of candidates and falls back to the first.
func (e *Engine) placement(p *player, candidates []string, remaining int) string {
	offered := slices.Clone(candidates)
	choice, ok := p.strategy.InitialPlacement(offered, remaining)
	if !ok {
		e.warn(p, "no placement chosen", trace.Fields{"territory": candidates[0]})
		return candidates[0]
	}
	if !slices.Contains(candidates, choice) {
		e.warn(p, "placement not among candidates", trace.Fields{"requested": choice, "territory": candidates[0]})
		return candidates[0]
	}
	return choice
}

func (e *Engine) reinforce(p *player, territory string, forces int) {
	if err := e.board.Reinforce(territory, forces); err != nil {
		panic("engine: " + err.Error())
	}
	e.emit("reinforce", trace.Fields{"player": p.name, "territory": territory, "forces": forces})
}

func (e *Engine) playTurn(p *player) {
	e.emit("turn", trace.Fields{"player": p.name, "turn": e.turn})

	e.phase = Reinforcement
	e.reinforcements(p)

	e.phase = Attack
	e.attacks(p)
	if e.alivePlayers() == 1 {
		return
	}

	e.phase = Fortify
	e.fortify(p)
}
