package metrics

import (
	"sync/atomic"
	"time"
)

type GameMetric struct {
	Seed           int64
	StartingPlayer string
	Winner         string // "" for a draw
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	Turns          int
	CombatRounds   int
	Conquests      int
	Eliminations   int
	Warnings       int
	RandomCalls    int
}

// Collector is fed the engine's event names as they are emitted.
type Collector interface {
	Start(seed int64, startingPlayer string)
	Observe(event string)
	Complete(winner string, randomCalls int) GameMetric
}

type collector struct {
	seed           int64
	startingPlayer string
	startTime      time.Time
	turns          atomic.Int32
	combatRounds   atomic.Int32
	conquests      atomic.Int32
	eliminations   atomic.Int32
	warnings       atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(seed int64, startingPlayer string) {
	m.startTime = time.Now()
	m.seed = seed
	m.startingPlayer = startingPlayer
}

func (m *collector) Observe(event string) {
	switch event {
	case "turn":
		m.turns.Add(1)
	case "combat":
		m.combatRounds.Add(1)
	case "conquer":
		m.conquests.Add(1)
	case "eliminate":
		m.eliminations.Add(1)
	case "warning":
		m.warnings.Add(1)
	}
}

func (m *collector) Complete(winner string, randomCalls int) GameMetric {
	end := time.Now()
	return GameMetric{
		Seed:           m.seed,
		StartingPlayer: m.startingPlayer,
		Winner:         winner,
		StartTime:      m.startTime,
		EndTime:        end,
		Duration:       end.Sub(m.startTime),
		Turns:          int(m.turns.Load()),
		CombatRounds:   int(m.combatRounds.Load()),
		Conquests:      int(m.conquests.Load()),
		Eliminations:   int(m.eliminations.Load()),
		Warnings:       int(m.warnings.Load()),
		RandomCalls:    randomCalls,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(seed int64, startingPlayer string) {}
func (m *dummyCollector) Observe(event string)                    {}
func (m *dummyCollector) Complete(winner string, randomCalls int) GameMetric {
	return GameMetric{Winner: winner}
}
