// Package engine runs one game as a phase state machine:
// setup, initial placement, then reinforcement, attack and fortify for each
// living player in turn order, until one player owns the whole world.
package engine

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"riskparity/experiments/metrics"
	"riskparity/game"
	"riskparity/meta"
	"riskparity/random"
	"riskparity/strategy"
	"riskparity/trace"
)

var (
	ErrTooFewPlayers   = errors.New("need at least two players")
	ErrDuplicatePlayer = errors.New("duplicate player name")
)

type Runner interface {
	// Run plays the game till there's a winner, or a draw once the turn cap is reached.
	Run() (winner string, gameMetric metrics.GameMetric)
}

// Observer sees every game event after strategies have been notified.
// Randomness records only go to the trace sink.
type Observer func(r trace.Record)

type player struct {
	name     string
	strategy strategy.Strategy
}

type Engine struct {
	board     *game.Board
	rules     game.Rules
	rng       *random.Source
	sink      trace.Sink
	players   []*player // as bound
	order     []*player // after the turn order shuffle
	turn      int
	phase     Phase
	deal      bool
	maxTurns  int
	seed      int64
	generator random.Generator
	observers []Observer
	collector metrics.Collector
	logger    zerolog.Logger
	winner    string
	ran       bool
}

type Option func(*Engine)

// WithSeed seeds the default MT19937 generator.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithGenerator replaces the seeded MT19937 generator.
func WithGenerator(g random.Generator) Option {
	return func(e *Engine) {
		e.generator = g
	}
}

func WithTrace(sink trace.Sink) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

// WithDeal deals territories at random instead of letting players choose them.
func WithDeal(deal bool) Option {
	return func(e *Engine) {
		e.deal = deal
	}
}

func WithRules(r game.Rules) Option {
	return func(e *Engine) {
		e.rules = r
	}
}

func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, o)
	}
}

func WithMetrics(c metrics.Collector) Option {
	return func(e *Engine) {
		e.collector = c
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithMaxTurns ends the game as a draw after n player turns; zero means no cap.
func WithMaxTurns(n int) Option {
	return func(e *Engine) {
		e.maxTurns = n
	}
}

// New binds strategies to players on a fresh board. Nothing is drawn or emitted until Run.
func New(world *game.World, bindings []strategy.Binding, opts ...Option) (*Engine, error) {
	if world == nil || world.Len() == 0 {
		return nil, game.ErrEmptyWorld
	}
	if len(bindings) < meta.MIN_PLAYERS {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPlayers, len(bindings))
	}

	e := &Engine{
		board:     game.NewBoard(world),
		rules:     game.NewStandardRules(),
		sink:      trace.Discard,
		maxTurns:  meta.MAX_TURNS,
		collector: metrics.NewDummyCollector(),
		logger:    log.Logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sink == nil {
		e.sink = trace.Discard
	}
	if e.collector == nil {
		e.collector = metrics.NewDummyCollector()
	}
	if e.generator == nil {
		e.generator = random.NewMT(e.seed)
	}
	e.rng = random.New(e.generator, e.sink)

	seen := make(map[string]bool, len(bindings))
	for _, b := range bindings {
		if b.Player == "" || seen[b.Player] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlayer, b.Player)
		}
		if b.Factory == nil {
			return nil, fmt.Errorf("player %s: %w %q", b.Player, strategy.ErrUnknownStrategy, b.Strategy)
		}
		seen[b.Player] = true
		e.players = append(e.players, &player{
			name:     b.Player,
			strategy: b.Factory(b.Player, e.board, e.rng),
		})
	}
	return e, nil
}

// Board exposes the live board read-only.
func (e *Engine) Board() game.View {
	return e.board
}

// Source is the engine's traced randomness source.
func (e *Engine) Source() *random.Source {
	return e.rng
}

// Phase is the state the engine is currently in.
func (e *Engine) Phase() Phase {
	return e.phase
}

// TurnOrder returns the player names in playing order once setup has run.
func (e *Engine) TurnOrder() []string {
	names := make([]string, len(e.order))
	for i, p := range e.order {
		names[i] = p.name
	}
	return names
}
