package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"riskparity/config"
	"riskparity/conformance"
	"riskparity/engine"
	"riskparity/experiments/metrics"
	"riskparity/game"
	"riskparity/logger"
	"riskparity/meta"
	"riskparity/random"
	"riskparity/strategy"
	"riskparity/trace"
)

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.Init(logger.Options{Level: cfg.LogLevel, NoColor: !cfg.Color})

	seed, err := cfg.ResolveSeed()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot pick a seed")
	}
	log.Info().Msgf("using seed %d", seed)

	world, err := cfg.World()
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load map")
	}
	players, err := strategy.ParsePlayers(cfg.Players, meta.NAMES)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot set up players")
	}

	if cfg.Conformance || cfg.Against != "" {
		if !runConformance(cfg, world, players) {
			os.Exit(1)
		}
		return
	}
	runRounds(cfg, world, players)
}

// runRounds plays cfg.Games games, round i with seed+i, and prints the win tally.
func runRounds(cfg config.Config, world *game.World, players []strategy.Binding) {
	strategies := make(map[string]string, len(players))
	for _, p := range players {
		strategies[p.Player] = p.Strategy
	}

	var writer *metrics.Writer
	if cfg.Metrics {
		w, err := metrics.NewWriter(cfg.MetricsDir)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot create metrics directory")
		}
		writer = w
	}

	tally := metrics.Tally{}
	for _, p := range players {
		tally[p.Player] = 0
	}
	var records []metrics.GameRecord
	for i := range cfg.Games {
		seed := cfg.Seed + int64(i)
		winner, m, err := runGame(cfg, world, players, seed, tracePath(cfg.Trace, i, cfg.Games))
		if err != nil {
			log.Fatal().Err(err).Msgf("game %d failed", i+1)
		}
		tally.Add(winner)
		records = append(records, metrics.GameRecord{ID: i + 1, GameMetric: m})
		log.Info().Msgf("game %d over! Winner: %s", i+1, orDraw(winner))
	}

	printOutcome(cfg.Games, tally, strategies)

	if writer != nil {
		if err := writer.WriteGameRecords(records); err != nil {
			log.Fatal().Err(err).Msg("cannot write game records")
		}
		if err := writer.WriteWinTally(tally, strategies); err != nil {
			log.Fatal().Err(err).Msg("cannot write win tally")
		}
		log.Info().Msgf("metrics written to %s", writer.Dir())
	}
}

func runGame(cfg config.Config, world *game.World, players []strategy.Binding, seed int64, path string) (string, metrics.GameMetric, error) {
	sink, err := trace.Create(path)
	if err != nil {
		return "", metrics.GameMetric{}, err
	}

	opts := []engine.Option{
		engine.WithSeed(seed),
		engine.WithTrace(sink),
		engine.WithDeal(cfg.Deal),
		engine.WithMaxTurns(cfg.MaxTurns),
	}
	if cfg.Metrics {
		opts = append(opts, engine.WithMetrics(metrics.NewCollector()))
	}
	if cfg.Display {
		opts = append(opts, engine.WithObserver(display(cfg)))
	}
	if cfg.Generator != "" {
		gen, err := random.NewGenerator(cfg.Generator, seed)
		if err != nil {
			return "", metrics.GameMetric{}, err
		}
		opts = append(opts, engine.WithGenerator(gen))
	}

	e, err := engine.New(world, players, opts...)
	if err != nil {
		sink.Close()
		return "", metrics.GameMetric{}, err
	}
	winner, m := e.Run()
	if err := sink.Close(); err != nil {
		return winner, m, fmt.Errorf("close trace: %w", err)
	}
	return winner, m, nil
}

// display prints every game event to stdout, pausing cfg.Delay after each one.
func display(cfg config.Config) engine.Observer {
	out := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		NoColor:    !cfg.Color,
		PartsOrder: []string{zerolog.MessageFieldName},
	})
	return func(r trace.Record) {
		out.Log().Fields(map[string]any(r.Fields)).Msg(r.Event)
		if cfg.Delay > 0 {
			time.Sleep(cfg.Delay)
		}
	}
}

// tracePath gives every round its own file when more than one game is played.
func tracePath(path string, round, games int) string {
	if path == "" || games == 1 {
		return path
	}
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s-%d%s", strings.TrimSuffix(path, ext), round+1, ext)
}

func printOutcome(games int, tally metrics.Tally, strategies map[string]string) {
	fmt.Printf("Outcome of %d games\n", games)
	for _, entry := range tally.Sorted() {
		if entry.Player == "" {
			fmt.Printf("  draw: %d\n", entry.Wins)
			continue
		}
		fmt.Printf("  %s [%s]: %d\n", entry.Player, strategies[entry.Player], entry.Wins)
	}
}

func orDraw(winner string) string {
	if winner == "" {
		return "none (draw)"
	}
	return winner
}

func runConformance(cfg config.Config, world *game.World, players []strategy.Binding) bool {
	c := conformance.Config{
		World:         world,
		Players:       players,
		Seed:          cfg.Seed,
		Generator:     cfg.Generator,
		Deal:          cfg.Deal,
		MaxTurns:      cfg.MaxTurns,
		IncludeRandom: cfg.WithRandom,
	}

	var (
		result conformance.Result
		err    error
	)
	if cfg.Against != "" {
		result, err = conformance.Against(context.Background(), c, cfg.Against)
	} else {
		result, err = conformance.Check(context.Background(), c)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("conformance run failed")
	}

	if !result.Equal() {
		fmt.Println(result.Mismatch.Error())
		return false
	}
	fmt.Printf("traces match: %d records compared, winner %s\n", result.Compared, orDraw(result.Left.Winner))
	return true
}
