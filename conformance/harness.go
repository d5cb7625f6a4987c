// Package conformance runs the same game twice and checks that both runs emit the
// same records in the same order. It can also check a run against a trace file
// written by another implementation.
package conformance

import (
	"context"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"riskparity/engine"
	"riskparity/game"
	"riskparity/random"
	"riskparity/strategy"
	"riskparity/trace"
)

// diffContext is the number of records shown around a mismatch.
const diffContext = 3

type Config struct {
	World     *game.World
	Players   []strategy.Binding
	Seed      int64
	Generator string
	Deal      bool
	MaxTurns  int
	// IncludeRandom also compares the randomness call records. Dice results are
	// part of the combat events either way.
	IncludeRandom bool
	Logger        *zerolog.Logger
}

// Run is one captured engine run.
type Run struct {
	Winner  string
	Records []trace.Record
}

type Result struct {
	Left     Run
	Right    Run
	Compared int
	Mismatch *Mismatch
}

func (r Result) Equal() bool {
	return r.Mismatch == nil
}

// Mismatch is the first index where the two record sequences differ. A nil side
// means that sequence ended early.
type Mismatch struct {
	Index     int
	Left      *trace.Record
	Right     *trace.Record
	LeftLen   int
	RightLen  int
	Diff      string
	leftName  string
	rightName string
}

func (m *Mismatch) Error() string {
	render := func(r *trace.Record) string {
		if r == nil {
			return "<end of trace>"
		}
		return r.Canonical()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "traces differ at record %d (%s has %d records, %s has %d)\n", m.Index, m.leftName, m.LeftLen, m.rightName, m.RightLen)
	fmt.Fprintf(&b, "  %s: %s\n", m.leftName, render(m.Left))
	fmt.Fprintf(&b, "  %s: %s\n", m.rightName, render(m.Right))
	b.WriteString(m.Diff)
	return b.String()
}

func (cfg Config) logger() zerolog.Logger {
	if cfg.Logger != nil {
		return *cfg.Logger
	}
	return log.Logger
}

func (cfg Config) play(ctx context.Context, name string) (Run, error) {
	if err := ctx.Err(); err != nil {
		return Run{}, err
	}
	gen, err := random.NewGenerator(cfg.Generator, cfg.Seed)
	if err != nil {
		return Run{}, err
	}
	rec := trace.NewRecorder()
	e, err := engine.New(cfg.World, cfg.Players,
		engine.WithSeed(cfg.Seed),
		engine.WithGenerator(gen),
		engine.WithDeal(cfg.Deal),
		engine.WithMaxTurns(cfg.MaxTurns),
		engine.WithTrace(rec),
		engine.WithLogger(cfg.logger().With().Str("run", name).Logger()),
	)
	if err != nil {
		return Run{}, fmt.Errorf("%s run: %w", name, err)
	}
	winner, _ := e.Run()
	return Run{Winner: winner, Records: rec.Records()}, nil
}

// Check plays two independent engines from the same configuration concurrently and
// compares their records.
func Check(ctx context.Context, cfg Config) (Result, error) {
	var result Result
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		run, err := cfg.play(gctx, "left")
		result.Left = run
		return err
	})
	g.Go(func() error {
		run, err := cfg.play(gctx, "right")
		result.Right = run
		return err
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	left, right := selectRecords(result.Left.Records, cfg.IncludeRandom), selectRecords(result.Right.Records, cfg.IncludeRandom)
	result.Compared = min(len(left), len(right))
	result.Mismatch = Compare(left, right, "left", "right")
	return result, nil
}

// Against plays one engine and compares it with the records stored at path.
func Against(ctx context.Context, cfg Config, path string) (Result, error) {
	external, err := trace.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read reference trace: %w", err)
	}
	run, err := cfg.play(ctx, "local")
	if err != nil {
		return Result{}, err
	}

	left, right := selectRecords(run.Records, cfg.IncludeRandom), selectRecords(external, cfg.IncludeRandom)
	result := Result{
		Left:     run,
		Right:    Run{Records: external, Winner: winnerOf(external)},
		Compared: min(len(left), len(right)),
		Mismatch: Compare(left, right, "local", path),
	}
	return result, nil
}

func selectRecords(records []trace.Record, includeRandom bool) []trace.Record {
	if includeRandom {
		return records
	}
	return trace.Filter(records, func(r trace.Record) bool { return r.Event != random.Event })
}

func winnerOf(records []trace.Record) string {
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Event == "victory" {
			if w, ok := records[i].Get("player").(string); ok {
				return w
			}
		}
	}
	return ""
}

// Compare returns the first difference between two record sequences, or nil.
func Compare(left, right []trace.Record, leftName, rightName string) *Mismatch {
	n := min(len(left), len(right))
	index := -1
	for i := range n {
		if !trace.Equal(left[i], right[i]) {
			index = i
			break
		}
	}
	if index < 0 {
		if len(left) == len(right) {
			return nil
		}
		index = n
	}

	m := &Mismatch{
		Index:     index,
		LeftLen:   len(left),
		RightLen:  len(right),
		leftName:  leftName,
		rightName: rightName,
	}
	if index < len(left) {
		m.Left = &left[index]
	}
	if index < len(right) {
		m.Right = &right[index]
	}
	m.Diff = unifiedDiff(left, right, index, leftName, rightName)
	return m
}

func window(records []trace.Record, index int) []string {
	lo := max(0, index-diffContext)
	hi := min(len(records), index+diffContext+1)
	lines := make([]string, 0, hi-lo)
	for _, r := range records[lo:hi] {
		lines = append(lines, r.Canonical()+"\n")
	}
	return lines
}

func unifiedDiff(left, right []trace.Record, index int, leftName, rightName string) string {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        window(left, index),
		B:        window(right, index),
		FromFile: leftName,
		ToFile:   rightName,
		Context:  diffContext,
	})
	if err != nil {
		return ""
	}
	return diff
}
