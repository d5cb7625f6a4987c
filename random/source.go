// Package random is the single source of randomness for a game. Every draw is
// numbered and reported to a trace sink so that two runs can be compared call by call.
package random

import (
	"fmt"

	"riskparity/trace"
)

// Event is the trace event name used for draw records.
const Event = "random"

// Source wraps a Generator and logs each draw after it is made.
type Source struct {
	gen   Generator
	sink  trace.Sink
	calls int
}

// New returns a Source over gen. A nil sink discards the records.
func New(gen Generator, sink trace.Sink) *Source {
	if sink == nil {
		sink = trace.Discard
	}
	return &Source{gen: gen, sink: sink}
}

// Seeded is shorthand for a MT19937 source.
func Seeded(seed int64, sink trace.Sink) *Source {
	return New(NewMT(seed), sink)
}

// Calls is the number of draws made so far, which is also the next call_id.
func (s *Source) Calls() int {
	return s.calls
}

func (s *Source) log(callType string, result any, fields trace.Fields) {
	fields["call_type"] = callType
	fields["call_id"] = s.calls
	fields["result"] = result
	s.calls++
	s.sink.Log(Event, fields)
}

func (s *Source) below(n int) int {
	return int(s.gen.Below(uint64(n)))
}

// Choice picks an index into a sequence of length n. The index is what gets logged.
func (s *Source) Choice(n int) int {
	if n <= 0 {
		panic("random: choice from an empty sequence")
	}
	i := s.below(n)
	s.log("choice", i, trace.Fields{"seq_len": n})
	return i
}

// RandInt returns a value in [lo, hi], both ends inclusive.
func (s *Source) RandInt(lo, hi int) int {
	if hi < lo {
		panic(fmt.Sprintf("random: empty range for randint(%d, %d)", lo, hi))
	}
	v := lo + s.below(hi-lo+1)
	s.log("randint", v, trace.Fields{"low": lo, "high": hi})
	return v
}

// Shuffle permutes items in place and logs the resulting order.
func (s *Source) Shuffle(items []string) {
	for i := len(items) - 1; i > 0; i-- {
		j := s.below(i + 1)
		items[i], items[j] = items[j], items[i]
	}
	result := make([]string, len(items))
	copy(result, items)
	s.log("shuffle", result, trace.Fields{})
}

// RandRange returns start + step*k for a uniform k such that the value lies in
// [start, stop) when step is positive, or (stop, start] when it is negative.
func (s *Source) RandRange(start, stop, step int) int {
	if step == 0 {
		panic("random: randrange step must not be zero")
	}
	width := stop - start
	var n int
	switch {
	case step == 1:
		n = width
	case step > 0:
		n = (width + step - 1) / step
	default:
		n = (width + step + 1) / step
	}
	if n <= 0 {
		panic(fmt.Sprintf("random: empty range for randrange(%d, %d, %d)", start, stop, step))
	}
	v := start + step*s.below(n)
	s.log("randrange", v, trace.Fields{"start": start, "stop": stop, "step": step})
	return v
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](s *Source, items []T) T {
	return items[s.Choice(len(items))]
}
