package engine

import (
	"riskparity/trace"
)

type Phase int

const (
	Setup Phase = iota
	InitialPlacement
	Reinforcement
	Attack
	Fortify
	Terminal
)

func (p Phase) String() string {
	switch p {
	case Setup:
		return "setup"
	case InitialPlacement:
		return "initial_placement"
	case Reinforcement:
		return "reinforcement"
	case Attack:
		return "attack"
	case Fortify:
		return "fortify"
	case Terminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// emit appends the record to the trace, then lets strategies, observers and the
// metrics collector see it, in that order. Each strategy gets its own copy of the fields.
func (e *Engine) emit(event string, fields trace.Fields) {
	e.sink.Log(event, fields)
	record := trace.Record{Event: event, Fields: fields}
	for _, p := range e.players {
		p.strategy.Event(trace.Record{Event: event, Fields: fields.Clone()})
	}
	for _, o := range e.observers {
		o(record)
	}
	e.collector.Observe(event)
}

// warn records a corrected strategy violation. extra may add the offending values.
func (e *Engine) warn(p *player, reason string, extra trace.Fields) {
	fields := trace.Fields{"player": p.name, "phase": e.phase.String(), "reason": reason}
	for k, v := range extra {
		fields[k] = v
	}
	e.logger.Warn().Msgf("%s (%s): %s", p.name, e.phase, reason)
	e.emit("warning", fields)
}
