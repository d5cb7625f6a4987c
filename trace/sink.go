package trace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

var ErrClosed = errors.New("trace sink is closed")

// Sink is an append-only log of records. Log never fails from the caller's point of
// view; a write failure is remembered and reported by Close.
type Sink interface {
	Log(event string, fields Fields)
	Close() error
}

// Create opens a JSON-lines sink at path, or returns Discard when path is empty.
func Create(path string) (Sink, error) {
	if path == "" {
		return Discard, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	return NewWriter(f), nil
}

// Writer writes each record as soon as it is logged; no buffered window survives a crash.
type Writer struct {
	mu     sync.Mutex
	w      io.Writer
	err    error
	closed bool
}

// NewWriter wraps w. If w is an io.Closer it is closed by Close.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (s *Writer) Log(event string, fields Fields) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		if s.err == nil {
			s.err = ErrClosed
		}
		return
	}
	if s.err != nil {
		return
	}
	line, err := encode(Record{Event: event, Fields: fields})
	if err != nil {
		s.err = err
		return
	}
	line = append(line, '\n')
	if _, err := s.w.Write(line); err != nil {
		s.err = fmt.Errorf("write trace record: %w", err)
	}
}

// Close releases the underlying writer and reports the first failure seen.
func (s *Writer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	s.closed = true
	if c, ok := s.w.(io.Closer); ok {
		if err := c.Close(); err != nil && s.err == nil {
			s.err = fmt.Errorf("close trace: %w", err)
		}
	}
	return s.err
}

type discard struct{}

func (discard) Log(string, Fields) {}
func (discard) Close() error       { return nil }

// Discard satisfies Sink and writes nothing.
var Discard Sink = discard{}

// Recorder keeps records in memory.
type Recorder struct {
	mu      sync.Mutex
	records []Record
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Log(event string, fields Fields) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append(r.records, Record{Event: event, Fields: fields.Clone()})
}

func (r *Recorder) Close() error {
	return nil
}

// Records returns a copy of everything logged so far.
func (r *Recorder) Records() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Record, len(r.records))
	for i, rec := range r.records {
		out[i] = Record{Event: rec.Event, Fields: rec.Fields.Clone()}
	}
	return out
}

type multi []Sink

// Multi fans every record out to all sinks in order.
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

func (m multi) Log(event string, fields Fields) {
	for _, s := range m {
		s.Log(event, fields)
	}
}

func (m multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
