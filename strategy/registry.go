package strategy

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// Registry maps strategy names, case-insensitively, to their factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	canonical map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		canonical: make(map[string]string),
	}
}

// Register adds a factory under name and any aliases. Registering a name twice panics.
func (r *Registry) Register(name string, f Factory, aliases ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range append([]string{name}, aliases...) {
		key = strings.ToLower(key)
		if _, ok := r.factories[key]; ok {
			panic(fmt.Sprintf("strategy %q registered twice", key))
		}
		r.factories[key] = f
		r.canonical[key] = name
	}
}

// Lookup resolves a name or alias to the canonical name and its factory.
func (r *Registry) Lookup(name string) (string, Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := strings.ToLower(strings.TrimSpace(name))
	f, ok := r.factories[key]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownStrategy, name, strings.Join(r.names(), ", "))
	}
	return r.canonical[key], f, nil
}

// Names lists the canonical names in ascending order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.names()
}

func (r *Registry) names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, name := range r.canonical {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Default holds the built-in strategies.
var Default = func() *Registry {
	r := NewRegistry()
	r.Register(DeterministicName, NewDeterministic, "deterministic")
	r.Register(StupidName, NewStupid, "stupid", "random")
	return r
}()

// Binding ties a player name to a resolved strategy.
type Binding struct {
	Player   string
	Strategy string
	Factory  Factory
}

// ParsePlayers expands specs like "DeterministicAI*2 StupidAI" into bindings and
// gives the players names in order.
func (r *Registry) ParsePlayers(specs []string, names []string) ([]Binding, error) {
	var bindings []Binding
	for _, spec := range specs {
		name, count := spec, 1
		if base, n, ok := strings.Cut(spec, "*"); ok {
			c, err := strconv.Atoi(n)
			if err != nil || c < 1 {
				return nil, fmt.Errorf("invalid player count in %q", spec)
			}
			name, count = base, c
		}
		canonical, factory, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		for range count {
			if len(bindings) >= len(names) {
				return nil, fmt.Errorf("too many players: only %d names available", len(names))
			}
			bindings = append(bindings, Binding{
				Player:   names[len(bindings)],
				Strategy: canonical,
				Factory:  factory,
			})
		}
	}
	return bindings, nil
}

// ParsePlayers resolves specs against the Default registry.
func ParsePlayers(specs []string, names []string) ([]Binding, error) {
	return Default.ParsePlayers(specs, names)
}
