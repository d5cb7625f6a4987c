package game

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrEmptyWorld       = errors.New("world has no territories")
	ErrUnknownTerritory = errors.New("unknown territory")
)

// Territory is a node of the static territory graph. Adjacent is sorted by name.
type Territory struct {
	Name     string
	Area     string
	Adjacent []string
}

// Area groups territories and grants Bonus reinforcements to a player holding all of them.
type Area struct {
	Name        string
	Bonus       int
	Territories []string
}

// AreaDef describes an area in static configuration.
type AreaDef struct {
	Name        string   `yaml:"name"`
	Bonus       int      `yaml:"bonus"`
	Territories []string `yaml:"territories"`
}

// World is the immutable territory graph plus its area groupings.
// Nothing mutates a World after NewWorld returns.
type World struct {
	territories map[string]*Territory
	areas       map[string]*Area
	names       []string
	areaNames   []string
}

// NewWorld builds a world from area definitions and connection lines of the form
// "Alaska--Kamchatka--Yakutsk", where each "--" joins the two neighbouring names.
func NewWorld(areas []AreaDef, connections []string) (*World, error) {
	w := &World{
		territories: make(map[string]*Territory),
		areas:       make(map[string]*Area),
	}

	for _, def := range areas {
		if def.Name == "" {
			return nil, fmt.Errorf("area without a name")
		}
		if _, ok := w.areas[def.Name]; ok {
			return nil, fmt.Errorf("duplicate area %q", def.Name)
		}
		area := &Area{Name: def.Name, Bonus: def.Bonus}
		for _, name := range def.Territories {
			name = strings.TrimSpace(name)
			if name == "" {
				return nil, fmt.Errorf("area %q lists an empty territory name", def.Name)
			}
			if t, ok := w.territories[name]; ok {
				return nil, fmt.Errorf("territory %q listed in both %q and %q", name, t.Area, def.Name)
			}
			w.territories[name] = &Territory{Name: name, Area: def.Name}
			area.Territories = append(area.Territories, name)
		}
		sort.Strings(area.Territories)
		w.areas[def.Name] = area
		w.areaNames = append(w.areaNames, def.Name)
	}
	if len(w.territories) == 0 {
		return nil, ErrEmptyWorld
	}

	adjacency := make(map[string]map[string]struct{}, len(w.territories))
	for _, line := range connections {
		if strings.TrimSpace(line) == "" {
			continue
		}
		joins := strings.Split(line, "--")
		for i := range joins {
			joins[i] = strings.TrimSpace(joins[i])
		}
		for i := 0; i+1 < len(joins); i++ {
			a, b := joins[i], joins[i+1]
			if _, ok := w.territories[a]; !ok {
				return nil, fmt.Errorf("%w %q in connection line %q", ErrUnknownTerritory, a, line)
			}
			if _, ok := w.territories[b]; !ok {
				return nil, fmt.Errorf("%w %q in connection line %q", ErrUnknownTerritory, b, line)
			}
			if a == b {
				continue
			}
			addBorder(adjacency, a, b)
			addBorder(adjacency, b, a)
		}
	}

	for name, t := range w.territories {
		for adj := range adjacency[name] {
			t.Adjacent = append(t.Adjacent, adj)
		}
		sort.Strings(t.Adjacent)
		w.names = append(w.names, name)
	}
	sort.Strings(w.names)
	sort.Strings(w.areaNames)
	return w, nil
}

func addBorder(adjacency map[string]map[string]struct{}, from, to string) {
	if adjacency[from] == nil {
		adjacency[from] = make(map[string]struct{})
	}
	adjacency[from][to] = struct{}{}
}

// SplitConnections splits a multi-line connection block into lines.
func SplitConnections(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Territory looks up a territory by name.
func (w *World) Territory(name string) (*Territory, bool) {
	t, ok := w.territories[name]
	return t, ok
}

// Territories returns all territory names in ascending order.
func (w *World) Territories() []string {
	names := make([]string, len(w.names))
	copy(names, w.names)
	return names
}

// Areas returns all areas ordered by name.
func (w *World) Areas() []*Area {
	areas := make([]*Area, 0, len(w.areaNames))
	for _, name := range w.areaNames {
		areas = append(areas, w.areas[name])
	}
	return areas
}

// Area looks up an area by name.
func (w *World) Area(name string) (*Area, bool) {
	a, ok := w.areas[name]
	return a, ok
}

// Len returns the number of territories.
func (w *World) Len() int {
	return len(w.names)
}

// AreAdjacent checks if two territories share a border.
func (w *World) AreAdjacent(a, b string) bool {
	t, ok := w.territories[a]
	if !ok {
		return false
	}
	i := sort.SearchStrings(t.Adjacent, b)
	return i < len(t.Adjacent) && t.Adjacent[i] == b
}
