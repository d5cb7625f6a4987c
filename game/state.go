package game

import (
	"fmt"
)

// View is the read-only face of a Board handed to strategies.
type View interface {
	World() *World
	Owner(territory string) string
	Forces(territory string) int
	Owned(player string) []string
	Unclaimed() []string
	IsBorder(territory string) bool
	AreaOwner(area string) string
	AreConnected(from, to, player string) bool
}

// Board represents the dynamic state of the game: who owns each territory and how many
// forces sit on it. An unowned territory has owner "" and zero forces.
type Board struct {
	world  *World
	owner  map[string]string
	forces map[string]int
}

// NewBoard initializes a board with every territory unowned.
func NewBoard(w *World) *Board {
	return &Board{
		world:  w,
		owner:  make(map[string]string, w.Len()),
		forces: make(map[string]int, w.Len()),
	}
}

func (b *Board) World() *World {
	return b.world
}

func (b *Board) Owner(territory string) string {
	return b.owner[territory]
}

func (b *Board) Forces(territory string) int {
	return b.forces[territory]
}

// Owned returns the player's territories in ascending name order.
func (b *Board) Owned(player string) []string {
	var owned []string
	for _, name := range b.world.names {
		if b.owner[name] == player {
			owned = append(owned, name)
		}
	}
	return owned
}

// Unclaimed returns unowned territories in ascending name order.
func (b *Board) Unclaimed() []string {
	return b.Owned("")
}

// Count returns the number of territories the player owns.
func (b *Board) Count(player string) int {
	n := 0
	for _, owner := range b.owner {
		if owner == player {
			n++
		}
	}
	return n
}

// TotalForces sums the forces on the player's territories.
func (b *Board) TotalForces(player string) int {
	total := 0
	for name, owner := range b.owner {
		if owner == player {
			total += b.forces[name]
		}
	}
	return total
}

// IsBorder reports whether an owned neighbour belongs to someone else.
func (b *Board) IsBorder(territory string) bool {
	t, ok := b.world.territories[territory]
	if !ok {
		return false
	}
	owner := b.owner[territory]
	for _, adj := range t.Adjacent {
		if o := b.owner[adj]; o != "" && o != owner {
			return true
		}
	}
	return false
}

// AreaOwner returns the player holding every territory of the area, or "" if split.
func (b *Board) AreaOwner(area string) string {
	a, ok := b.world.areas[area]
	if !ok || len(a.Territories) == 0 {
		return ""
	}
	owner := b.owner[a.Territories[0]]
	for _, name := range a.Territories[1:] {
		if b.owner[name] != owner {
			return ""
		}
	}
	return owner
}

// AreaBonus sums the bonus of every area the player fully owns.
func (b *Board) AreaBonus(player string) int {
	bonus := 0
	for _, area := range b.world.Areas() {
		if player != "" && b.AreaOwner(area.Name) == player {
			bonus += area.Bonus
		}
	}
	return bonus
}

// Just BFS over the player's own territories.
func (b *Board) AreConnected(from, to, player string) bool {
	if b.owner[from] != player || b.owner[to] != player {
		return false
	}
	if from == to {
		return true
	}
	visited := map[string]bool{from: true}
	queue := []string{from}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, adj := range b.world.territories[current].Adjacent {
			if b.owner[adj] != player || visited[adj] {
				continue
			}
			if adj == to {
				return true
			}
			visited[adj] = true
			queue = append(queue, adj)
		}
	}
	return false
}

// Claim gives an unowned (or already own) territory to the player and adds forces.
func (b *Board) Claim(player, territory string, forces int) error {
	if _, ok := b.world.territories[territory]; !ok {
		return fmt.Errorf("cannot claim: %w %q", ErrUnknownTerritory, territory)
	}
	if owner := b.owner[territory]; owner != "" && owner != player {
		return fmt.Errorf("cannot claim: %q is owned by %s", territory, owner)
	}
	b.owner[territory] = player
	b.forces[territory] += forces
	return nil
}

// Reinforce adds forces to an owned territory.
func (b *Board) Reinforce(territory string, forces int) error {
	if b.owner[territory] == "" {
		return fmt.Errorf("cannot reinforce: %q is unowned", territory)
	}
	if forces < 0 {
		return fmt.Errorf("cannot reinforce: negative forces %d", forces)
	}
	b.forces[territory] += forces
	return nil
}

// MoveForces transfers forces between two connected territories owned by the same player.
func (b *Board) MoveForces(from, to string, forces int) error {
	player := b.owner[from]

	// Check ownership
	if player == "" || player != b.owner[to] {
		return fmt.Errorf("cannot move forces: territories are not owned by the same player")
	}
	if from == to {
		return fmt.Errorf("cannot move forces: source and destination are the same")
	}
	// Check connectivity
	if !b.AreConnected(from, to, player) {
		return fmt.Errorf("cannot move forces: territories are not connected")
	}
	// Check force availability
	if forces < 0 || b.forces[from] <= forces {
		return fmt.Errorf("cannot move forces: not enough forces in the source territory")
	}
	b.forces[from] -= forces
	b.forces[to] += forces
	return nil
}

// SetForces overwrites the force count of a territory after combat.
func (b *Board) SetForces(territory string, forces int) {
	b.forces[territory] = forces
}

// Capture hands a territory to a new owner with the given forces.
func (b *Board) Capture(territory, player string, forces int) {
	b.owner[territory] = player
	b.forces[territory] = forces
}
