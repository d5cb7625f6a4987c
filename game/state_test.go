package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func islands(t *testing.T) *World {
	t.Helper()
	w, err := LoadWorldFile("testdata/islands.yaml")
	require.NoError(t, err)
	return w
}

func TestBoardOwnership(t *testing.T) {
	t.Run("claiming territories", func(t *testing.T) {
		b := NewBoard(islands(t))

		require.NoError(t, b.Claim("P1", "Alpha", 1))
		require.NoError(t, b.Claim("P1", "Alpha", 2))
		require.Error(t, b.Claim("P2", "Alpha", 1), "Should not claim an enemy territory")
		require.ErrorIs(t, b.Claim("P2", "Nowhere", 1), ErrUnknownTerritory)

		require.Equal(t, "P1", b.Owner("Alpha"))
		require.Equal(t, 3, b.Forces("Alpha"))
		require.Equal(t, []string{"Bravo", "Charlie", "Delta", "Echo"}, b.Unclaimed())
	})

	t.Run("detecting borders", func(t *testing.T) {
		b := NewBoard(islands(t))
		require.NoError(t, b.Claim("P1", "Alpha", 1))
		require.NoError(t, b.Claim("P1", "Bravo", 1))
		require.False(t, b.IsBorder("Bravo"), "Unowned neighbours do not make a border")

		require.NoError(t, b.Claim("P2", "Charlie", 1))
		require.True(t, b.IsBorder("Bravo"))
		require.False(t, b.IsBorder("Alpha"))
		require.True(t, b.IsBorder("Charlie"))
	})

	t.Run("computing area ownership", func(t *testing.T) {
		b := NewBoard(islands(t))
		require.NoError(t, b.Claim("P1", "Alpha", 1))
		require.Equal(t, "", b.AreaOwner("North"), "Partially owned area has no owner")

		require.NoError(t, b.Claim("P1", "Bravo", 1))
		require.Equal(t, "P1", b.AreaOwner("North"))
		require.Equal(t, 2, b.AreaBonus("P1"))
		require.Equal(t, 0, b.AreaBonus("P2"))
	})
}

func TestBoardMoveForces(t *testing.T) {
	setup := func(t *testing.T) *Board {
		b := NewBoard(islands(t))
		for _, name := range []string{"Alpha", "Bravo", "Delta", "Echo"} {
			require.NoError(t, b.Claim("P1", name, 3))
		}
		require.NoError(t, b.Claim("P2", "Charlie", 1))
		return b
	}

	t.Run("moving along a chain of own territories", func(t *testing.T) {
		b := setup(t)
		require.True(t, b.AreConnected("Delta", "Echo", "P1"))
		require.NoError(t, b.MoveForces("Delta", "Echo", 2))
		require.Equal(t, 1, b.Forces("Delta"))
		require.Equal(t, 5, b.Forces("Echo"))
	})

	t.Run("refusing to cross enemy territory", func(t *testing.T) {
		b := setup(t)
		require.False(t, b.AreConnected("Bravo", "Delta", "P1"))
		require.Error(t, b.MoveForces("Bravo", "Delta", 1))
	})

	t.Run("refusing to empty the source", func(t *testing.T) {
		b := setup(t)
		require.Error(t, b.MoveForces("Alpha", "Bravo", 3))
		require.Equal(t, 3, b.Forces("Alpha"), "Failed move should not change forces")
	})

	t.Run("tallying totals", func(t *testing.T) {
		b := setup(t)
		require.Equal(t, 4, b.Count("P1"))
		require.Equal(t, 12, b.TotalForces("P1"))
		b.Capture("Charlie", "P1", 2)
		require.Equal(t, 5, b.Count("P1"))
		require.Equal(t, 0, b.Count("P2"))
	})
}
