package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindIndex(t *testing.T) {
	require.Equal(t, 1, FindIndex([]string{"a", "b", "a"}, "b"))
	require.Equal(t, 0, FindIndex([]string{"a", "b", "a"}, "a"), "The first match wins")
	require.Equal(t, -1, FindIndex([]int{1, 2}, 3))
}

func TestCountOrdered(t *testing.T) {
	t.Run("first appearance order", func(t *testing.T) {
		keys, counts := CountOrdered([]string{"Peru", "Brazil", "Peru", "Peru", "Egypt"})
		require.Equal(t, []string{"Peru", "Brazil", "Egypt"}, keys)
		require.Equal(t, []int{3, 1, 1}, counts)
	})

	t.Run("empty input", func(t *testing.T) {
		keys, counts := CountOrdered[string](nil)
		require.Empty(t, keys)
		require.Empty(t, counts)
	})
}
