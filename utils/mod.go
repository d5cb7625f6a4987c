package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// CountOrdered counts repeated items, keeping the order in which each first appears.
func CountOrdered[T comparable](items []T) ([]T, []int) {
	var keys []T
	var counts []int
	for _, item := range items {
		i := FindIndex(keys, item)
		if i < 0 {
			keys = append(keys, item)
			counts = append(counts, 0)
			i = len(keys) - 1
		}
		counts[i]++
	}
	return keys, counts
}
