package internal

// Reverse flips a slice in place. Routes are reconstructed goal-first and
// reversed into start-to-goal order.
func Reverse[T any](items []T) {
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
}
