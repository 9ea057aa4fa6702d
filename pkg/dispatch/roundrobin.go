package dispatch

// RoundRobin stripes the given keys across n slots: slot w receives
// keys[w], keys[w+n], keys[w+2n], and so on. Keys are assumed to already
// be in their canonical sorted order, so the assignment is deterministic.
// The mapping is built once per run and discarded after the scatter.
func RoundRobin(keys []string, n int) [][]string {
	if n < 1 {
		return nil
	}
	slots := make([][]string, n)
	for i, key := range keys {
		w := i % n
		slots[w] = append(slots[w], key)
	}
	return slots
}
