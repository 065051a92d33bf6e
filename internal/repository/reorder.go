package repository

import "github.com/google/uuid"

// sameIDSet reports whether ordered is a permutation of current: same ids,
// no duplicates, nothing missing, nothing extra. Reorder is a total rewrite of
// a scope, so anything less than exact membership is rejected rather than
// applied partially.
func sameIDSet(current, ordered []uuid.UUID) bool {
	if len(current) != len(ordered) {
		return false
	}
	seen := make(map[uuid.UUID]struct{}, len(current))
	for _, id := range current {
		seen[id] = struct{}{}
	}
	for _, id := range ordered {
		if _, ok := seen[id]; !ok {
			return false
		}
		delete(seen, id)
	}
	return len(seen) == 0
}
