package schedule

// Reordering is modeled as pure list arithmetic: compute the full new order
// from a move, then diff against the previous order to get the minimal patch.
// Concurrent reorderers are not reconciled; the last write wins.

// Move returns a new slice with the element at from relocated to to. Out of
// range indices return the input order unchanged.
func Move(ids []int64, from, to int) []int64 {
	n := len(ids)
	if from < 0 || from >= n || to < 0 || to >= n {
		return append([]int64(nil), ids...)
	}
	out := make([]int64, 0, n)
	out = append(out, ids[:from]...)
	out = append(out, ids[from+1:]...)
	out = append(out[:to], append([]int64{ids[from]}, out[to:]...)...)
	return out
}

// OrderPatch is one sibling whose order field must change.
type OrderPatch struct {
	ID    int64 `json:"id"`
	Order int   `json:"order"`
}

// Diff returns the minimal set of order rewrites taking prev to next, using
// 1-based positions. IDs present only in next are included; IDs present only
// in prev are ignored (deletion is a separate operation).
func Diff(prev, next []int64) []OrderPatch {
	prevPos := make(map[int64]int, len(prev))
	for i, id := range prev {
		prevPos[id] = i + 1
	}
	var patches []OrderPatch
	for i, id := range next {
		pos := i + 1
		if old, ok := prevPos[id]; !ok || old != pos {
			patches = append(patches, OrderPatch{ID: id, Order: pos})
		}
	}
	return patches
}

// Renumber assigns consecutive 1-based orders to the given sequence.
func Renumber(ids []int64) []OrderPatch {
	patches := make([]OrderPatch, 0, len(ids))
	for i, id := range ids {
		patches = append(patches, OrderPatch{ID: id, Order: i + 1})
	}
	return patches
}
