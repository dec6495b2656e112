package registry

// heapItem is one entry in the lazy max-heap: a snapshot of an edge's
// memo at the version it was pushed (a stale push carries R² = +Inf so
// it ranks first). A popped item whose version no
// longer matches the registry's state for that edge is obsolete and
// discarded rather than used.
type heapItem struct {
	edge        EdgeKey
	version     int
	rSquared    float64
	parcelCount int
}

// itemHeap implements container/heap.Interface, ordered so the root is
// always the best edge: highest R², ties broken by higher parcel
// count, further ties broken by the edge key ascending — the same
// three-level tie-break spec.md's registry section names.
type itemHeap []*heapItem

func (h itemHeap) Len() int { return len(h) }

func (h itemHeap) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.rSquared != b.rSquared {
		return a.rSquared > b.rSquared
	}
	if a.parcelCount != b.parcelCount {
		return a.parcelCount > b.parcelCount
	}

	return a.edge.Less(b.edge)
}

func (h itemHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *itemHeap) Push(x interface{}) { *h = append(*h, x.(*heapItem)) }

func (h *itemHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]

	return item
}
