package pathgrid

// openHeap is the frontier: a binary min-heap of node ids ordered by F,
// indexing into the query's node arena. It satisfies container/heap so
// relaxation can restore order with heap.Fix after an open node's F drops.
type openHeap struct {
	ids   []int32
	nodes []pathNode
}

func (h *openHeap) Len() int { return len(h.ids) }

func (h *openHeap) Less(i, j int) bool {
	return h.nodes[h.ids[i]].f < h.nodes[h.ids[j]].f
}

func (h *openHeap) Swap(i, j int) {
	h.ids[i], h.ids[j] = h.ids[j], h.ids[i]
	h.nodes[h.ids[i]].heapPos = int32(i)
	h.nodes[h.ids[j]].heapPos = int32(j)
}

func (h *openHeap) Push(x any) {
	id := x.(int32)
	h.nodes[id].heapPos = int32(len(h.ids))
	h.ids = append(h.ids, id)
}

func (h *openHeap) Pop() any {
	n := len(h.ids)
	id := h.ids[n-1]
	h.ids = h.ids[:n-1]
	return id
}

// min returns the id with the smallest F without removing it.
func (h *openHeap) min() int32 { return h.ids[0] }
