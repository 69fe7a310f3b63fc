package routing

import "container/heap"

// frontier is a decrease-key-capable priority queue of candidate edges,
// ordered by ascending priority. It keeps at most one queued candidate per
// end vertex and only replaces it when a cheaper edge is offered.
type frontier struct {
	heap  frontierHeap
	byEnd map[string]*frontierItem
}

type frontierItem struct {
	conn  *RouteConnection
	index int
}

func newFrontier() *frontier {
	return &frontier{
		heap:  frontierHeap{},
		byEnd: make(map[string]*frontierItem),
	}
}

// Offer pushes a candidate edge, keeping the cheaper of the new edge and
// any already-queued candidate for the same end vertex.
func (f *frontier) Offer(conn *RouteConnection) {
	if existing, ok := f.byEnd[conn.End]; ok {
		if conn.Cost >= existing.conn.Cost {
			return
		}
		existing.conn = conn
		heap.Fix(&f.heap, existing.index)
		return
	}

	item := &frontierItem{conn: conn}
	f.byEnd[conn.End] = item
	heap.Push(&f.heap, item)
}

// Pop removes and returns the cheapest queued edge, or nil when empty.
func (f *frontier) Pop() *RouteConnection {
	if f.heap.Len() == 0 {
		return nil
	}
	item := heap.Pop(&f.heap).(*frontierItem)
	delete(f.byEnd, item.conn.End)
	return item.conn
}

func (f *frontier) Len() int {
	return f.heap.Len()
}

// frontierHeap implements heap.Interface over frontier items.
type frontierHeap []*frontierItem

func (h frontierHeap) Len() int { return len(h) }

func (h frontierHeap) Less(i, j int) bool {
	return h[i].conn.Priority < h[j].conn.Priority
}

func (h frontierHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *frontierHeap) Push(x interface{}) {
	item := x.(*frontierItem)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *frontierHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
