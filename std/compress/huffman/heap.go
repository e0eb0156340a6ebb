package huffman

// heapItem is a tree waiting to be merged, together with its priority keys.
type heapItem struct {
	node     Node
	nbLeaves int
	seq      int // creation order, unique
}

// A minHeap is a min-heap of partial Huffman trees.
//
// The code is identical to https://pkg.go.dev/container/heap but replaces interfaces with concrete
// type to avoid memory overhead.
type minHeap []heapItem

// less is a total order: weight, then fewer leaves (to keep trees shallow), then creation order.
func (h minHeap) less(i, j int) bool {
	wi, wj := h[i].node.Weight(), h[j].node.Weight()
	if wi != wj {
		return wi < wj
	}
	if h[i].nbLeaves != h[j].nbLeaves {
		return h[i].nbLeaves < h[j].nbLeaves
	}
	return h[i].seq < h[j].seq
}

func (h minHeap) swap(i, j int) { h[i], h[j] = h[j], h[i] }

// heapify establishes the heap invariants required by the other routines in this package.
// The complexity is O(n) where n = len(*h).
func (h *minHeap) heapify() {
	n := len(*h)
	for i := n/2 - 1; i >= 0; i-- {
		h.down(i, n)
	}
}

// push the element x onto the heap.
// The complexity is O(log n) where n = len(*h).
func (h *minHeap) push(x heapItem) {
	*h = append(*h, x)
	h.up(len(*h) - 1)
}

// popHead removes and returns the minimum element (according to less) from the heap.
// The complexity is O(log n) where n = len(*h).
func (h *minHeap) popHead() heapItem {
	n := len(*h) - 1
	h.swap(0, n)
	h.down(0, n)
	x := (*h)[n]
	*h = (*h)[0:n]
	return x
}

func (h *minHeap) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !h.less(j, i) {
			break
		}
		h.swap(i, j)
		j = i
	}
}

func (h *minHeap) down(i0, n int) bool {
	i := i0
	for {
		j1 := 2*i + 1
		if j1 >= n || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && h.less(j2, j1) {
			j = j2 // = 2*i + 2  // right child
		}
		if !h.less(j, i) {
			break
		}
		h.swap(i, j)
		i = j
	}
	return i > i0
}
