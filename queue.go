package decimater

import "container/heap"

// queueEntry is the priority entry of spec.md §3: primary order by cost
// ascending, ties broken by edge id ascending.
type queueEntry struct {
	cost float64
	edge int32
}

// EdgeQueue is component C6: a container/heap-ordered multiset keyed by
// (cost, edge) with a per-edge handle table for O(log n) Update/Erase,
// adapted from nat-n-shapeset/edge.go's edgeHeap (there a []*Edge ordered by
// .Error, updated via a linear-scan UpdateEdges/heap.Fix). This module's
// legality rules (§4.5) re-score two full one-rings after every collapse, so
// an O(log n) handle lookup matters more here than it did for the teacher's
// border-only edge set.
type EdgeQueue struct {
	h       []queueEntry
	handles map[int32]int // edge -> index in h
}

// NewEdgeQueue returns an empty queue.
func NewEdgeQueue() *EdgeQueue {
	return &EdgeQueue{handles: make(map[int32]int)}
}

// Len reports the number of live entries.
func (q *EdgeQueue) Len() int { return len(q.h) }

func (q *EdgeQueue) Less(i, j int) bool {
	a, b := q.h[i], q.h[j]
	if a.cost != b.cost {
		return a.cost < b.cost
	}
	return a.edge < b.edge
}

func (q *EdgeQueue) Swap(i, j int) {
	q.h[i], q.h[j] = q.h[j], q.h[i]
	q.handles[q.h[i].edge] = i
	q.handles[q.h[j].edge] = j
}

func (q *EdgeQueue) Push(x interface{}) {
	e := x.(queueEntry)
	q.handles[e.edge] = len(q.h)
	q.h = append(q.h, e)
}

func (q *EdgeQueue) Pop() interface{} {
	old := q.h
	n := len(old)
	e := old[n-1]
	q.h = old[:n-1]
	delete(q.handles, e.edge)
	return e
}

// Insert adds (cost, edge); edge must not already be present.
func (q *EdgeQueue) Insert(cost float64, edge int32) {
	heap.Push(q, queueEntry{cost: cost, edge: edge})
}

// Update changes edge's cost in place (erase-then-reinsert per spec.md §4.6),
// inserting it if not already present.
func (q *EdgeQueue) Update(edge int32, newCost float64) {
	if i, ok := q.handles[edge]; ok {
		q.h[i].cost = newCost
		heap.Fix(q, i)
		return
	}
	q.Insert(newCost, edge)
}

// Erase removes edge if present; a no-op otherwise.
func (q *EdgeQueue) Erase(edge int32) {
	if i, ok := q.handles[edge]; ok {
		heap.Remove(q, i)
	}
}

// Contains reports whether edge currently has a live entry.
func (q *EdgeQueue) Contains(edge int32) bool {
	_, ok := q.handles[edge]
	return ok
}

// PeekMin returns the minimum (cost, edge) without removing it.
func (q *EdgeQueue) PeekMin() (cost float64, edge int32, ok bool) {
	if len(q.h) == 0 {
		return 0, 0, false
	}
	top := q.h[0]
	return top.cost, top.edge, true
}

// PopMin removes and returns the minimum (cost, edge).
func (q *EdgeQueue) PopMin() (cost float64, edge int32, ok bool) {
	if len(q.h) == 0 {
		return 0, 0, false
	}
	top := heap.Pop(q).(queueEntry)
	return top.cost, top.edge, true
}
