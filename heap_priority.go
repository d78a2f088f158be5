package ridequeue

import "container/heap"

// queuedRide is a ride stored in the priority heap.
type queuedRide struct {
	ride  Ride
	index int // index in the priority heap (-1 if not present)
}

// priorityHeap: min-heap by cost, then duration, tie-break by ID ascending.
type priorityHeap []*queuedRide

func (h priorityHeap) Len() int { return len(h) }

func (h priorityHeap) Less(i, j int) bool {
	a, b := h[i].ride, h[j].ride
	if a.Less(b) {
		return true
	}
	if b.Less(a) {
		return false
	}
	// Equal priority: lower ID comes first so extraction order is deterministic.
	return a.ID < b.ID
}

func (h priorityHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *priorityHeap) Push(x interface{}) {
	n := x.(*queuedRide)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *priorityHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // avoid memory leak
	item.index = -1
	*h = old[0 : n-1]
	return item
}

// rideQueue is a priority heap of rides with an ID index, so removal of an
// arbitrary ride does not need a scan.
type rideQueue struct {
	heap priorityHeap
	byID map[int]*queuedRide
}

func newRideQueue() rideQueue {
	return rideQueue{byID: make(map[int]*queuedRide)}
}

func (q *rideQueue) len() int { return len(q.heap) }

func (q *rideQueue) contains(id int) bool {
	_, ok := q.byID[id]
	return ok
}

// push adds r and percolates it up. The caller guarantees r.ID is not queued.
func (q *rideQueue) push(r Ride) {
	n := &queuedRide{ride: r, index: -1}
	heap.Push(&q.heap, n)
	q.byID[r.ID] = n
}

func (q *rideQueue) peek() (Ride, bool) {
	if len(q.heap) == 0 {
		return Ride{}, false
	}
	return q.heap[0].ride, true
}

// popMin removes and returns the highest-priority ride.
func (q *rideQueue) popMin() (Ride, bool) {
	if len(q.heap) == 0 {
		return Ride{}, false
	}
	n := heap.Pop(&q.heap).(*queuedRide)
	delete(q.byID, n.ride.ID)
	return n.ride, true
}

// remove deletes the ride with the given ID. It is a no-op returning false if
// the ride is not queued.
func (q *rideQueue) remove(id int) bool {
	n, ok := q.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&q.heap, n.index)
	delete(q.byID, id)
	return true
}

// build appends rides to the queue and restores the heap property bottom-up
// in linear time. The caller guarantees none of the IDs are queued.
func (q *rideQueue) build(rides []Ride) {
	for _, r := range rides {
		n := &queuedRide{ride: r, index: len(q.heap)}
		q.heap = append(q.heap, n)
		q.byID[r.ID] = n
	}
	heap.Init(&q.heap)
}
