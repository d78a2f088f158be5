package ridequeue

const (
	red   = true
	black = false
)

// treeNode is a node of the left-leaning red-black tree, keyed by ride ID.
// color is the color of the link from the parent.
type treeNode struct {
	ride        Ride
	left, right *treeNode
	color       bool
}

// rideTree is a left-leaning red-black tree keyed by ride ID.
// It answers point and range queries for the dispatcher.
type rideTree struct {
	root *treeNode
	size int
}

func isRed(n *treeNode) bool {
	return n != nil && n.color == red
}

func (t *rideTree) len() int { return t.size }

func (t *rideTree) get(id int) (Ride, bool) {
	n := t.root
	for n != nil {
		switch {
		case id < n.ride.ID:
			n = n.left
		case id > n.ride.ID:
			n = n.right
		default:
			return n.ride, true
		}
	}
	return Ride{}, false
}

func (t *rideTree) contains(id int) bool {
	_, ok := t.get(id)
	return ok
}

// insert adds r to the tree. It returns false and leaves the tree untouched
// if a ride with the same ID is already present.
func (t *rideTree) insert(r Ride) bool {
	var inserted bool
	t.root, inserted = insertNode(t.root, r)
	t.root.color = black
	if inserted {
		t.size++
	}
	return inserted
}

func insertNode(h *treeNode, r Ride) (*treeNode, bool) {
	if h == nil {
		return &treeNode{ride: r, color: red}, true
	}

	var inserted bool
	switch {
	case r.ID < h.ride.ID:
		h.left, inserted = insertNode(h.left, r)
	case r.ID > h.ride.ID:
		h.right, inserted = insertNode(h.right, r)
	default:
		return h, false
	}
	if !inserted {
		return h, false
	}
	return balance(h), true
}

// delete removes the ride with the given ID. It returns false if no such ride exists.
func (t *rideTree) delete(id int) bool {
	if !t.contains(id) {
		return false
	}

	// Temporarily color the root red so the descent always has a red link to borrow from.
	if !isRed(t.root.left) && !isRed(t.root.right) {
		t.root.color = red
	}
	t.root = deleteNode(t.root, id)
	if t.root != nil {
		t.root.color = black
	}
	t.size--
	return true
}

// deleteNode removes id from the subtree rooted at h. id must be present.
func deleteNode(h *treeNode, id int) *treeNode {
	if id < h.ride.ID {
		if !isRed(h.left) && !isRed(h.left.left) {
			h = moveRedLeft(h)
		}
		h.left = deleteNode(h.left, id)
		return balance(h)
	}

	if isRed(h.left) {
		h = rotateRight(h)
	}
	if id == h.ride.ID && h.right == nil {
		return nil
	}
	if !isRed(h.right) && !isRed(h.right.left) {
		h = moveRedRight(h)
	}
	if id == h.ride.ID {
		// Replace with the successor, then remove the successor from the right subtree.
		h.ride = minNode(h.right).ride
		h.right = deleteMin(h.right)
	} else {
		h.right = deleteNode(h.right, id)
	}
	return balance(h)
}

func deleteMin(h *treeNode) *treeNode {
	if h.left == nil {
		return nil
	}
	if !isRed(h.left) && !isRed(h.left.left) {
		h = moveRedLeft(h)
	}
	h.left = deleteMin(h.left)
	return balance(h)
}

func minNode(h *treeNode) *treeNode {
	for h.left != nil {
		h = h.left
	}
	return h
}

func rotateLeft(h *treeNode) *treeNode {
	x := h.right
	h.right = x.left
	x.left = h
	x.color = h.color
	h.color = red
	return x
}

func rotateRight(h *treeNode) *treeNode {
	x := h.left
	h.left = x.right
	x.right = h
	x.color = h.color
	h.color = red
	return x
}

func flipColors(h *treeNode) {
	h.color = !h.color
	h.left.color = !h.left.color
	h.right.color = !h.right.color
}

// moveRedLeft makes h.left or one of its children red. h is red, h.left and h.left.left are black.
func moveRedLeft(h *treeNode) *treeNode {
	flipColors(h)
	if isRed(h.right.left) {
		h.right = rotateRight(h.right)
		h = rotateLeft(h)
		flipColors(h)
	}
	return h
}

// moveRedRight makes h.right or one of its children red. h is red, h.right and h.right.left are black.
func moveRedRight(h *treeNode) *treeNode {
	flipColors(h)
	if isRed(h.left.left) {
		h = rotateRight(h)
		flipColors(h)
	}
	return h
}

// balance restores the left-leaning invariants on the way back up.
func balance(h *treeNode) *treeNode {
	if isRed(h.right) && !isRed(h.left) {
		h = rotateLeft(h)
	}
	if isRed(h.left) && isRed(h.left.left) {
		h = rotateRight(h)
	}
	if isRed(h.left) && isRed(h.right) {
		flipColors(h)
	}
	return h
}

// ascendRange calls fn for every ride with lo <= ID <= hi in ascending ID order,
// until fn returns false.
func (t *rideTree) ascendRange(lo, hi int, fn func(Ride) bool) {
	ascendRange(t.root, lo, hi, fn)
}

func ascendRange(n *treeNode, lo, hi int, fn func(Ride) bool) bool {
	if n == nil {
		return true
	}
	if lo < n.ride.ID {
		if !ascendRange(n.left, lo, hi, fn) {
			return false
		}
	}
	if lo <= n.ride.ID && n.ride.ID <= hi {
		if !fn(n.ride) {
			return false
		}
	}
	if hi > n.ride.ID {
		return ascendRange(n.right, lo, hi, fn)
	}
	return true
}

func (t *rideTree) rangeScan(lo, hi int) []Ride {
	var rides []Ride
	t.ascendRange(lo, hi, func(r Ride) bool {
		rides = append(rides, r)
		return true
	})
	return rides
}
