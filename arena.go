package lazybtree

import (
	"cmp"

	"github.com/cockroachdb/errors"
)

// nodeID addresses a slot in a tree's arena. The zero ID means "no node" and is
// used for the root's parent, missing siblings and an empty tree.
type nodeID uint32

const noNode nodeID = 0

// arena owns every node of a tree. Nodes refer to each other by ID only, so
// parent and sibling back references never form pointer cycles. Released slots
// are kept on a free list and handed out again LIFO.
type arena[K cmp.Ordered, V any] struct {
	slots []*node[K, V] // slots[0] is reserved for noNode
	free  []nodeID
}

func newArena[K cmp.Ordered, V any]() arena[K, V] {
	return arena[K, V]{
		slots: make([]*node[K, V], 1),
		free:  make([]nodeID, 0),
	}
}

// allocate returns a fresh, unlinked node sized for order keys.
func (a *arena[K, V]) allocate(leaf bool, order int) *node[K, V] {
	var id nodeID
	if n := len(a.free); n > 0 {
		// Pop from end
		id = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		id = nodeID(len(a.slots))
		a.slots = append(a.slots, nil)
	}

	n := &node[K, V]{
		id:   id,
		leaf: leaf,
		keys: make([]K, 0, order),
	}
	if leaf {
		n.values = make([]V, 0, order)
	} else {
		n.children = make([]nodeID, 0, order+1)
	}
	a.slots[id] = n
	return n
}

// get returns the node in slot id. A released or never-allocated slot means a
// broken link somewhere in the tree.
func (a *arena[K, V]) get(id nodeID) *node[K, V] {
	n, ok := a.lookup(id)
	if !ok {
		panic(errors.AssertionFailedf("lazybtree: dangling node id %d", id))
	}
	return n
}

func (a *arena[K, V]) lookup(id nodeID) (*node[K, V], bool) {
	if id == noNode || int(id) >= len(a.slots) || a.slots[id] == nil {
		return nil, false
	}
	return a.slots[id], true
}

// release returns slot id to the free list. The caller must already have
// detached the node from its parent and sibling chain.
func (a *arena[K, V]) release(id nodeID) {
	a.get(id)
	a.slots[id] = nil
	a.free = append(a.free, id)
}

// live returns the number of allocated nodes.
func (a *arena[K, V]) live() int {
	return len(a.slots) - 1 - len(a.free)
}
