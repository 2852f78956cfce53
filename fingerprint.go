package lazybtree

import (
	"fmt"
	"io"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the tree's full structure: every node's ID, kind, keys,
// values, children and parent and sibling links, in pre-order. Two trees (or
// one tree at two points in time) with equal fingerprints have the same shape
// and contents, up to hash collisions.
func (t *Tree[K, V]) Fingerprint() uint64 {
	d := xxhash.New()
	fmt.Fprintf(d, "order=%d count=%d root=%d\n", t.order, t.count, t.root)
	if t.root != noNode {
		t.fingerprintNode(d, t.node(t.root))
	}
	return d.Sum64()
}

func (t *Tree[K, V]) fingerprintNode(w io.Writer, n *node[K, V]) {
	fmt.Fprintf(w, "%d leaf=%t parent=%d prev=%d next=%d keys=%#v",
		n.id, n.leaf, n.parent, n.prev, n.next, n.keys)
	if n.leaf {
		fmt.Fprintf(w, " values=%#v\n", n.values)
		return
	}

	fmt.Fprintf(w, " children=%v\n", n.children)
	for _, id := range n.children {
		t.fingerprintNode(w, t.node(id))
	}
}
