// Package treeprint dumps a lazybtree.Tree for debugging. It only uses the
// tree's read-only node accessors.
//
// Each node is printed in pre-order as
//
//	<level>:<id>: <child> <key> <child> <key> ... <child>
//
// followed by its "Prev sibling", "Next sibling" and "Parent" IDs when set.
// Leaves print only their keys. Degenerate nodes print the child before each key
// and nothing after the last one.
package treeprint

import (
	"bufio"
	"cmp"
	"fmt"
	"io"

	"lazybtree"
)

// Fprint writes the tree rooted at t's root to w. An empty tree prints nothing.
func Fprint[K cmp.Ordered, V any](w io.Writer, t *lazybtree.Tree[K, V]) error {
	root, ok := t.Root()
	if !ok {
		return nil
	}

	bw := bufio.NewWriter(w)
	printNode(bw, root, 1)
	return bw.Flush()
}

func printNode[K cmp.Ordered, V any](w *bufio.Writer, n lazybtree.Node[K, V], level int) {
	fmt.Fprintf(w, "%d:%d:", level, n.ID())
	for i := 0; i < n.NumKeys(); i++ {
		if !n.IsLeaf() {
			fmt.Fprintf(w, " %d", n.Child(i).ID())
		}
		fmt.Fprintf(w, " %v", n.Key(i))
	}
	if !n.IsLeaf() && n.NumChildren() > n.NumKeys() {
		fmt.Fprintf(w, " %d", n.Child(n.NumKeys()).ID())
	}
	fmt.Fprintln(w)

	if prev, ok := n.Prev(); ok {
		fmt.Fprintf(w, "Prev sibling: %d\n", prev.ID())
	}
	if next, ok := n.Next(); ok {
		fmt.Fprintf(w, "Next sibling: %d\n", next.ID())
	}
	if parent, ok := n.Parent(); ok {
		fmt.Fprintf(w, "Parent: %d\n", parent.ID())
	}

	for i := 0; i < n.NumChildren(); i++ {
		printNode(w, n.Child(i), level+1)
	}
}
