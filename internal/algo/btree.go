// Package algo contains the key-position scans used while descending and editing
// a single b-tree node.
package algo

import (
	"cmp"
	"sort"
)

// Nodes smaller than this are scanned linearly; larger ones use binary search.
const searchThreshold = 32

// FindChildIndex returns the index of the child pointer to follow for key: the
// first i with key <= keys[i], or len(keys) when key is greater than every
// separator. Separators are the maximum of their left subtree, so a key equal to
// a separator belongs to the child on its left.
func FindChildIndex[K cmp.Ordered](keys []K, key K) int {
	if len(keys) < searchThreshold {
		i := 0
		for i < len(keys) && cmp.Compare(key, keys[i]) > 0 {
			i++
		}
		return i
	}

	return sort.Search(len(keys), func(i int) bool {
		return cmp.Compare(key, keys[i]) <= 0
	})
}

// FindKey returns the index of key in keys, or -1 if not present.
func FindKey[K cmp.Ordered](keys []K, key K) int {
	if len(keys) < searchThreshold {
		for i := range keys {
			if cmp.Compare(key, keys[i]) == 0 {
				return i
			}
		}
		return -1
	}

	idx := sort.Search(len(keys), func(i int) bool {
		return cmp.Compare(keys[i], key) >= 0
	})
	if idx < len(keys) && cmp.Compare(keys[idx], key) == 0 {
		return idx
	}
	return -1
}

// FindInsertPosition returns the position at which key keeps keys sorted and
// whether an equal key already sits at that position.
func FindInsertPosition[K cmp.Ordered](keys []K, key K) (int, bool) {
	if len(keys) < searchThreshold {
		pos := 0
		for pos < len(keys) {
			c := cmp.Compare(key, keys[pos])
			if c == 0 {
				return pos, true
			}
			if c < 0 {
				break
			}
			pos++
		}
		return pos, false
	}

	pos := sort.Search(len(keys), func(i int) bool {
		return cmp.Compare(key, keys[i]) <= 0
	})
	return pos, pos < len(keys) && cmp.Compare(keys[pos], key) == 0
}

// FindUpperBound returns the first index whose key is strictly greater than key,
// or len(keys) if there is none.
func FindUpperBound[K cmp.Ordered](keys []K, key K) int {
	if len(keys) < searchThreshold {
		i := 0
		for i < len(keys) && cmp.Compare(keys[i], key) <= 0 {
			i++
		}
		return i
	}

	return sort.Search(len(keys), func(i int) bool {
		return cmp.Compare(keys[i], key) > 0
	})
}

// SplitPoint returns how many of total entries the left half of a split keeps:
// floor(total/2). Callers pass order+1 for the combined buffer.
func SplitPoint(total int) int {
	return total / 2
}
