// Package btree implements an in-memory B-tree of distinct terms.
//
// The tree is used purely as an existence index: nodes hold keys only, no
// associated values. Insertion is the top-down proactive-split variant, so a
// single pass from the root suffices and no backtracking is ever needed.
//
// Insert does not deduplicate. Callers that need a set must check Search
// first, or use EnsureIndexed which does both.
package btree

import (
	"slices"
	"sort"

	internalErrors "github.com/gcbaptista/go-text-indexer/internal/errors"
)

// DefaultDegree is the branching parameter used when none is configured:
// at most 5 keys per node, at least 2 in every non-root node.
const DefaultDegree = 3

// Node is a single B-tree node. Leaves own no children; an internal node
// owns exactly len(keys)+1 children.
type Node struct {
	keys     []string
	children []*Node
	leaf     bool
}

// BTree is an ordered set of terms with a fixed branching parameter t.
type BTree struct {
	root *Node
	t    int
	size int
}

// New creates an empty tree with branching parameter t. It fails when t < 2.
func New(t int) (*BTree, error) {
	if t < 2 {
		return nil, internalErrors.NewDegreeError(t)
	}
	return &BTree{
		root: &Node{leaf: true},
		t:    t,
	}, nil
}

// Degree returns the branching parameter t.
func (b *BTree) Degree() int {
	return b.t
}

// Len returns the number of keys inserted into the tree.
func (b *BTree) Len() int {
	return b.size
}

func (b *BTree) maxKeys() int {
	return 2*b.t - 1
}

// Insert adds key to the tree. A full root is split first, growing the tree
// by one level; full children are split on the way down.
func (b *BTree) Insert(key string) {
	root := b.root
	if len(root.keys) == b.maxKeys() {
		newRoot := &Node{children: []*Node{root}}
		b.root = newRoot
		b.splitChild(newRoot, 0)
		b.insertNonFull(newRoot, key)
	} else {
		b.insertNonFull(root, key)
	}
	b.size++
}

// insertNonFull descends from x, which must not be full, to the leaf that
// receives key.
func (b *BTree) insertNonFull(x *Node, key string) {
	for !x.leaf {
		i := upperBound(x.keys, key)
		if len(x.children[i].keys) == b.maxKeys() {
			b.splitChild(x, i)
			if key > x.keys[i] {
				i++
			}
		}
		x = x.children[i]
	}
	x.keys = slices.Insert(x.keys, upperBound(x.keys, key), key)
}

// splitChild splits the full child y = x.children[i]. The median key moves up
// into x at position i, y keeps the lower t-1 keys and a new right sibling z
// takes the upper t-1 keys (and the upper t children when y is internal).
func (b *BTree) splitChild(x *Node, i int) {
	t := b.t
	y := x.children[i]
	z := &Node{leaf: y.leaf}

	median := y.keys[t-1]
	z.keys = slices.Clone(y.keys[t:])
	clear(y.keys[t-1:])
	y.keys = y.keys[:t-1]

	if !y.leaf {
		z.children = slices.Clone(y.children[t:])
		clear(y.children[t:])
		y.children = y.children[:t]
	}

	x.keys = slices.Insert(x.keys, i, median)
	x.children = slices.Insert(x.children, i+1, z)
}

// Search reports whether key is present in the tree.
func (b *BTree) Search(key string) bool {
	x := b.root
	for {
		i := sort.SearchStrings(x.keys, key)
		if i < len(x.keys) && x.keys[i] == key {
			return true
		}
		if x.leaf {
			return false
		}
		x = x.children[i]
	}
}

// EnsureIndexed inserts key only if it is not already present. It reports
// whether an insertion happened.
func (b *BTree) EnsureIndexed(key string) bool {
	if b.Search(key) {
		return false
	}
	b.Insert(key)
	return true
}

// Height returns the number of levels in the tree; an empty tree has height 1.
func (b *BTree) Height() int {
	height := 1
	for x := b.root; !x.leaf; x = x.children[0] {
		height++
	}
	return height
}

// Walk visits every key in ascending order until fn returns false.
func (b *BTree) Walk(fn func(key string) bool) {
	walk(b.root, fn)
}

func walk(x *Node, fn func(key string) bool) bool {
	for i, key := range x.keys {
		if !x.leaf && !walk(x.children[i], fn) {
			return false
		}
		if !fn(key) {
			return false
		}
	}
	if !x.leaf {
		return walk(x.children[len(x.keys)], fn)
	}
	return true
}

// Keys returns all keys in ascending order.
func (b *BTree) Keys() []string {
	keys := make([]string, 0, b.size)
	b.Walk(func(key string) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// upperBound returns the index of the first key strictly greater than key.
func upperBound(keys []string, key string) int {
	return sort.Search(len(keys), func(j int) bool { return keys[j] > key })
}
