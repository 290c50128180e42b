package btree

// NodeSnapshot is a detached, JSON-friendly copy of a subtree used for
// visualization. It shares no memory with the live tree.
type NodeSnapshot struct {
	Keys     []string       `json:"keys"`
	Children []NodeSnapshot `json:"children"`
	Leaf     bool           `json:"leaf"`
}

// Snapshot copies the whole tree starting at the root.
func (b *BTree) Snapshot() NodeSnapshot {
	return snapshot(b.root)
}

func snapshot(n *Node) NodeSnapshot {
	s := NodeSnapshot{
		Keys:     append(make([]string, 0, len(n.keys)), n.keys...),
		Children: make([]NodeSnapshot, 0, len(n.children)),
		Leaf:     n.leaf,
	}
	for _, child := range n.children {
		s.Children = append(s.Children, snapshot(child))
	}
	return s
}
