package index

import "slices"

// PostingList is the ordered list of document IDs containing a term.
// Documents appear in the order they were first recorded and never twice.
type PostingList []string

// Contains reports whether docID is already in the list.
func (p PostingList) Contains(docID string) bool {
	return slices.Contains(p, docID)
}

// Clone returns an independent copy; a nil list clones to an empty one.
func (p PostingList) Clone() PostingList {
	return append(make(PostingList, 0, len(p)), p...)
}
