package model

// Document is a loaded text document, identified by its filename. Its content
// is stored once at load time and never mutated afterwards.
type Document struct {
	ID      string `json:"filename"`
	Content string `json:"content"`
}

// Chars returns the length of the document content in characters.
func (d Document) Chars() int {
	return len([]rune(d.Content))
}
