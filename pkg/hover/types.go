// Package hover describes the SQL token at a cursor position: keywords, the
// tables and aliases a statement references, and their columns.
package hover

// Kind identifies the type of hover target.
type Kind string

const (
	KindKeyword Kind = "keyword"
	KindTable   Kind = "table"
	KindAlias   Kind = "alias"
	KindColumn  Kind = "column"
)

// Range represents a text range in the query.
type Range struct {
	// Start is the starting offset (inclusive)
	Start int `json:"start"`
	// End is the ending offset (exclusive)
	End int `json:"end"`
}

// Info contains information about a token at a position.
type Info struct {
	// Content is the hover text (supports markdown)
	Content string `json:"content"`

	// Range is the text range this hover applies to
	Range Range `json:"range"`

	// Kind identifies the type of token
	Kind Kind `json:"kind"`

	// Name is the resolved object name. For aliases and columns it is the
	// name as declared in the schema, not as typed.
	Name string `json:"name"`

	// Table is the owning table of a column or the target of an alias.
	Table string `json:"table,omitempty"`
}

// Request is a hover request. Position is a byte offset into Text; a
// position just past the end of a word still hovers that word.
type Request struct {
	Text     string `json:"text"`
	Position int    `json:"position"`
}
