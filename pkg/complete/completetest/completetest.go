// Package completetest provides helpers for exercising the completion engine
// with a caret-marked query and a small in-memory schema.
package completetest

import (
	"strings"

	"github.com/tentacle-scylla/sqlcomplete/pkg/complete"
	"github.com/tentacle-scylla/sqlcomplete/pkg/grammar"
	"github.com/tentacle-scylla/sqlcomplete/pkg/schema"
)

// Caret is the cursor marker understood by Request.
const Caret = "|"

// CatchCaret removes the first caret from s and returns the text with the
// caret's byte offset. Without a caret the cursor is at the end of the text.
func CatchCaret(s string) (string, int) {
	i := strings.Index(s, Caret)
	if i < 0 {
		return s, len(s)
	}
	return s[:i] + s[i+len(Caret):], i
}

// Request builds a completion request from a caret-marked query.
func Request(marked string) complete.Request {
	text, cursor := CatchCaret(marked)
	return complete.Request{Text: text, Cursor: cursor}
}

// Mark inserts the caret into text at cursor.
func Mark(text string, cursor int) string {
	return text[:cursor] + Caret + text[cursor:]
}

// Texts returns the replacement texts of proposals in order.
func Texts(proposals []complete.Proposal) []string {
	out := make([]string, len(proposals))
	for i, p := range proposals {
		out[i] = p.ReplacementText
	}
	return out
}

// Builder assembles a schema for completion tests.
type Builder struct {
	schema *schema.Schema
}

// NewBuilder creates an empty schema builder.
func NewBuilder() *Builder {
	return &Builder{schema: schema.NewSchema()}
}

// AddTable adds a table with untyped columns, in order.
func (b *Builder) AddTable(name string, columns ...string) *Builder {
	b.schema.AddTable(name).AddColumns(columns...)
	return b
}

// AddColumn adds a typed column to table, creating the table if needed.
func (b *Builder) AddColumn(table, name, typ string) *Builder {
	b.schema.AddTable(table).AddColumn(name, typ)
	return b
}

// Schema returns the built schema.
func (b *Builder) Schema() *schema.Schema {
	return b.schema
}

// Engine returns an engine over the built schema using the default grammar.
func (b *Builder) Engine(opts *complete.Options) *complete.Engine {
	return complete.NewEngine(b.schema, grammar.Default(), opts)
}
