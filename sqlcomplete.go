// Package sqlcomplete provides context-aware SQL completion.
//
// This is a convenience package that re-exports the main types and functions
// from the sub-packages. For more control, import the sub-packages directly:
//
//   - github.com/tentacle-scylla/sqlcomplete/pkg/complete - Completion engine
//   - github.com/tentacle-scylla/sqlcomplete/pkg/hover    - Hover information
//   - github.com/tentacle-scylla/sqlcomplete/pkg/grammar  - Keyword grammars
//   - github.com/tentacle-scylla/sqlcomplete/pkg/schema   - Schema types and providers
//   - github.com/tentacle-scylla/sqlcomplete/pkg/tokenize - SQL tokenizer
//   - github.com/tentacle-scylla/sqlcomplete/pkg/types    - Common types (errors, StatementType)
package sqlcomplete

import (
	"context"

	"github.com/tentacle-scylla/sqlcomplete/pkg/complete"
	"github.com/tentacle-scylla/sqlcomplete/pkg/grammar"
	"github.com/tentacle-scylla/sqlcomplete/pkg/hover"
	"github.com/tentacle-scylla/sqlcomplete/pkg/schema"
	"github.com/tentacle-scylla/sqlcomplete/pkg/tokenize"
	"github.com/tentacle-scylla/sqlcomplete/pkg/types"
)

// Re-export types
type (
	// Engine runs completion against a schema provider and grammar
	Engine = complete.Engine

	// Options configures completion behavior
	Options = complete.Options

	// Request is a completion request: text and a cursor offset
	Request = complete.Request

	// Proposal is a single completion suggestion
	Proposal = complete.Proposal

	// Result holds proposals together with the resolved context and scope
	Result = complete.Result

	// CursorContext describes what is expected at the cursor
	CursorContext = complete.CursorContext

	// Scope is the ordered set of tables a statement references
	Scope = complete.Scope

	// Provider supplies table and column names
	Provider = schema.Provider

	// Schema is an in-memory Provider
	Schema = schema.Schema

	// Grammar is a keyword successor table
	Grammar = grammar.Grammar

	// HoverInfo contains information about a token at a position
	HoverInfo = hover.Info

	// HoverRequest is a hover request
	HoverRequest = hover.Request

	// Token represents a single lexical token
	Token = tokenize.Token

	// StatementType identifies the kind of statement
	StatementType = types.StatementType
)

// Re-export proposal kinds
const (
	KindKeyword = complete.KindKeyword
	KindTable   = complete.KindTable
	KindColumn  = complete.KindColumn
)

// NewEngine creates a completion engine. A nil grammar uses the default
// dialect and nil options use DefaultOptions.
func NewEngine(provider Provider, g *Grammar, opts *Options) *Engine {
	return complete.NewEngine(provider, g, opts)
}

// DefaultOptions returns the default completion options
func DefaultOptions() *Options {
	return complete.DefaultOptions()
}

// NewSchema creates an empty schema
func NewSchema() *Schema {
	return schema.NewSchema()
}

// LoadSchema reads a schema from a YAML or JSON file
func LoadSchema(path string) (*Schema, error) {
	return schema.LoadFile(path)
}

// LoadGrammar returns the keyword grammar of a dialect
func LoadGrammar(dialect string) (*Grammar, error) {
	return grammar.Load(dialect)
}

// Complete returns proposals for text at cursor using the default grammar
// and options.
func Complete(ctx context.Context, provider Provider, text string, cursor int) ([]Proposal, error) {
	return complete.NewEngine(provider, nil, nil).Complete(ctx, Request{Text: text, Cursor: cursor})
}

// Hover describes the word at position
func Hover(ctx context.Context, provider Provider, text string, position int) (*HoverInfo, error) {
	return hover.NewResolver(provider).Hover(ctx, HoverRequest{Text: text, Position: position})
}

// GetTokens returns all tokens of a SQL string, including whitespace and comments
func GetTokens(input string) []Token {
	return tokenize.Tokenize(input)
}
