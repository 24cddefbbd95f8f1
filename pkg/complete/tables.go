package complete

import (
	"strings"

	"github.com/tentacle-scylla/sqlcomplete/pkg/tokenize"
)

// TableRef is a table reference from a FROM, JOIN, UPDATE or INTO list.
type TableRef struct {
	// Alias defaults to the last segment of TableName.
	Alias string `json:"alias"`
	// TableName keeps qualifiers, e.g. "main.users".
	TableName string `json:"tableName"`
	Ordinal   int    `json:"ordinal"`
}

// Scope is the ordered set of table references visible at a position. Refs
// is the FROM list of the query at that position, and its first reference
// is the primary one. Outer holds the references of enclosing queries,
// innermost first; they only resolve qualifiers.
type Scope struct {
	Refs  []TableRef `json:"refs"`
	Outer []TableRef `json:"outer,omitempty"`
}

// Primary returns the first table reference.
func (s Scope) Primary() (TableRef, bool) {
	if len(s.Refs) == 0 {
		return TableRef{}, false
	}
	return s.Refs[0], true
}

// Lookup resolves a qualifier. Aliases are matched before table names, and
// exact matches before case-insensitive ones. Refs are searched before
// Outer.
func (s Scope) Lookup(name string) (TableRef, bool) {
	if name == "" {
		return TableRef{}, false
	}
	matchers := []func(TableRef) bool{
		func(r TableRef) bool { return r.Alias == name },
		func(r TableRef) bool { return r.TableName == name },
		func(r TableRef) bool { return strings.EqualFold(r.Alias, name) },
		func(r TableRef) bool { return strings.EqualFold(r.TableName, name) },
	}
	for _, refs := range [][]TableRef{s.Refs, s.Outer} {
		for _, match := range matchers {
			for _, r := range refs {
				if match(r) {
					return r, true
				}
			}
		}
	}
	return TableRef{}, false
}

// Empty reports whether the scope has no table references.
func (s Scope) Empty() bool {
	return len(s.Refs) == 0
}

// ResolveTables collects every table reference of a statement in order of
// appearance, subqueries included. Ordinals count within each query's own
// FROM list.
func ResolveTables(tokens []tokenize.Token) Scope {
	r := resolveQueries(tokens)
	return Scope{Refs: r.all}
}

// ResolveScope returns the references visible at cursor: the FROM list of the
// innermost query containing cursor, with the enclosing queries' lists as
// Outer. A FROM inside a function call such as EXTRACT(YEAR FROM d) is
// ignored, and derived tables are not references themselves. Incomplete
// lists are truncated without error.
func ResolveScope(tokens []tokenize.Token, cursor int) Scope {
	r := resolveQueries(tokens)

	// Queries are recorded in pre-order, so the last one containing the
	// cursor is the innermost.
	at := 0
	for i, q := range r.queries {
		if q.start <= cursor && cursor <= q.end {
			at = i
		}
	}

	scope := Scope{Refs: r.queries[at].refs}
	for p := r.queries[at].parent; p >= 0; p = r.queries[p].parent {
		scope.Outer = append(scope.Outer, r.queries[p].refs...)
	}
	return scope
}

// query is one SELECT level: the whole statement or a parenthesised
// subquery spanning [start, end].
type query struct {
	start, end int
	parent     int
	refs       []TableRef
}

func (q *query) add(name, alias string) (TableRef, bool) {
	if alias == "" {
		alias = lastSegment(name)
	}
	for _, r := range q.refs {
		if r.Alias == alias {
			return TableRef{}, false
		}
	}
	ref := TableRef{Alias: alias, TableName: name, Ordinal: len(q.refs)}
	q.refs = append(q.refs, ref)
	return ref, true
}

type tableResolver struct {
	sc      *tokenize.Scanner
	queries []*query
	all     []TableRef
}

// joinKeywords are the join introducers, longest first.
var joinKeywords = [][]string{
	{"LEFT", "OUTER", "JOIN"},
	{"RIGHT", "OUTER", "JOIN"},
	{"FULL", "OUTER", "JOIN"},
	{"LEFT", "JOIN"},
	{"RIGHT", "JOIN"},
	{"FULL", "JOIN"},
	{"INNER", "JOIN"},
	{"CROSS", "JOIN"},
	{"NATURAL", "JOIN"},
	{"JOIN"},
}

func resolveQueries(tokens []tokenize.Token) *tableResolver {
	top := &query{parent: -1}
	if len(tokens) > 0 {
		top.start = tokens[0].Start
		top.end = tokens[len(tokens)-1].End
	}
	r := &tableResolver{sc: tokenize.NewScanner(tokens), queries: []*query{top}}
	r.body(0, true)

	// Unclosed subqueries run to the end of the statement.
	for _, q := range r.queries {
		if q.end < 0 {
			q.end = top.end
		}
	}
	return r
}

// body scans the tokens of query qi until the ")" closing its group, which
// it consumes, or the end. tables is false inside a non-query group such as
// a function call, where FROM does not introduce tables.
func (r *tableResolver) body(qi int, tables bool) {
	sc := r.sc
	for !sc.Done() {
		switch {
		case sc.Is("("):
			r.group(qi)

		case sc.Is(")"):
			if qi == 0 && tables {
				// Stray ")" at the top level.
				sc.Next()
				continue
			}
			if tables {
				r.queries[qi].end = sc.Token().Start
			}
			sc.Next()
			return

		case tables && sc.IsKeyword("FROM"):
			sc.Next()
			r.tableList(qi, true)

		case tables && r.skipJoin():
			r.tableList(qi, true)

		case tables && sc.IsKeyword("UPDATE", "INTO"):
			sc.Next()
			r.tableList(qi, false)

		default:
			sc.Next()
		}
	}
}

// group handles the "(" under the scanner. A subquery opens a new query
// level; any other group belongs to query qi but lists no tables.
func (r *tableResolver) group(qi int) {
	open := r.sc.Token()
	next, ok := r.sc.Peek()
	r.sc.Next()
	if !ok || !next.IsKeyword("SELECT", "WITH") {
		r.body(qi, false)
		return
	}
	r.queries = append(r.queries, &query{start: open.End, end: -1, parent: qi})
	r.body(len(r.queries)-1, true)
}

func (r *tableResolver) skipJoin() bool {
	for _, seq := range joinKeywords {
		if r.sc.SkipKeywords(seq...) {
			return true
		}
	}
	return false
}

// tableList consumes "name [AS] [alias]" entries of query qi. A derived
// table "(SELECT ...) [AS] alias" is resolved as its own query level and
// its alias skipped. It stops at the first token that cannot continue the
// list and leaves the scanner on it.
func (r *tableResolver) tableList(qi int, allowComma bool) {
	sc := r.sc
	for !sc.Done() {
		switch {
		case sc.Is("("):
			r.group(qi)
			r.alias()
		case sc.Token().Type == tokenize.TokenIdentifier:
			name := parseDottedName(sc)
			if ref, ok := r.queries[qi].add(name, r.alias()); ok {
				r.all = append(r.all, ref)
			}
		default:
			return
		}

		if !allowComma || !sc.Is(",") {
			return
		}
		sc.Next()
	}
}

// alias consumes an optional "[AS] alias" and returns the alias.
func (r *tableResolver) alias() string {
	sc := r.sc
	if sc.IsKeyword("AS") {
		sc.Next()
	}
	if !sc.Done() && sc.Token().Type == tokenize.TokenIdentifier {
		alias := sc.Token().Name()
		sc.Next()
		return alias
	}
	return ""
}

// parseDottedName consumes ident(.ident)*. A trailing "." is consumed and
// dropped.
func parseDottedName(sc *tokenize.Scanner) string {
	parts := []string{sc.Token().Name()}
	sc.Next()
	for sc.Is(".") {
		sc.Next()
		if sc.Done() || sc.Token().Type != tokenize.TokenIdentifier {
			break
		}
		parts = append(parts, sc.Token().Name())
		sc.Next()
	}
	return strings.Join(parts, ".")
}

func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}
