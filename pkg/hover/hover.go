package hover

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/tentacle-scylla/sqlcomplete/pkg/complete"
	"github.com/tentacle-scylla/sqlcomplete/pkg/schema"
	"github.com/tentacle-scylla/sqlcomplete/pkg/tokenize"
	"github.com/tentacle-scylla/sqlcomplete/pkg/types"
)

// Resolver answers hover requests against a schema provider.
type Resolver struct {
	provider schema.Provider
}

// NewResolver creates a resolver. provider may be nil, in which case only
// keywords and aliases are described.
func NewResolver(provider schema.Provider) *Resolver {
	return &Resolver{provider: provider}
}

// Hover returns information for the token at req.Position, or nil when
// there is nothing to describe.
func (r *Resolver) Hover(ctx context.Context, req Request) (*Info, error) {
	if req.Position < 0 || req.Position > len(req.Text) {
		return nil, types.InvalidArgumentf("position %d outside text of length %d", req.Position, len(req.Text))
	}

	tokens := tokenize.Tokenize(req.Text)
	seg := tokenize.StatementAt(tokens, req.Position)
	i := FindTokenAt(seg.Tokens, req.Position)
	if i < 0 {
		return nil, nil
	}
	tok := seg.Tokens[i]

	switch tok.Type {
	case tokenize.TokenKeyword:
		return keywordHover(tok), nil
	case tokenize.TokenIdentifier:
		return r.identifierHover(ctx, seg.Tokens, i)
	}
	return nil, nil
}

// FindTokenAt returns the index of the word containing position, or ending
// at it. It returns -1 when position is not on a word.
func FindTokenAt(toks []tokenize.Token, position int) int {
	for i, tok := range toks {
		if !tok.IsWord() {
			continue
		}
		if tok.Start <= position && position <= tok.End {
			return i
		}
	}
	return -1
}

func keywordHover(tok tokenize.Token) *Info {
	info := GetKeywordInfo(tok.Text)
	if info == nil {
		return nil
	}
	return &Info{
		Content: formatKeywordHover(info),
		Range:   Range{Start: tok.Start, End: tok.End},
		Kind:    KindKeyword,
		Name:    info.Name,
	}
}

// identifierHover resolves toks[i] as, in order: a column after a
// qualifier, a table or alias, or an unqualified column of a table in scope.
func (r *Resolver) identifierHover(ctx context.Context, toks []tokenize.Token, i int) (*Info, error) {
	tok := toks[i]
	name := tok.Name()
	rng := Range{Start: tok.Start, End: tok.End}
	scope := complete.ResolveScope(toks, tok.Start)

	if qual, ok := qualifierOf(toks, i); ok {
		ref, ok := scope.Lookup(qual)
		if !ok {
			return nil, nil
		}
		return r.columnHover(ctx, ref.TableName, name, rng)
	}

	if ref, ok := scope.Lookup(name); ok {
		if ref.Alias != "" && strings.EqualFold(ref.Alias, name) && !strings.EqualFold(ref.TableName, name) {
			return &Info{
				Content: fmt.Sprintf("**%s** (alias)\n\nTable: %s", ref.Alias, ref.TableName),
				Range:   rng,
				Kind:    KindAlias,
				Name:    ref.Alias,
				Table:   ref.TableName,
			}, nil
		}
		return r.tableHover(ctx, ref.TableName, rng)
	}

	// A name followed by "." qualifies something; a table outside the
	// scope is the only thing it can still be.
	if !qualifies(toks, i) {
		for _, ref := range scope.Refs {
			info, err := r.columnHover(ctx, ref.TableName, name, rng)
			if err != nil || info != nil {
				return info, err
			}
		}
	}
	if r.provider == nil {
		return nil, nil
	}
	tables, err := r.provider.ListTables(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list tables")
	}
	for _, t := range tables {
		if strings.EqualFold(t.Name, name) {
			return r.tableHover(ctx, t.Name, rng)
		}
	}
	return nil, nil
}

func (r *Resolver) tableHover(ctx context.Context, table string, rng Range) (*Info, error) {
	var cols []schema.Object
	if r.provider != nil {
		var err error
		if cols, err = r.provider.ListColumns(ctx, table); err != nil {
			return nil, errors.Wrapf(err, "list columns of %s", table)
		}
	}
	return &Info{
		Content: formatTableHover(table, cols),
		Range:   rng,
		Kind:    KindTable,
		Name:    table,
	}, nil
}

func (r *Resolver) columnHover(ctx context.Context, table, name string, rng Range) (*Info, error) {
	if r.provider == nil {
		return nil, nil
	}
	cols, err := r.provider.ListColumns(ctx, table)
	if err != nil {
		return nil, errors.Wrapf(err, "list columns of %s", table)
	}
	for _, col := range cols {
		if strings.EqualFold(col.Name, name) {
			return &Info{
				Content: formatColumnHover(col, table),
				Range:   rng,
				Kind:    KindColumn,
				Name:    col.Name,
				Table:   table,
			}, nil
		}
	}
	return nil, nil
}

// qualifierOf returns the name in "name.toks[i]".
func qualifierOf(toks []tokenize.Token, i int) (string, bool) {
	if i < 2 || !toks[i-1].Is(".") || toks[i-1].End != toks[i].Start {
		return "", false
	}
	q := toks[i-2]
	if q.Type != tokenize.TokenIdentifier || q.End != toks[i-1].Start {
		return "", false
	}
	return q.Name(), true
}

// qualifies reports whether toks[i] is directly followed by ".".
func qualifies(toks []tokenize.Token, i int) bool {
	return i+1 < len(toks) && toks[i+1].Is(".") && toks[i+1].Start == toks[i].End
}

// formatKeywordHover formats hover content for a keyword.
func formatKeywordHover(info *KeywordInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**%s**\n\n", info.Name))
	sb.WriteString(info.Description)
	if info.Syntax != "" {
		sb.WriteString("\n\n```sql\n")
		sb.WriteString(info.Syntax)
		sb.WriteString("\n```")
	}
	return sb.String()
}

// formatColumnHover formats hover content for a column.
func formatColumnHover(col schema.Object, table string) string {
	var sb strings.Builder
	if col.Type != "" {
		sb.WriteString(fmt.Sprintf("**%s**: `%s`\n\n", col.Name, col.Type))
	} else {
		sb.WriteString(fmt.Sprintf("**%s**\n\n", col.Name))
	}
	sb.WriteString(fmt.Sprintf("Table: %s", table))
	return sb.String()
}

// formatTableHover formats hover content for a table.
func formatTableHover(table string, cols []schema.Object) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("**%s**\n\n", table))
	sb.WriteString(fmt.Sprintf("%d column(s)", len(cols)))
	if len(cols) > 0 {
		names := make([]string, len(cols))
		for i, c := range cols {
			names[i] = c.Name
		}
		sb.WriteString(": " + strings.Join(names, ", "))
	}
	return sb.String()
}
