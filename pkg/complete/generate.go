package complete

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/tentacle-scylla/sqlcomplete/internal/logging"
	"github.com/tentacle-scylla/sqlcomplete/pkg/grammar"
	"github.com/tentacle-scylla/sqlcomplete/pkg/schema"
)

// GenerateProposals builds the ranked proposals for a resolved context.
// Provider failures yield no schema proposals; use an Engine with a logger
// to see them.
func GenerateProposals(ctx context.Context, cc CursorContext, scope Scope, provider schema.Provider, g *grammar.Grammar, opts *Options) []Proposal {
	gen := &generator{provider: provider, grammar: g, opts: opts, log: zap.NewNop()}
	return gen.generate(ctx, cc, scope)
}

type generator struct {
	provider schema.Provider
	grammar  *grammar.Grammar
	opts     *Options
	log      *zap.Logger
}

func (g *generator) generate(ctx context.Context, cc CursorContext, scope Scope) []Proposal {
	if g.opts == nil {
		g.opts = DefaultOptions()
	}
	return rank(g.candidates(ctx, cc, scope), g.opts.MaxItems)
}

// candidates applies the completion rules in priority order.
func (g *generator) candidates(ctx context.Context, cc CursorContext, scope Scope) []Proposal {
	switch {
	case cc.InLiteral, cc.AfterAlias:
		return nil

	case cc.IsWildcard:
		return g.wildcard(ctx, cc, scope)

	case cc.Qualifier != "":
		ref, ok := scope.Lookup(cc.Qualifier)
		if !ok {
			return nil
		}
		return g.columns(ctx, ref.TableName, cc.Prefix)

	case cc.AfterOperand, cc.Clause == ClauseUnknown:
		return g.keywords(cc.Keywords, cc.Prefix)

	case cc.Clause == ClauseFromList:
		items := g.tables(ctx, cc.Prefix)
		if g.opts.KeywordsAfterFrom {
			items = append(items, g.keywords(cc.Keywords, cc.Prefix)...)
		}
		return items

	case cc.Clause.IsColumnClause():
		primary, ok := scope.Primary()
		if !ok {
			// Without a FROM scope a typed word is most likely a keyword.
			if cc.Prefix != "" {
				return g.keywords(cc.Keywords, cc.Prefix)
			}
			return nil
		}
		return g.columns(ctx, primary.TableName, cc.Prefix)
	}
	return nil
}

// wildcard merges the columns of the qualified or primary table into one
// proposal that replaces the "*".
func (g *generator) wildcard(ctx context.Context, cc CursorContext, scope Scope) []Proposal {
	ref, ok := scope.Primary()
	if cc.Qualifier != "" {
		ref, ok = scope.Lookup(cc.Qualifier)
	}
	if !ok {
		return nil
	}

	cols := g.listColumns(ctx, ref.TableName)
	if len(cols) == 0 {
		return nil
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		if cc.Qualifier != "" {
			names[i] = cc.Qualifier + "." + c.Name
		}
	}
	return []Proposal{{
		ReplacementText: strings.Join(names, ", "),
		Kind:            KindColumn,
		Detail:          fmt.Sprintf("%d columns of %s", len(cols), ref.TableName),
	}}
}

func (g *generator) tables(ctx context.Context, prefix string) []Proposal {
	if g.provider == nil {
		return nil
	}
	objs, err := g.provider.ListTables(ctx)
	if err != nil {
		g.log.Warn("provider failed to list tables", zap.Error(err))
		return nil
	}
	return g.objects(objs, prefix)
}

func (g *generator) columns(ctx context.Context, table, prefix string) []Proposal {
	return g.objects(g.listColumns(ctx, table), prefix)
}

func (g *generator) listColumns(ctx context.Context, table string) []schema.Object {
	if g.provider == nil {
		return nil
	}
	objs, err := g.provider.ListColumns(ctx, table)
	if err != nil {
		g.log.Warn("provider failed to list columns",
			zap.String(logging.FieldTable, table),
			zap.Error(err))
		return nil
	}
	return objs
}

// objects converts schema objects matching prefix, keeping provider order.
func (g *generator) objects(objs []schema.Object, prefix string) []Proposal {
	var out []Proposal
	for _, o := range objs {
		if o.Name == "" || !hasPrefix(o.Name, prefix, g.opts.CaseInsensitive) {
			continue
		}
		out = append(out, Proposal{ReplacementText: o.Name, Kind: objectKind(o.Kind), Detail: o.Type})
	}
	return out
}

// keywords returns the grammar successors matching prefix, in grammar order.
func (g *generator) keywords(preceding []string, prefix string) []Proposal {
	var out []Proposal
	for _, kw := range g.grammar.Next(preceding) {
		if !hasPrefix(kw, prefix, true) {
			continue
		}
		out = append(out, Proposal{ReplacementText: applyCase(kw, prefix, g.opts.KeywordCase), Kind: KindKeyword})
	}
	return out
}

func hasPrefix(s, prefix string, foldCase bool) bool {
	if foldCase {
		return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
	}
	return strings.HasPrefix(s, prefix)
}

// applyCase formats an upper-case keyword.
func applyCase(kw, prefix string, kc KeywordCase) string {
	switch kc {
	case KeywordLower:
		return strings.ToLower(kw)
	case KeywordPreserve:
		if isLower(prefix) {
			return strings.ToLower(kw)
		}
	}
	return kw
}

// isLower reports whether s has letters and none of them is upper case.
func isLower(s string) bool {
	letters := false
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters = true
		}
	}
	return letters
}
