// Package grammar provides the table-driven keyword grammar used to suggest
// the next keyword of a statement.
//
// A grammar maps a keyword to the ordered list of keywords that may follow
// the clause it opens. Dialects are plain YAML documents, so adding a keyword
// is a data change.
package grammar

import (
	"embed"
	"path"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/tentacle-scylla/sqlcomplete/pkg/types"
)

// DefaultDialect is the dialect used when none is configured.
const DefaultDialect = "basic"

//go:embed dialects/*.yaml
var dialectFS embed.FS

// Grammar is an immutable keyword-successor table.
type Grammar struct {
	Dialect    string
	Start      []string
	Successors map[string][]string
}

// document is the YAML layout of a dialect file.
type document struct {
	Dialect    string              `yaml:"dialect"`
	Start      []string            `yaml:"start"`
	Successors map[string][]string `yaml:"successors"`
}

// Parse decodes a grammar from YAML. Keywords are normalised to upper case
// with single spaces between words.
func Parse(data []byte) (*Grammar, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode grammar")
	}
	if len(doc.Start) == 0 {
		return nil, errors.Newf("grammar %q has no start keywords", doc.Dialect)
	}

	g := &Grammar{
		Dialect:    doc.Dialect,
		Start:      normalizeAll(doc.Start),
		Successors: make(map[string][]string, len(doc.Successors)),
	}
	for kw, next := range doc.Successors {
		key := Normalize(kw)
		if key == "" {
			return nil, errors.Newf("grammar %q has an empty keyword", doc.Dialect)
		}
		g.Successors[key] = normalizeAll(next)
	}
	return g, nil
}

// Load returns the embedded grammar for a dialect.
func Load(dialect string) (*Grammar, error) {
	if dialect == "" {
		dialect = DefaultDialect
	}
	data, err := dialectFS.ReadFile(path.Join("dialects", strings.ToLower(dialect)+".yaml"))
	if err != nil {
		return nil, errors.WithHintf(
			errors.Wrapf(types.ErrUnknownDialect, "dialect %q", dialect),
			"available dialects: %s", strings.Join(Dialects(), ", "))
	}
	return Parse(data)
}

// MustLoad is like Load but panics on error. It is meant for embedded dialects.
func MustLoad(dialect string) *Grammar {
	g, err := Load(dialect)
	if err != nil {
		panic(err)
	}
	return g
}

// Default returns the default embedded grammar.
func Default() *Grammar {
	return MustLoad(DefaultDialect)
}

// Dialects returns the names of the embedded dialects, sorted.
func Dialects() []string {
	entries, err := dialectFS.ReadDir("dialects")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Next returns the keywords that may follow, given the keywords preceding the
// cursor ordered nearest first. With no preceding keyword the start set is
// returned; otherwise the successors of the nearest keyword known to the
// grammar. The returned slice must not be modified.
func (g *Grammar) Next(preceding []string) []string {
	if g == nil {
		return nil
	}
	if len(preceding) == 0 {
		return g.Start
	}
	for _, kw := range preceding {
		if next, ok := g.Successors[Normalize(kw)]; ok {
			return next
		}
	}
	return nil
}

// Has reports whether the grammar has successors for keyword.
func (g *Grammar) Has(keyword string) bool {
	if g == nil {
		return false
	}
	_, ok := g.Successors[Normalize(keyword)]
	return ok
}

// Normalize upper-cases a keyword and collapses inner whitespace.
func Normalize(keyword string) string {
	return strings.Join(strings.Fields(strings.ToUpper(keyword)), " ")
}

func normalizeAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if n := Normalize(kw); n != "" {
			out = append(out, n)
		}
	}
	return out
}
