package complete

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tentacle-scylla/sqlcomplete/pkg/tokenize"
)

func refs(pairs ...string) []TableRef {
	var out []TableRef
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, TableRef{TableName: pairs[i], Alias: pairs[i+1], Ordinal: len(out)})
	}
	return out
}

func TestResolveTables(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []TableRef
	}{
		{"none", "SELECT 1", nil},
		{"single", "SELECT * FROM A", refs("A", "A")},
		{"alias", "SELECT * FROM A a", refs("A", "a")},
		{"as alias", "SELECT * FROM A AS a WHERE x = 1", refs("A", "a")},
		{"comma list", "SELECT * FROM A a, B b", refs("A", "a", "B", "b")},
		{"join", "SELECT b.x FROM A a JOIN B b ON a.col1 = b.col2", refs("A", "a", "B", "b")},
		{"left join", "SELECT * FROM A LEFT OUTER JOIN B USING (id)", refs("A", "A", "B", "B")},
		{"dotted", "SELECT * FROM main.users u", refs("main.users", "u")},
		{"dotted default alias", "SELECT * FROM main.users", refs("main.users", "users")},
		{"quoted", `SELECT * FROM "My Table" "t"`, refs("My Table", "t")},
		{"trailing dot", "SELECT * FROM A.", refs("A", "A")},
		{"trailing comma", "SELECT * FROM A,", refs("A", "A")},
		{"trailing as", "SELECT * FROM A AS", refs("A", "A")},
		{"duplicate alias keeps first", "SELECT * FROM A x, B x", refs("A", "x")},
		{"duplicate table", "SELECT * FROM A, A", refs("A", "A")},
		{"alias differs in case from table", "SELECT * FROM A b, B", refs("A", "b", "B", "B")},
		{"derived table then table", "SELECT * FROM (SELECT * FROM B) d, A", []TableRef{
			{TableName: "B", Alias: "B", Ordinal: 0},
			{TableName: "A", Alias: "A", Ordinal: 0},
		}},
		{"join variants", "SELECT * FROM A INNER JOIN B ON x = y CROSS JOIN C NATURAL JOIN D FULL OUTER JOIN E", refs("A", "A", "B", "B", "C", "C", "D", "D", "E", "E")},
		{"left function is not a join", "SELECT LEFT(name, 2) FROM A", refs("A", "A")},
		{"subquery", "SELECT * FROM A WHERE id IN (SELECT a_id FROM B)", []TableRef{
			{TableName: "A", Alias: "A", Ordinal: 0},
			{TableName: "B", Alias: "B", Ordinal: 0},
		}},
		{"derived table", "SELECT * FROM (SELECT * FROM B) d", refs("B", "B")},
		{"function from ignored", "SELECT EXTRACT(YEAR FROM d) FROM A", refs("A", "A")},
		{"update", "UPDATE A SET x = 1", refs("A", "A")},
		{"insert", "INSERT INTO A (x, y) VALUES (1, 2)", refs("A", "A")},
		{"delete", "DELETE FROM A WHERE x = 1", refs("A", "A")},
		{"keyword stops list", "SELECT * FROM WHERE", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scope := ResolveTables(tokenize.Tokenize(tt.query))
			assert.Equal(t, tt.want, scope.Refs)
		})
	}
}

func TestResolveScope(t *testing.T) {
	tests := []struct {
		name  string
		query string
		refs  []TableRef
		outer []TableRef
	}{
		{"top level", "SELECT * FROM A a WHERE |", refs("A", "a"), nil},
		{"inside subquery", "SELECT * FROM A WHERE x IN (SELECT | FROM B)", refs("B", "B"), refs("A", "A")},
		{"unclosed subquery", "SELECT * FROM A WHERE x IN (SELECT y FROM B WHERE |", refs("B", "B"), refs("A", "A")},
		{"after subquery", "SELECT * FROM A WHERE x IN (SELECT y FROM B) AND |", refs("A", "A"), nil},
		{"before subquery", "SELECT | FROM A WHERE x IN (SELECT y FROM B)", refs("A", "A"), nil},
		{"derived table", "SELECT * FROM (SELECT y FROM B) t, A WHERE |", refs("A", "A"), nil},
		{"inside derived table", "SELECT * FROM (SELECT | FROM B) t, A", refs("B", "B"), refs("A", "A")},
		{"nested", "SELECT * FROM A WHERE x IN (SELECT y FROM B WHERE z IN (SELECT | FROM C))",
			refs("C", "C"), append(refs("B", "B"), refs("A", "A")...)},
		{"subquery inside function call", "SELECT COALESCE((SELECT | FROM B), 0) FROM A", refs("B", "B"), refs("A", "A")},
		{"empty subquery", "SELECT * FROM A WHERE x IN (SELECT |", nil, refs("A", "A")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, cursor := catchCaret(tt.query)
			scope := ResolveScope(tokenize.Tokenize(text), cursor)
			assert.Equal(t, tt.refs, scope.Refs)
			assert.Equal(t, tt.outer, scope.Outer)
		})
	}
}

func TestScopeLookupOuter(t *testing.T) {
	scope := Scope{Refs: refs("B", "B"), Outer: refs("A", "a", "C", "b")}

	ref, ok := scope.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "A", ref.TableName)

	// Inner references shadow outer ones, even case-insensitively.
	ref, ok = scope.Lookup("b")
	assert.True(t, ok)
	assert.Equal(t, "B", ref.TableName)

	primary, ok := scope.Primary()
	assert.True(t, ok)
	assert.Equal(t, "B", primary.TableName)
}

func TestScopeLookup(t *testing.T) {
	scope := Scope{Refs: refs("A", "b", "B", "a", "main.C", "C")}

	tests := []struct {
		name  string
		want  string
		found bool
	}{
		// Aliases win over table names.
		{"a", "B", true},
		{"b", "A", true},
		{"A", "A", true},
		{"B", "B", true},
		{"main.C", "main.C", true},
		{"c", "main.C", true},
		{"x", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := scope.Lookup(tt.name)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, ref.TableName)
		})
	}

	primary, ok := scope.Primary()
	assert.True(t, ok)
	assert.Equal(t, "A", primary.TableName)

	_, ok = Scope{}.Primary()
	assert.False(t, ok)
	assert.True(t, Scope{}.Empty())
}
