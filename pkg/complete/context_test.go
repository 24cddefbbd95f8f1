package complete

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tentacle-scylla/sqlcomplete/pkg/tokenize"
	"github.com/tentacle-scylla/sqlcomplete/pkg/types"
)

// catchCaret strips the "|" caret and returns its offset, or -1.
func catchCaret(marked string) (string, int) {
	cursor := strings.Index(marked, "|")
	if cursor < 0 {
		return marked, -1
	}
	return marked[:cursor] + marked[cursor+1:], cursor
}

// resolve strips the "|" caret and resolves the context at its offset.
func resolve(t *testing.T, marked string) CursorContext {
	t.Helper()
	text, cursor := catchCaret(marked)
	require.GreaterOrEqual(t, cursor, 0, "query %q has no caret", marked)

	cc, err := ResolveContext(tokenize.Tokenize(text), cursor)
	require.NoError(t, err)
	return cc
}

func TestResolveClause(t *testing.T) {
	tests := []struct {
		query string
		want  Clause
	}{
		{"|", ClauseUnknown},
		{"SEL|", ClauseUnknown},
		{"SELECT |", ClauseSelectList},
		{"SELECT a, |", ClauseSelectList},
		{"SELECT * FROM |", ClauseFromList},
		{"SELECT * FROM A JOIN |", ClauseFromList},
		{"SELECT * FROM A LEFT OUTER JOIN |", ClauseFromList},
		{"SELECT * FROM A JOIN B ON |", ClauseJoinCondition},
		{"SELECT * FROM A JOIN B USING (|", ClauseJoinCondition},
		{"SELECT * FROM A WHERE |", ClauseWhere},
		{"SELECT * FROM A WHERE x = 1 AND |", ClauseWhere},
		{"SELECT * FROM A WHERE (x = 1) OR |", ClauseWhere},
		{"SELECT * FROM A WHERE x IN (|", ClauseWhere},
		{"SELECT * FROM A WHERE x IN (SELECT y FROM B WHERE |", ClauseWhere},
		{"SELECT * FROM A WHERE x IN (SELECT |", ClauseSelectList},
		{"SELECT * FROM A WHERE x IN (SELECT y FROM |", ClauseFromList},
		{"SELECT * FROM A GROUP BY |", ClauseGroupBy},
		{"SELECT * FROM A group  by |", ClauseGroupBy},
		{"SELECT * FROM A GROUP BY x HAVING |", ClauseHaving},
		{"SELECT * FROM A ORDER BY |", ClauseOrderBy},
		{"UPDATE |", ClauseFromList},
		{"UPDATE A SET |", ClauseSetList},
		{"INSERT INTO |", ClauseFromList},
		{"INSERT INTO A (|", ClauseColumnList},
		{"INSERT INTO A (x, |", ClauseColumnList},
		{"INSERT INTO A VALUES (|", ClauseUnknown},
		{"SELECT * FROM (|", ClauseUnknown},
		{"DELETE |", ClauseUnknown},
		{"SELECT 1; |", ClauseUnknown},
		{"SELECT count(|", ClauseSelectList},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			cc := resolve(t, tt.query)
			assert.Equal(t, tt.want, cc.Clause)
		})
	}
}

func TestResolvePrefixAndQualifier(t *testing.T) {
	tests := []struct {
		query         string
		wantPrefix    string
		wantQualifier string
	}{
		{"SEL|", "SEL", ""},
		{"SEL|ECT", "SEL", ""},
		{"SELECT |", "", ""},
		{"SELECT a.|", "", "a"},
		{"SELECT a.co|", "co", "a"},
		{"SELECT a. |", "", ""},
		{"SELECT a .|", "", ""},
		{"SELECT main.a.co|", "co", "main.a"},
		{`SELECT "My Table".co|`, "co", "My Table"},
		{`SELECT * FROM "My Ta|`, "My Ta", ""},
		{`SELECT * FROM "users"|`, "users", ""},
		{"SELECT * FROM A.|", "", "A"},
		{"SELECT 1.|", "", ""},
		{"SELECT x,|", "", ""},
		{"SELECT x,co|", "co", ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			cc := resolve(t, tt.query)
			assert.Equal(t, tt.wantPrefix, cc.Prefix, "prefix")
			assert.Equal(t, tt.wantQualifier, cc.Qualifier, "qualifier")
		})
	}
}

func TestResolveFlags(t *testing.T) {
	tests := []struct {
		query    string
		operand  bool
		alias    bool
		literal  bool
		wildcard bool
	}{
		{query: "SELECT * |", operand: true},
		{query: "SELECT * F|", operand: true},
		{query: "SELECT a |", operand: true},
		{query: "SELECT a, |"},
		{query: "SELECT count(*) |", operand: true},
		{query: "SELECT * FROM A |", operand: true},
		{query: "SELECT * FROM A WHERE x = 'y' |", operand: true},
		{query: "SELECT * FROM A WHERE x IS NULL |", operand: true},
		{query: "SELECT * FROM A WHERE x = |"},
		{query: "SELECT * FROM A WHERE x * |"},
		{query: "SELECT * FROM A AS |", alias: true},
		{query: "SELECT * FROM A WHERE x = 'y|", literal: true},
		{query: "SELECT * FROM A WHERE x = 'it''|", literal: true},
		{query: "SELECT * FROM A WHERE x = '|'", literal: true},
		{query: "SELECT * FROM A WHERE x = 12|", literal: true},
		{query: "SELECT * -- all|", literal: true},
		{query: "SELECT /* all|", literal: true},
		{query: "SELECT /* all */|", operand: false},
		{query: "SELECT *|", wildcard: true},
		{query: "SELECT *| FROM A", wildcard: true},
		{query: "SELECT a, *|, b FROM A", wildcard: true},
		{query: "SELECT DISTINCT *|", wildcard: true},
		{query: "SELECT a.*| FROM A a", wildcard: true},
		{query: "SELECT * |FROM A", operand: true},
		{query: "SELECT count(*|) FROM A"},
		{query: "SELECT * FROM A WHERE x *|"},
		{query: "SELECT *| x FROM A", operand: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			cc := resolve(t, tt.query)
			assert.Equal(t, tt.operand, cc.AfterOperand, "AfterOperand")
			assert.Equal(t, tt.alias, cc.AfterAlias, "AfterAlias")
			assert.Equal(t, tt.literal, cc.InLiteral, "InLiteral")
			assert.Equal(t, tt.wildcard, cc.IsWildcard, "IsWildcard")
		})
	}
}

func TestResolveKeywords(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"|", nil},
		{"SELECT * FROM A |", []string{"FROM"}},
		{"SELECT * FROM A WHERE x = 1 AND y = 2 |", []string{"AND", "WHERE"}},
		{"SELECT a FROM A GROUP BY a |", []string{"GROUP BY"}},
		{"INSERT |", []string{"INSERT"}},
		{"SELECT * FROM A WHERE x IN (SELECT y |", []string{"SELECT"}},
		{"SELECT * FROM A WHERE (x = 1) |", []string{"WHERE"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			cc := resolve(t, tt.query)
			assert.Equal(t, tt.want, cc.Keywords)
		})
	}
}

func TestResolveStatementAndSpan(t *testing.T) {
	cc := resolve(t, "WITH x AS (SELECT 1) SELECT * FROM x WHERE |")
	assert.Equal(t, types.StatementWith, cc.Statement)

	cc = resolve(t, "SELECT 1; update A set |")
	assert.Equal(t, types.StatementUpdate, cc.Statement)
	assert.Equal(t, ClauseSetList, cc.Clause)

	cc = resolve(t, "SELECT col|umn FROM A")
	assert.Equal(t, 7, cc.ReplaceStart)
	assert.Equal(t, 13, cc.ReplaceEnd)

	cc = resolve(t, "SELECT a.*| FROM A a")
	assert.Equal(t, "a", cc.Qualifier)
	assert.Equal(t, 7, cc.ReplaceStart)
	assert.Equal(t, 10, cc.ReplaceEnd)

	cc = resolve(t, "SELECT |")
	assert.Equal(t, 7, cc.ReplaceStart)
	assert.Equal(t, 7, cc.ReplaceEnd)
}

func TestResolveContextInvalidCursor(t *testing.T) {
	toks := tokenize.Tokenize("SELECT")
	for _, cursor := range []int{-1, 7, 100} {
		_, err := ResolveContext(toks, cursor)
		require.Error(t, err)
		assert.True(t, types.IsInvalidArgument(err))
	}

	_, err := ResolveContext(nil, 0)
	assert.NoError(t, err)
}
