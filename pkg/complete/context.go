package complete

import (
	"strings"

	"github.com/tentacle-scylla/sqlcomplete/pkg/tokenize"
	"github.com/tentacle-scylla/sqlcomplete/pkg/types"
)

// clauseKeywords maps keywords that open a clause to the clause.
var clauseKeywords = map[string]Clause{
	"SELECT":   ClauseSelectList,
	"FROM":     ClauseFromList,
	"JOIN":     ClauseFromList,
	"UPDATE":   ClauseFromList,
	"INTO":     ClauseFromList,
	"WHERE":    ClauseWhere,
	"ON":       ClauseJoinCondition,
	"USING":    ClauseJoinCondition,
	"GROUP BY": ClauseGroupBy,
	"HAVING":   ClauseHaving,
	"ORDER BY": ClauseOrderBy,
	"SET":      ClauseSetList,
}

// wildcardTerminators are keywords that may follow a "*" select item.
var wildcardTerminators = []string{
	"FROM", "WHERE", "GROUP", "ORDER", "HAVING", "LIMIT", "UNION", "INTERSECT", "EXCEPT", "INTO",
}

// ResolveContext determines what is expected at cursor. tokens must cover
// the whole text; only the statement holding the cursor is inspected.
func ResolveContext(tokens []tokenize.Token, cursor int) (CursorContext, error) {
	textEnd := 0
	if len(tokens) > 0 {
		textEnd = tokens[len(tokens)-1].End
	}
	if cursor < 0 || cursor > textEnd {
		return CursorContext{}, types.InvalidArgumentf("cursor %d outside text of length %d", cursor, textEnd)
	}

	seg := tokenize.StatementAt(tokens, cursor)
	toks := seg.Tokens

	cc := CursorContext{
		Clause:       ClauseUnknown,
		Statement:    statementKind(toks),
		ReplaceStart: cursor,
		ReplaceEnd:   cursor,
	}

	// end is the number of tokens that lie wholly before the cursor's word.
	end := 0
	for end < len(toks) && toks[end].Start < cursor {
		end++
	}
	if end > 0 {
		cur := toks[end-1]
		switch {
		case cur.End >= cursor && cur.IsWord():
			cc.Prefix = cur.Text[:cursor-cur.Start]
			if cur.IsQuoted() {
				if cursor == cur.End {
					cc.Prefix = cur.Name()
				} else {
					cc.Prefix = cc.Prefix[1:]
				}
			}
			cc.ReplaceStart = cur.Start
			cc.ReplaceEnd = cur.End
			end--
		case cur.End >= cursor && insideLiteral(cur, cursor):
			cc.InLiteral = true
			return cc, nil
		}
	}

	// anchor is the offset the qualifier must touch.
	anchor := cc.ReplaceStart
	if qual, start := qualifierBefore(toks[:end], anchor); start >= 0 {
		cc.Qualifier = qual
		end = start
	}

	clause, keywords, operand := scanBack(toks[:end])
	cc.Clause = clause
	cc.Keywords = keywords

	if last, ok := lastSignificant(toks[:end]); ok && last.IsKeyword("AS") && cc.Qualifier == "" {
		cc.AfterAlias = true
	}
	if cc.Qualifier == "" {
		cc.AfterOperand = operand
	}

	if cc.Prefix == "" && clause == ClauseSelectList && isWildcard(toks, end, cursor) {
		cc.IsWildcard = true
		cc.AfterOperand = false
		// "*" is the token before the cursor.
		star := toks[end-1]
		if qual, start := qualifierBefore(toks[:end-1], star.Start); start >= 0 {
			cc.Qualifier = qual
			cc.ReplaceStart = toks[start].Start
		} else {
			cc.ReplaceStart = star.Start
		}
		cc.ReplaceEnd = star.End
	}
	return cc, nil
}

// insideLiteral reports whether cursor is inside tok rather than after it.
func insideLiteral(tok tokenize.Token, cursor int) bool {
	switch tok.Type {
	case tokenize.TokenLiteral:
		if tok.Text[0] != '\'' {
			// Numbers are still being typed while the cursor touches them.
			return true
		}
		return cursor < tok.End || !closed(tok.Text, '\'')
	case tokenize.TokenComment:
		if strings.HasPrefix(tok.Text, "--") {
			return true
		}
		return cursor < tok.End || !strings.HasSuffix(tok.Text, "*/") || len(tok.Text) < 4
	}
	return false
}

// closed reports whether a quoted token ends with its closing quote.
func closed(text string, quote byte) bool {
	if len(text) < 2 || text[len(text)-1] != quote {
		return false
	}
	// Count the run of trailing quotes; an even run is escaped quotes.
	n := 0
	for i := len(text) - 1; i > 0 && text[i] == quote; i-- {
		n++
	}
	return n%2 == 1
}

// qualifierBefore finds "name." or "a.b." directly before anchor. It returns
// the dotted name and the index of its first token, or -1.
func qualifierBefore(toks []tokenize.Token, anchor int) (string, int) {
	var parts []string
	start := -1
	for i := len(toks) - 1; i >= 1 && toks[i].Is(".") && toks[i].End == anchor; i -= 2 {
		name := toks[i-1]
		if name.Type != tokenize.TokenIdentifier || name.End != toks[i].Start {
			break
		}
		parts = append([]string{name.Name()}, parts...)
		start = i - 1
		anchor = name.Start
	}
	if start < 0 {
		return "", -1
	}
	return strings.Join(parts, "."), start
}

// scanBack walks backward from the end of toks. It returns the clause of the
// nearest clause keyword, the keywords at the cursor's nesting level (nearest
// first) and whether the last significant token completes an operand.
func scanBack(toks []tokenize.Token) (Clause, []string, bool) {
	var keywords []string
	operand := false
	first := true
	depth := 0

	for i := len(toks) - 1; i >= 0; i-- {
		tok := toks[i]
		if tok.IsTrivia() {
			continue
		}
		if first {
			operand = completesOperand(toks, i)
			first = false
		}

		switch {
		case tok.Is(")"):
			depth++
			continue
		case tok.Is("("):
			if depth > 0 {
				depth--
				continue
			}
			return enclosingClause(toks[:i]), keywords, operand
		}
		if depth > 0 || tok.Type != tokenize.TokenKeyword {
			continue
		}

		kw := tok.Upper()
		if kw == "BY" {
			if prev, ok := previousSignificant(toks, i); ok && prev.IsKeyword("GROUP", "ORDER") {
				kw = prev.Upper() + " BY"
			}
		}
		keywords = append(keywords, kw)
		if clause, ok := clauseKeywords[kw]; ok {
			return clause, keywords, operand
		}
	}
	return ClauseUnknown, keywords, operand
}

// enclosingClause resolves the clause around an unclosed "(" whose preceding
// tokens are toks. A paren opened after INTO t is a column list; a paren in
// a FROM list does not expect table names.
func enclosingClause(toks []tokenize.Token) Clause {
	clause, _, _ := scanBack(toks)
	if clause != ClauseFromList {
		return clause
	}
	if nearestKeyword(toks) == "INTO" {
		return ClauseColumnList
	}
	return ClauseUnknown
}

func nearestKeyword(toks []tokenize.Token) string {
	for i := len(toks) - 1; i >= 0; i-- {
		if toks[i].Type == tokenize.TokenKeyword {
			return toks[i].Upper()
		}
	}
	return ""
}

// completesOperand reports whether toks[i] ends an operand, so that the next
// word is a keyword.
func completesOperand(toks []tokenize.Token, i int) bool {
	tok := toks[i]
	switch {
	case tok.Type == tokenize.TokenIdentifier, tok.Type == tokenize.TokenLiteral:
		return true
	case tok.Is(")"):
		return true
	case tok.IsKeyword("NULL", "TRUE", "FALSE", "END"):
		return true
	case tok.Is("*"):
		prev, ok := previousSignificant(toks, i)
		return ok && (prev.IsKeyword("SELECT", "DISTINCT", "ALL") || prev.Is(",") || prev.Is("."))
	}
	return false
}

// isWildcard reports whether toks[end-1] is a "*" touching cursor and the
// select item ends there.
func isWildcard(toks []tokenize.Token, end, cursor int) bool {
	if end == 0 || !toks[end-1].Is("*") || toks[end-1].End != cursor {
		return false
	}
	if !completesOperand(toks, end-1) {
		return false
	}
	next, ok := nextSignificant(toks, end-1)
	if !ok {
		return true
	}
	return next.Is(";") || next.Is(")") || next.Is(",") || next.IsKeyword(wildcardTerminators...)
}

func lastSignificant(toks []tokenize.Token) (tokenize.Token, bool) {
	return previousSignificant(toks, len(toks))
}

func previousSignificant(toks []tokenize.Token, i int) (tokenize.Token, bool) {
	for j := i - 1; j >= 0; j-- {
		if !toks[j].IsTrivia() {
			return toks[j], true
		}
	}
	return tokenize.Token{}, false
}

func nextSignificant(toks []tokenize.Token, i int) (tokenize.Token, bool) {
	for j := i + 1; j < len(toks); j++ {
		if !toks[j].IsTrivia() {
			return toks[j], true
		}
	}
	return tokenize.Token{}, false
}

// statementKind classifies a statement by its first keyword.
func statementKind(toks []tokenize.Token) types.StatementType {
	for _, tok := range toks {
		if tok.IsTrivia() || tok.Is("(") {
			continue
		}
		if tok.Type != tokenize.TokenKeyword {
			return types.StatementUnknown
		}
		return types.StatementFromKeyword(tok.Text)
	}
	return types.StatementUnknown
}
