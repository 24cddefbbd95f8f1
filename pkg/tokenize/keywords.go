package tokenize

import "strings"

// keywords is the fixed set of words classified as TokenKeyword.
// Words outside the set are identifiers even when a dialect reserves them.
var keywords = map[string]bool{
	"ALL": true, "AND": true, "AS": true, "ASC": true,
	"BETWEEN": true, "BY": true,
	"CASE": true, "CROSS": true,
	"DELETE": true, "DESC": true, "DISTINCT": true,
	"ELSE": true, "END": true, "EXCEPT": true, "EXISTS": true,
	"FALSE": true, "FETCH": true, "FROM": true, "FULL": true,
	"GROUP": true,
	"HAVING": true,
	"IN": true, "INNER": true, "INSERT": true, "INTERSECT": true, "INTO": true, "IS": true,
	"JOIN": true,
	"LEFT": true, "LIKE": true, "LIMIT": true,
	"NATURAL": true, "NOT": true, "NULL": true,
	"OFFSET": true, "ON": true, "OR": true, "ORDER": true, "OUTER": true,
	"RIGHT": true,
	"SELECT": true, "SET": true,
	"THEN": true, "TRUE": true,
	"UNION": true, "UPDATE": true, "USING": true,
	"VALUES": true,
	"WHEN": true, "WHERE": true, "WITH": true,
}

// IsKeyword reports whether word is a recognised keyword, ignoring case.
func IsKeyword(word string) bool {
	return keywords[strings.ToUpper(word)]
}

// Keywords returns the recognised keywords in upper case.
func Keywords() []string {
	out := make([]string, 0, len(keywords))
	for kw := range keywords {
		out = append(out, kw)
	}
	return out
}
