package hover

import "strings"

// KeywordInfo contains documentation for a SQL keyword.
type KeywordInfo struct {
	Name        string
	Description string
	Syntax      string
}

var keywords = map[string]*KeywordInfo{
	// Statements
	"SELECT": {Name: "SELECT", Description: "Retrieves rows from one or more tables", Syntax: "SELECT columns FROM table [WHERE condition]"},
	"INSERT": {Name: "INSERT", Description: "Adds rows to a table", Syntax: "INSERT INTO table [(columns)] VALUES (values)"},
	"UPDATE": {Name: "UPDATE", Description: "Modifies existing rows", Syntax: "UPDATE table SET column = value [WHERE condition]"},
	"DELETE": {Name: "DELETE", Description: "Removes rows from a table", Syntax: "DELETE FROM table [WHERE condition]"},
	"WITH":   {Name: "WITH", Description: "Defines common table expressions for the statement", Syntax: "WITH name AS (query) SELECT ..."},

	// Clauses
	"FROM":     {Name: "FROM", Description: "Lists the tables a query reads", Syntax: "FROM table [alias] [, table [alias] ...]"},
	"WHERE":    {Name: "WHERE", Description: "Filters rows by a condition", Syntax: "WHERE condition [AND condition ...]"},
	"JOIN":     {Name: "JOIN", Description: "Combines rows of two tables", Syntax: "table JOIN table ON condition"},
	"ON":       {Name: "ON", Description: "Join condition", Syntax: "JOIN table ON a.col = b.col"},
	"USING":    {Name: "USING", Description: "Joins on columns with the same name in both tables", Syntax: "JOIN table USING (column)"},
	"GROUP":    {Name: "GROUP", Description: "Used with BY to aggregate rows", Syntax: "GROUP BY column [, column ...]"},
	"ORDER":    {Name: "ORDER", Description: "Used with BY to sort results", Syntax: "ORDER BY column [ASC|DESC]"},
	"BY":       {Name: "BY", Description: "Used with GROUP or ORDER to list columns", Syntax: "GROUP BY column | ORDER BY column"},
	"HAVING":   {Name: "HAVING", Description: "Filters groups produced by GROUP BY", Syntax: "GROUP BY column HAVING condition"},
	"LIMIT":    {Name: "LIMIT", Description: "Limits the number of returned rows", Syntax: "LIMIT count [OFFSET skip]"},
	"OFFSET":   {Name: "OFFSET", Description: "Skips rows before returning results", Syntax: "LIMIT count OFFSET skip"},
	"UNION":    {Name: "UNION", Description: "Concatenates the results of two queries", Syntax: "query UNION [ALL] query"},
	"INTO":     {Name: "INTO", Description: "Names the target table of an INSERT", Syntax: "INSERT INTO table"},
	"VALUES":   {Name: "VALUES", Description: "Lists the rows to insert", Syntax: "VALUES (value, ...) [, (value, ...)]"},
	"SET":      {Name: "SET", Description: "Assigns columns in an UPDATE", Syntax: "SET column = value [, column = value ...]"},
	"DISTINCT": {Name: "DISTINCT", Description: "Removes duplicate rows from the result", Syntax: "SELECT DISTINCT columns"},
	"AS":       {Name: "AS", Description: "Introduces an alias", Syntax: "table AS alias | expression AS name"},

	// Join types
	"INNER": {Name: "INNER", Description: "Keeps only matching rows of both tables", Syntax: "INNER JOIN table ON condition"},
	"LEFT":  {Name: "LEFT", Description: "Keeps all rows of the left table", Syntax: "LEFT [OUTER] JOIN table ON condition"},
	"RIGHT": {Name: "RIGHT", Description: "Keeps all rows of the right table", Syntax: "RIGHT [OUTER] JOIN table ON condition"},
	"FULL":  {Name: "FULL", Description: "Keeps all rows of both tables", Syntax: "FULL [OUTER] JOIN table ON condition"},
	"CROSS": {Name: "CROSS", Description: "Pairs every row of both tables", Syntax: "CROSS JOIN table"},
	"OUTER": {Name: "OUTER", Description: "Optional word in LEFT, RIGHT and FULL joins", Syntax: "LEFT OUTER JOIN table ON condition"},

	// Operators
	"AND":     {Name: "AND", Description: "Both conditions must hold", Syntax: "condition AND condition"},
	"OR":      {Name: "OR", Description: "Either condition may hold", Syntax: "condition OR condition"},
	"NOT":     {Name: "NOT", Description: "Negates a condition", Syntax: "NOT condition | column IS NOT NULL"},
	"IN":      {Name: "IN", Description: "Matches any value in a list or subquery", Syntax: "column IN (value, ...)"},
	"BETWEEN": {Name: "BETWEEN", Description: "Matches an inclusive range", Syntax: "column BETWEEN low AND high"},
	"LIKE":    {Name: "LIKE", Description: "Matches a pattern with % and _ wildcards", Syntax: "column LIKE 'pattern'"},
	"IS":      {Name: "IS", Description: "Tests for NULL", Syntax: "column IS [NOT] NULL"},
	"NULL":    {Name: "NULL", Description: "Represents an absent value", Syntax: "column IS NULL"},
	"EXISTS":  {Name: "EXISTS", Description: "True when a subquery returns rows", Syntax: "EXISTS (query)"},
	"ASC":     {Name: "ASC", Description: "Ascending sort order", Syntax: "ORDER BY column ASC"},
	"DESC":    {Name: "DESC", Description: "Descending sort order", Syntax: "ORDER BY column DESC"},
}

// GetKeywordInfo returns documentation for a keyword, or nil.
func GetKeywordInfo(name string) *KeywordInfo {
	return keywords[strings.ToUpper(name)]
}
