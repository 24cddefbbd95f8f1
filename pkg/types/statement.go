package types

import "strings"

// StatementType represents the kind of SQL statement the cursor is in
type StatementType int

const (
	StatementUnknown StatementType = iota
	StatementSelect
	StatementInsert
	StatementUpdate
	StatementDelete
	StatementWith
	StatementCreate
	StatementAlter
	StatementDrop
	StatementTruncate
)

// String returns the string representation of the statement type
func (s StatementType) String() string {
	switch s {
	case StatementSelect:
		return "SELECT"
	case StatementInsert:
		return "INSERT"
	case StatementUpdate:
		return "UPDATE"
	case StatementDelete:
		return "DELETE"
	case StatementWith:
		return "WITH"
	case StatementCreate:
		return "CREATE"
	case StatementAlter:
		return "ALTER"
	case StatementDrop:
		return "DROP"
	case StatementTruncate:
		return "TRUNCATE"
	default:
		return "UNKNOWN"
	}
}

// IsDML returns true if the statement reads or writes rows
func (s StatementType) IsDML() bool {
	switch s {
	case StatementSelect, StatementInsert, StatementUpdate, StatementDelete, StatementWith:
		return true
	default:
		return false
	}
}

// IsDDL returns true if the statement changes schema objects
func (s StatementType) IsDDL() bool {
	switch s {
	case StatementCreate, StatementAlter, StatementDrop, StatementTruncate:
		return true
	default:
		return false
	}
}

// StatementFromKeyword maps the leading keyword of a statement to its type.
// Matching is case-insensitive.
func StatementFromKeyword(keyword string) StatementType {
	switch strings.ToUpper(keyword) {
	case "SELECT":
		return StatementSelect
	case "INSERT":
		return StatementInsert
	case "UPDATE":
		return StatementUpdate
	case "DELETE":
		return StatementDelete
	case "WITH":
		return StatementWith
	case "CREATE":
		return StatementCreate
	case "ALTER":
		return StatementAlter
	case "DROP":
		return StatementDrop
	case "TRUNCATE":
		return StatementTruncate
	default:
		return StatementUnknown
	}
}
