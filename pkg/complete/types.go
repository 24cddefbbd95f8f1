// Package complete provides context-aware SQL auto-completion.
//
// Completion runs as a pipeline over the tokens of the statement holding the
// cursor: ResolveContext decides what is expected at the cursor,
// ResolveScope collects the tables visible there, and GenerateProposals turns both into
// an ordered proposal list using a schema.Provider and a grammar.Grammar.
package complete

import (
	"github.com/tentacle-scylla/sqlcomplete/pkg/schema"
	"github.com/tentacle-scylla/sqlcomplete/pkg/types"
)

// Clause identifies the clause the cursor sits in.
type Clause string

const (
	ClauseUnknown       Clause = "unknown"
	ClauseSelectList    Clause = "select_list"    // After SELECT
	ClauseFromList      Clause = "from_list"      // After FROM, JOIN, UPDATE or INTO
	ClauseWhere         Clause = "where"          // After WHERE
	ClauseJoinCondition Clause = "join_condition" // After ON or USING
	ClauseGroupBy       Clause = "group_by"
	ClauseHaving        Clause = "having"
	ClauseOrderBy       Clause = "order_by"
	ClauseSetList       Clause = "set_list"    // After UPDATE ... SET
	ClauseColumnList    Clause = "column_list" // Inside INSERT INTO t (...)
)

// IsColumnClause reports whether the clause expects column references.
func (c Clause) IsColumnClause() bool {
	switch c {
	case ClauseSelectList, ClauseWhere, ClauseJoinCondition, ClauseGroupBy,
		ClauseHaving, ClauseOrderBy, ClauseSetList, ClauseColumnList:
		return true
	}
	return false
}

// CursorContext describes what is expected at the cursor.
type CursorContext struct {
	// Clause is the clause introduced by the nearest keyword left of the cursor.
	Clause Clause `json:"clause"`

	// Prefix is the partial word typed before the cursor.
	Prefix string `json:"prefix"`

	// Qualifier is the name before a "." preceding the prefix, as in "a.|".
	Qualifier string `json:"qualifier,omitempty"`

	// IsWildcard is set when the cursor directly follows a "*" select item.
	IsWildcard bool `json:"isWildcard,omitempty"`

	// Keywords lists the keywords preceding the cursor at its nesting level,
	// nearest first. Compound forms are joined, e.g. "GROUP BY".
	Keywords []string `json:"keywords,omitempty"`

	// AfterOperand is set when the cursor follows a complete operand, so a
	// keyword is expected rather than another name.
	AfterOperand bool `json:"afterOperand,omitempty"`

	// AfterAlias is set when the cursor follows AS and a new name is expected.
	AfterAlias bool `json:"afterAlias,omitempty"`

	// InLiteral is set when the cursor is inside a string, number or comment.
	InLiteral bool `json:"inLiteral,omitempty"`

	// Statement is the kind of the statement holding the cursor.
	Statement types.StatementType `json:"statement"`

	// ReplaceStart and ReplaceEnd delimit the text a proposal replaces.
	ReplaceStart int `json:"replaceStart"`
	ReplaceEnd   int `json:"replaceEnd"`
}

// ProposalKind identifies the type of a proposal.
type ProposalKind string

const (
	KindKeyword ProposalKind = "keyword"
	KindTable   ProposalKind = "table"
	KindColumn  ProposalKind = "column"
)

// Proposal is a single completion suggestion.
type Proposal struct {
	// ReplacementText is inserted in place of the prefix.
	ReplacementText string `json:"replacementText"`

	Kind ProposalKind `json:"kind"`

	// Rank is the position in the final list, 0 first.
	Rank int `json:"rank"`

	// Detail carries extra info such as a column type.
	Detail string `json:"detail,omitempty"`
}

// KeywordCase controls the letter case of keyword proposals.
type KeywordCase string

const (
	KeywordUpper KeywordCase = "upper"
	KeywordLower KeywordCase = "lower"
	// KeywordPreserve follows the typed prefix: lower case when the prefix
	// is all lower case, upper case otherwise.
	KeywordPreserve KeywordCase = "preserve"
)

// Options configures proposal generation.
type Options struct {
	// KeywordsAfterFrom adds the keywords that may follow FROM to the table
	// proposals of an empty FROM position.
	KeywordsAfterFrom bool

	// CaseInsensitive matches schema object names against the prefix
	// ignoring case. Keywords always match ignoring case.
	CaseInsensitive bool

	// MaxItems limits the number of returned proposals (0 = unlimited).
	MaxItems int

	KeywordCase KeywordCase
}

// DefaultOptions returns the default completion options.
func DefaultOptions() *Options {
	return &Options{
		KeywordCase: KeywordUpper,
	}
}

// Request is a completion request.
type Request struct {
	Text string `json:"text"`
	// Cursor is a byte offset into Text.
	Cursor int `json:"cursor"`
}

// Result is the outcome of Engine.Analyze.
type Result struct {
	Context   CursorContext `json:"context"`
	Scope     Scope         `json:"scope"`
	Proposals []Proposal    `json:"proposals"`
}

// objectKind maps a schema object kind to a proposal kind.
func objectKind(k schema.ObjectKind) ProposalKind {
	if k == schema.KindColumn {
		return KindColumn
	}
	return KindTable
}
