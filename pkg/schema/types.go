// Package schema provides the schema objects offered as completion
// candidates and the Provider contract used to fetch them.
//
// A Schema is an in-memory snapshot that keeps tables and columns in
// declaration order. It can be built in code, loaded from JSON or YAML, or
// captured from any other Provider with Snapshot.
package schema

import (
	"context"
	"strings"
	"sync"
)

// ObjectKind identifies the kind of a schema object.
type ObjectKind string

const (
	KindTable  ObjectKind = "table"
	KindColumn ObjectKind = "column"
)

// Object is a named schema object returned by a Provider.
type Object struct {
	Name  string     `json:"name"`
	Kind  ObjectKind `json:"kind"`
	Owner string     `json:"owner,omitempty"` // owning table, for columns
	Type  string     `json:"type,omitempty"`  // declared type, for columns
}

// Provider supplies schema objects to the completion engine.
// Implementations must return objects in a deterministic order, and the
// order is preserved in the proposals.
type Provider interface {
	ListTables(ctx context.Context) ([]Object, error)
	// ListColumns returns the columns of table. An unknown table yields an
	// empty result, not an error.
	ListColumns(ctx context.Context, table string) ([]Object, error)
}

// Schema is an ordered, concurrency-safe set of tables.
type Schema struct {
	mu     sync.RWMutex
	Tables []*Table `json:"tables" yaml:"tables"`
}

// Table represents a table or view with its columns.
type Table struct {
	Name    string    `json:"name" yaml:"name"`
	Comment string    `json:"comment,omitempty" yaml:"comment,omitempty"`
	Columns []*Column `json:"columns" yaml:"columns"`

	schema *Schema
}

// Column represents a column in a table.
type Column struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

var _ Provider = (*Schema)(nil)

// ListTables returns all tables in declaration order.
func (s *Schema) ListTables(ctx context.Context) ([]Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Object, 0, len(s.Tables))
	for _, t := range s.Tables {
		out = append(out, Object{Name: t.Name, Kind: KindTable})
	}
	return out, nil
}

// ListColumns returns the columns of table in declaration order.
func (s *Schema) ListColumns(ctx context.Context, table string) ([]Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := s.lookup(table)
	if t == nil {
		return nil, nil
	}
	out := make([]Object, 0, len(t.Columns))
	for _, c := range t.Columns {
		out = append(out, Object{Name: c.Name, Kind: KindColumn, Owner: t.Name, Type: c.Type})
	}
	return out, nil
}

// GetTable returns a table by name, or nil if not found.
func (s *Schema) GetTable(name string) *Table {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(name)
}

// TableNames returns all table names in declaration order.
func (s *Schema) TableNames() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.Tables))
	for _, t := range s.Tables {
		names = append(names, t.Name)
	}
	return names
}

// lookup matches the exact name first, then ignoring case. A qualified name
// such as main.users that matches nothing is retried with its last segment.
// Callers must hold s.mu.
func (s *Schema) lookup(name string) *Table {
	for _, t := range s.Tables {
		if t.Name == name {
			return t
		}
	}
	for _, t := range s.Tables {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 && i < len(name)-1 {
		return s.lookup(name[i+1:])
	}
	return nil
}

// GetColumn returns a column by name, or nil if not found.
func (t *Table) GetColumn(name string) *Column {
	if t == nil {
		return nil
	}
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ColumnNames returns the column names in declaration order.
func (t *Table) ColumnNames() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		names = append(names, c.Name)
	}
	return names
}
