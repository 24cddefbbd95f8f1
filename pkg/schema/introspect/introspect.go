// Package introspect implements schema.Provider on top of database/sql
// catalogs.
package introspect

import (
	"context"
	"database/sql"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/tentacle-scylla/sqlcomplete/pkg/schema"
)

// Querier is the subset of *sql.DB used by the providers.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// SQLite reads tables and views from sqlite_master and columns from
// pragma_table_info. Tables are returned in creation order.
type SQLite struct {
	db Querier
}

// NewSQLite returns a provider for a SQLite database handle.
func NewSQLite(db Querier) *SQLite {
	return &SQLite{db: db}
}

var _ schema.Provider = (*SQLite)(nil)

const sqliteTablesQuery = `SELECT name FROM sqlite_master
WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
ORDER BY rowid`

const sqliteColumnsQuery = `SELECT name, type FROM pragma_table_info(?) ORDER BY cid`

// ListTables implements schema.Provider.
func (s *SQLite) ListTables(ctx context.Context) ([]schema.Object, error) {
	rows, err := s.db.QueryContext(ctx, sqliteTablesQuery)
	if err != nil {
		return nil, errors.Wrap(err, "query sqlite_master")
	}
	return scanObjects(rows, schema.KindTable, "")
}

// ListColumns implements schema.Provider. A schema-qualified name such as
// main.users is looked up by its last segment.
func (s *SQLite) ListColumns(ctx context.Context, table string) ([]schema.Object, error) {
	name := lastSegment(table)
	rows, err := s.db.QueryContext(ctx, sqliteColumnsQuery, name)
	if err != nil {
		return nil, errors.Wrapf(err, "query columns of %s", name)
	}
	return scanObjects(rows, schema.KindColumn, name)
}

// Placeholder selects the bind parameter style of a driver.
type Placeholder int

const (
	// Question uses ? placeholders (MySQL, SQLite).
	Question Placeholder = iota
	// Dollar uses $1 placeholders (PostgreSQL).
	Dollar
)

// InformationSchema reads the standard information_schema views. Tables are
// ordered by name and columns by ordinal position.
type InformationSchema struct {
	db          Querier
	schemaName  string
	placeholder Placeholder
}

// NewInformationSchema returns a provider limited to one schema, for example
// "public" on PostgreSQL or the database name on MySQL.
func NewInformationSchema(db Querier, schemaName string, placeholder Placeholder) *InformationSchema {
	return &InformationSchema{db: db, schemaName: schemaName, placeholder: placeholder}
}

var _ schema.Provider = (*InformationSchema)(nil)

// ListTables implements schema.Provider.
func (p *InformationSchema) ListTables(ctx context.Context) ([]schema.Object, error) {
	q := `SELECT table_name, table_type FROM information_schema.tables
WHERE table_schema = ` + p.bind(1) + `
ORDER BY table_name`
	rows, err := p.db.QueryContext(ctx, q, p.schemaName)
	if err != nil {
		return nil, errors.Wrap(err, "query information_schema.tables")
	}
	defer rows.Close()

	var out []schema.Object
	for rows.Next() {
		var name, kind string
		if err := rows.Scan(&name, &kind); err != nil {
			return nil, errors.Wrap(err, "scan table")
		}
		out = append(out, schema.Object{Name: name, Kind: schema.KindTable, Type: kind})
	}
	return out, errors.Wrap(rows.Err(), "iterate tables")
}

// ListColumns implements schema.Provider.
func (p *InformationSchema) ListColumns(ctx context.Context, table string) ([]schema.Object, error) {
	name := lastSegment(table)
	q := `SELECT column_name, data_type FROM information_schema.columns
WHERE table_schema = ` + p.bind(1) + ` AND table_name = ` + p.bind(2) + `
ORDER BY ordinal_position`
	rows, err := p.db.QueryContext(ctx, q, p.schemaName, name)
	if err != nil {
		return nil, errors.Wrapf(err, "query columns of %s", name)
	}
	return scanObjects(rows, schema.KindColumn, name)
}

func (p *InformationSchema) bind(n int) string {
	if p.placeholder == Dollar {
		return "$" + string(rune('0'+n))
	}
	return "?"
}

// scanObjects reads (name) or (name, type) rows and closes rows.
func scanObjects(rows *sql.Rows, kind schema.ObjectKind, owner string) ([]schema.Object, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "read columns")
	}

	var out []schema.Object
	for rows.Next() {
		obj := schema.Object{Kind: kind, Owner: owner}
		var typ sql.NullString
		if len(cols) > 1 {
			err = rows.Scan(&obj.Name, &typ)
		} else {
			err = rows.Scan(&obj.Name)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "scan %s", kind)
		}
		obj.Type = typ.String
		out = append(out, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterate %s rows", kind)
	}
	return out, nil
}

func lastSegment(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 && i < len(name)-1 {
		return name[i+1:]
	}
	return name
}
