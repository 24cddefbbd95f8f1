package schema

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

// WithTimeout wraps p so that every call is bounded by d.
// A non-positive d returns p unchanged.
func WithTimeout(p Provider, d time.Duration) Provider {
	if d <= 0 || p == nil {
		return p
	}
	return &timeoutProvider{next: p, timeout: d}
}

type timeoutProvider struct {
	next    Provider
	timeout time.Duration
}

func (t *timeoutProvider) ListTables(ctx context.Context) ([]Object, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.ListTables(ctx)
}

func (t *timeoutProvider) ListColumns(ctx context.Context, table string) ([]Object, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.ListColumns(ctx, table)
}

// Snapshot copies every table and column of p into an in-memory Schema.
func Snapshot(ctx context.Context, p Provider) (*Schema, error) {
	tables, err := p.ListTables(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list tables")
	}

	s := NewSchema()
	for _, obj := range tables {
		t := s.AddTable(obj.Name)
		cols, err := p.ListColumns(ctx, obj.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "list columns of %s", obj.Name)
		}
		for _, c := range cols {
			t.AddColumn(c.Name, c.Type)
		}
	}
	return s, nil
}
