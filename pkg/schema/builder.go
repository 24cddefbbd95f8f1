package schema

// NewSchema creates a new empty schema.
func NewSchema() *Schema {
	return &Schema{}
}

// AddTable adds a new table to the schema and returns it.
// If a table with the same name already exists, it returns the existing one.
func (s *Schema) AddTable(name string) *Table {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range s.Tables {
		if t.Name == name {
			return t
		}
	}
	t := &Table{Name: name, schema: s}
	s.Tables = append(s.Tables, t)
	return t
}

// AddColumn adds a column to the table and returns the table for chaining.
// Adding an existing column updates its type in place.
func (t *Table) AddColumn(name, typ string) *Table {
	if t.schema != nil {
		t.schema.mu.Lock()
		defer t.schema.mu.Unlock()
	}
	for _, c := range t.Columns {
		if c.Name == name {
			c.Type = typ
			return t
		}
	}
	t.Columns = append(t.Columns, &Column{Name: name, Type: typ})
	return t
}

// AddColumns adds untyped columns in order.
func (t *Table) AddColumns(names ...string) *Table {
	for _, name := range names {
		t.AddColumn(name, "")
	}
	return t
}

// WithComment sets the table comment.
func (t *Table) WithComment(comment string) *Table {
	t.Comment = comment
	return t
}

// attach links loaded tables back to the schema so later builder calls take
// the schema lock.
func (s *Schema) attach() {
	for _, t := range s.Tables {
		if t == nil {
			continue
		}
		t.schema = s
	}
}
