package schema

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/tentacle-scylla/sqlcomplete/pkg/types"
)

// ToJSON serializes the schema to JSON bytes.
func (s *Schema) ToJSON() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.Marshal(s)
}

// ToJSONIndent serializes the schema to indented JSON bytes.
func (s *Schema) ToJSONIndent() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.MarshalIndent(s, "", "  ")
}

// ParseJSON parses a schema from JSON bytes.
func ParseJSON(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.Mark(err, types.ErrInvalidSchema), "parse schema json")
	}
	return finish(&s)
}

// ParseYAML parses a schema from YAML bytes.
func ParseYAML(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(errors.Mark(err, types.ErrInvalidSchema), "parse schema yaml")
	}
	return finish(&s)
}

// LoadFile loads a schema file, choosing the decoder by extension.
// Files ending in .yaml or .yml are YAML, anything else is JSON.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read schema %s", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// SaveToJSON saves the schema to a JSON file with indentation.
func (s *Schema) SaveToJSON(path string) error {
	data, err := s.ToJSONIndent()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// finish validates a decoded schema and links its tables.
func finish(s *Schema) (*Schema, error) {
	seen := make(map[string]bool, len(s.Tables))
	for i, t := range s.Tables {
		if t == nil || t.Name == "" {
			return nil, errors.Wrapf(types.ErrInvalidSchema, "table %d has no name", i)
		}
		if seen[t.Name] {
			return nil, errors.Wrapf(types.ErrInvalidSchema, "duplicate table %q", t.Name)
		}
		seen[t.Name] = true
		for j, c := range t.Columns {
			if c == nil || c.Name == "" {
				return nil, errors.Wrapf(types.ErrInvalidSchema, "table %q column %d has no name", t.Name, j)
			}
		}
	}
	s.attach()
	return s, nil
}
