package hover

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/tentacle-scylla/sqlcomplete/pkg/complete/completetest"
	"github.com/tentacle-scylla/sqlcomplete/pkg/schema"
	"github.com/tentacle-scylla/sqlcomplete/pkg/tokenize"
	"github.com/tentacle-scylla/sqlcomplete/pkg/types"
)

// HoverFixture represents a single test case
type HoverFixture struct {
	Name      string `yaml:"name"`
	Query     string `yaml:"query"`
	SchemaRef string `yaml:"schemaRef,omitempty"`

	// Hover expectations
	ExpectKind            string `yaml:"expectKind,omitempty"`
	ExpectName            string `yaml:"expectName,omitempty"`
	ExpectTable           string `yaml:"expectTable,omitempty"`
	ExpectContentContains string `yaml:"expectContentContains,omitempty"`
	ExpectNoHover         bool   `yaml:"expectNoHover,omitempty"`
}

// FixtureFile represents the entire fixture file structure
type FixtureFile struct {
	Schemas map[string]*schema.Schema `yaml:"schemas"`
	Tests   []HoverFixture            `yaml:"tests"`
}

func loadFixtures(t *testing.T) (*FixtureFile, error) {
	data, err := os.ReadFile("testdata/hover_fixtures.yaml")
	if err != nil {
		return nil, err
	}

	var ff FixtureFile
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, err
	}

	return &ff, nil
}

func TestHoverFixtures(t *testing.T) {
	ff, err := loadFixtures(t)
	if err != nil {
		t.Fatalf("Failed to load fixtures: %v", err)
	}

	for _, f := range ff.Tests {
		t.Run(f.Name, func(t *testing.T) {
			var provider schema.Provider
			if f.SchemaRef != "" {
				s, ok := ff.Schemas[f.SchemaRef]
				if !ok {
					t.Fatalf("Schema reference %q not found", f.SchemaRef)
				}
				provider = s
			}

			text, pos := completetest.CatchCaret(f.Query)
			info, err := NewResolver(provider).Hover(context.Background(), Request{Text: text, Position: pos})
			if err != nil {
				t.Fatalf("Hover: %v", err)
			}

			t.Logf("Query: %q (pos %d)", text, pos)
			if info != nil {
				t.Logf("Hover: kind=%s, name=%s, table=%s", info.Kind, info.Name, info.Table)
				t.Logf("Content: %s", info.Content)
			}

			if f.ExpectNoHover {
				if info != nil {
					t.Errorf("Expected no hover, got kind=%s name=%s", info.Kind, info.Name)
				}
				return
			}
			if info == nil {
				t.Fatalf("Expected hover with kind=%q, got nil", f.ExpectKind)
			}
			if f.ExpectKind != "" && string(info.Kind) != f.ExpectKind {
				t.Errorf("Kind = %q, want %q", info.Kind, f.ExpectKind)
			}
			if f.ExpectName != "" && info.Name != f.ExpectName {
				t.Errorf("Name = %q, want %q", info.Name, f.ExpectName)
			}
			if f.ExpectTable != "" && info.Table != f.ExpectTable {
				t.Errorf("Table = %q, want %q", info.Table, f.ExpectTable)
			}
			if f.ExpectContentContains != "" && !strings.Contains(info.Content, f.ExpectContentContains) {
				t.Errorf("Content %q does not contain %q", info.Content, f.ExpectContentContains)
			}
		})
	}
}

// TestFindTokenAt tests token finding in isolation
func TestFindTokenAt(t *testing.T) {
	toks := tokenize.Tokenize("SELECT a, b FROM t")

	tests := []struct {
		pos  int
		want string
	}{
		{0, "SELECT"},
		{3, "SELECT"},
		{6, "SELECT"},
		{7, "a"},
		{8, "a"},
		{10, "b"},
		{18, "t"},
	}
	for _, tt := range tests {
		i := FindTokenAt(toks, tt.pos)
		if i < 0 {
			t.Errorf("FindTokenAt(%d) = -1, want %q", tt.pos, tt.want)
			continue
		}
		if toks[i].Text != tt.want {
			t.Errorf("FindTokenAt(%d) = %q, want %q", tt.pos, toks[i].Text, tt.want)
		}
	}

	if i := FindTokenAt(toks, 9); i >= 0 {
		t.Errorf("FindTokenAt(9) = %q, want none", toks[i].Text)
	}
}

func TestHoverRange(t *testing.T) {
	info, err := NewResolver(nil).Hover(context.Background(), Request{Text: "SELECT * FROM t WHERE x = 1", Position: 18})
	if err != nil {
		t.Fatalf("Hover: %v", err)
	}
	if info == nil {
		t.Fatal("Expected hover for WHERE")
	}
	if info.Range != (Range{Start: 16, End: 21}) {
		t.Errorf("Range = %+v, want {16 21}", info.Range)
	}
}

func TestHoverInvalidPosition(t *testing.T) {
	r := NewResolver(nil)
	for _, pos := range []int{-1, 7} {
		_, err := r.Hover(context.Background(), Request{Text: "SELECT", Position: pos})
		if !types.IsInvalidArgument(err) {
			t.Errorf("position %d: expected invalid argument, got %v", pos, err)
		}
	}
}

type failingProvider struct{}

func (failingProvider) ListTables(context.Context) ([]schema.Object, error) {
	return nil, errors.New("connection refused")
}

func (failingProvider) ListColumns(context.Context, string) ([]schema.Object, error) {
	return nil, errors.New("connection refused")
}

func TestHoverProviderError(t *testing.T) {
	_, err := NewResolver(failingProvider{}).Hover(context.Background(), Request{Text: "SELECT * FROM orders", Position: 16})
	if err == nil {
		t.Fatal("Expected error from failing provider")
	}
	if !strings.Contains(err.Error(), "list columns of orders") {
		t.Errorf("error %q does not name the table", err)
	}
}
