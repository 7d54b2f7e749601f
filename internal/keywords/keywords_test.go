package keywords_test

import (
	"errors"
	"testing"

	"github.com/gopatchy/hilite/internal/keywords"
	herrors "github.com/gopatchy/hilite/pkg/errors"
)

func TestCompile(t *testing.T) {
	t.Parallel()

	table := keywords.Compile([]keywords.Group{
		{Scope: "keyword", Words: keywords.Split("for while|5 if")},
		{Scope: "built_in", Words: []string{"print", "value|2"}},
		{Scope: "_relevance", Words: []string{"magic"}},
	}, false, keywords.Common)

	tests := []struct {
		word      string
		scope     string
		relevance int
	}{
		{"for", "keyword", 0},
		{"while", "keyword", 5},
		{"if", "keyword", 0},
		{"print", "built_in", 1},
		{"value", "built_in", 2},
		{"magic", "_relevance", 1},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			entry, found := table[tt.word]
			if !found {
				t.Fatalf("%q missing from table", tt.word)
			}
			if entry.Scope != tt.scope || entry.Relevance != tt.relevance {
				t.Errorf("got %+v, expected {%s %d}", entry, tt.scope, tt.relevance)
			}
		})
	}

	if _, found := table["while|5"]; found {
		t.Errorf("score suffix leaked into table key")
	}

	if !table["magic"].RelevanceOnly() {
		t.Errorf("expected magic to be relevance-only")
	}
	if table["print"].RelevanceOnly() {
		t.Errorf("expected print to be highlighted")
	}
}

func TestCompileCaseInsensitive(t *testing.T) {
	t.Parallel()

	table := keywords.Compile([]keywords.Group{
		{Words: keywords.Split("SELECT From")},
	}, true, keywords.Common)

	for _, word := range []string{"select", "from"} {
		entry, found := table[word]
		if !found {
			t.Fatalf("%q missing from table", word)
		}
		if entry.Scope != keywords.DefaultScope {
			t.Errorf("%q: got scope %q", word, entry.Scope)
		}
	}

	if _, found := table["SELECT"]; found {
		t.Errorf("expected keys to be lowercased")
	}
}

func TestCompileCustomCommon(t *testing.T) {
	t.Parallel()

	table := keywords.Compile([]keywords.Group{
		{Words: keywords.Split("and foo")},
	}, false, []string{"foo"})

	if table["and"].Relevance != 1 {
		t.Errorf("and: got %d, expected 1", table["and"].Relevance)
	}
	if table["foo"].Relevance != 0 {
		t.Errorf("foo: got %d, expected 0", table["foo"].Relevance)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	groups, pattern, err := keywords.Parse("a b  c")
	if err != nil {
		t.Fatalf("Failed to parse string: %v", err)
	}
	if pattern != "" || len(groups) != 1 || len(groups[0].Words) != 3 {
		t.Errorf("unexpected string parse: %+v %q", groups, pattern)
	}

	groups, _, err = keywords.Parse([]any{"x", "y|3"})
	if err != nil {
		t.Fatalf("Failed to parse list: %v", err)
	}
	if len(groups) != 1 || groups[0].Words[1] != "y|3" {
		t.Errorf("unexpected list parse: %+v", groups)
	}

	groups, pattern, err = keywords.Parse(map[string]any{
		"$pattern": `[a-z.]+`,
		"literal":  "true false",
		"keyword":  []any{"if", "else"},
	})
	if err != nil {
		t.Fatalf("Failed to parse map: %v", err)
	}
	if pattern != `[a-z.]+` {
		t.Errorf("got pattern %q", pattern)
	}
	if len(groups) != 2 || groups[0].Scope != "keyword" || groups[1].Scope != "literal" {
		t.Errorf("unexpected map parse: %+v", groups)
	}

	_, _, err = keywords.Parse(42)
	if !errors.Is(err, herrors.ErrInvalidType) {
		t.Errorf("expected ErrInvalidType, got %v", err)
	}

	_, _, err = keywords.Parse(map[string]any{"keyword": 7})
	if !errors.Is(err, herrors.ErrInvalidType) {
		t.Errorf("expected ErrInvalidType, got %v", err)
	}
}
