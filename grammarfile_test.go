package hilite_test

import (
	"errors"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/gopatchy/hilite"
)

const miniGrammar = `
name: Mini
aliases: [mn]
keywords:
  keyword: let
modes:
  str:
    scope: string
    begin: "'"
    end: "'"
contains:
  - $ref: str
  - $ref: NUMBER_MODE
  - scope: block
    begin: '\{'
    end: '\}'
    contains:
      - self
      - $ref: str
`

func TestRegisterLanguageDir(t *testing.T) {
	t.Parallel()

	fx := fstest.MapFS{
		"grammars/mini.yaml":    {Data: []byte(miniGrammar)},
		"grammars/notes.txt":    {Data: []byte("not a grammar")},
		"grammars/nested/x.yml": {Data: []byte("name: X")},
	}

	h := hilite.New()

	names, err := h.RegisterLanguageDir(fx, "grammars")
	if err != nil {
		t.Fatalf("Failed to register grammars: %v", err)
	}

	if !slices.Equal(names, []string{"mini"}) {
		t.Fatalf("Expected [mini], got %v", names)
	}

	result := highlight(t, h, "let x = 'a' { 'b' {} } 42", "mn")

	expected := `<span class="hljs-keyword">let</span> x = <span class="hljs-string">&#x27;a&#x27;</span> ` +
		`<span class="hljs-block">{ <span class="hljs-string">&#x27;b&#x27;</span> <span class="hljs-block">{}</span> }</span> ` +
		`<span class="hljs-number">42</span>`
	if result.Value != expected {
		t.Errorf("Expected %q, got %q", expected, result.Value)
	}

	if result.Relevance != 5 {
		t.Errorf("Expected relevance 5, got %d", result.Relevance)
	}
}

func TestLoadLanguageNameFromFile(t *testing.T) {
	t.Parallel()

	fx := fstest.MapFS{
		"lang/tiny.json": {Data: []byte(`{"keywords": "tiny"}`)},
	}

	lang, err := hilite.LoadLanguage(fx, "/lang/tiny.json")
	if err != nil {
		t.Fatalf("Failed to load grammar: %v", err)
	}

	if lang.Name != "tiny" {
		t.Errorf("Expected name from file stem, got %q", lang.Name)
	}

	lang, err = hilite.LoadLanguage(fx, "lang/tiny")
	if err != nil {
		t.Fatalf("Failed to load grammar without extension: %v", err)
	}

	if lang.Name != "tiny" {
		t.Errorf("Expected name from file stem, got %q", lang.Name)
	}

	_, err = hilite.LoadLanguage(fx, "lang/missing.json")
	if !errors.Is(err, hilite.ErrMissingFile) {
		t.Errorf("Expected ErrMissingFile, got %v", err)
	}
}

func TestGrammarRecursiveRef(t *testing.T) {
	t.Parallel()

	lang, err := hilite.ParseLanguage("yaml", []byte(`
modes:
  paren:
    scope: paren
    begin: '\('
    end: '\)'
    contains:
      - $ref: paren
contains:
  - $ref: paren
`))
	if err != nil {
		t.Fatalf("Failed to parse grammar: %v", err)
	}

	h := hilite.New()
	register(t, h, "paren", lang)

	result := highlight(t, h, "(())", "paren")

	expected := `<span class="hljs-paren">(<span class="hljs-paren">()</span>)</span>`
	if result.Value != expected {
		t.Errorf("Expected %q, got %q", expected, result.Value)
	}
}

func TestGrammarScopeMaps(t *testing.T) {
	t.Parallel()

	lang, err := hilite.ParseLanguage("toml", []byte(`
[[contains]]
match = ['fn', '\s+', '\w+']
scope = { 1 = "keyword", 3 = "title.function" }
`))
	if err != nil {
		t.Fatalf("Failed to parse grammar: %v", err)
	}

	h := hilite.New()
	register(t, h, "fn", lang)

	result := highlight(t, h, "fn main", "fn")

	expected := `<span class="hljs-keyword">fn</span> <span class="hljs-title function_">main</span>`
	if result.Value != expected {
		t.Errorf("Expected %q, got %q", expected, result.Value)
	}
}

func TestGrammarErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		format   string
		data     string
		expected error
	}{
		{"unknownKey", "yaml", "bogus: 1", hilite.ErrInvalidGrammar},
		{"unknownRef", "yaml", "contains: [{$ref: nope}]", hilite.ErrInvalidGrammar},
		{"refWithKeys", "yaml", "contains: [{$ref: NUMBER_MODE, scope: x}]", hilite.ErrInvalidGrammar},
		{"unknownName", "yaml", "contains: [other]", hilite.ErrInvalidGrammar},
		{"badRelevance", "json", `{"contains": [{"begin": "a", "relevance": "high"}]}`, hilite.ErrInvalidGrammar},
		{"badScopeGroup", "yaml", "contains: [{match: [a, b], scope: {first: x}}]", hilite.ErrInvalidGrammar},
		{"notAMap", "yaml", "- a", hilite.ErrInvalidGrammar},
		{"badSyntax", "yaml", "a: [", hilite.ErrDecode},
		{"unknownFormat", "xml", "<a/>", hilite.ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := hilite.ParseLanguage(tt.format, []byte(tt.data))
			if !errors.Is(err, tt.expected) {
				t.Fatalf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}
