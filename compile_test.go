package hilite_test

import (
	"errors"
	"testing"

	"github.com/gopatchy/hilite"
)

func TestCompileErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		lang     *hilite.Language
		expected error
	}{
		{
			name: "matchWithBegin",
			lang: &hilite.Language{Mode: hilite.Mode{
				Contains: []*hilite.Mode{{Match: `a`, Begin: `b`}},
			}},
			expected: hilite.ErrMatchWithBeginEnd,
		},
		{
			name: "beforeMatchWithStarts",
			lang: &hilite.Language{Mode: hilite.Mode{
				Contains: []*hilite.Mode{{
					Begin:       `a`,
					BeforeMatch: `b`,
					Starts:      &hilite.Mode{End: `c`},
				}},
			}},
			expected: hilite.ErrBeforeMatchWithStarts,
		},
		{
			name: "multiClassNoScopes",
			lang: &hilite.Language{Mode: hilite.Mode{
				Contains: []*hilite.Mode{{BeginSeq: []string{`a`, `b`}}},
			}},
			expected: hilite.ErrMultiClass,
		},
		{
			name: "multiClassSkip",
			lang: &hilite.Language{Mode: hilite.Mode{
				Contains: []*hilite.Mode{{
					BeginSeq:    []string{`a`, `b`},
					BeginScopes: map[int]string{1: "keyword"},
					Skip:        true,
				}},
			}},
			expected: hilite.ErrMultiClass,
		},
		{
			name: "selfAtTopLevel",
			lang: &hilite.Language{Mode: hilite.Mode{
				Contains: []*hilite.Mode{hilite.Self},
			}},
			expected: hilite.ErrSelfAtTopLevel,
		},
		{
			name: "invalidPattern",
			lang: &hilite.Language{Mode: hilite.Mode{
				Contains: []*hilite.Mode{{Begin: `(`}},
			}},
			expected: hilite.ErrInvalidPattern,
		},
		{
			name: "subLanguageList",
			lang: &hilite.Language{Mode: hilite.Mode{
				Contains: []*hilite.Mode{{
					Begin:       `<`,
					End:         `>`,
					SubLanguage: []string{"a", "b"},
				}},
			}},
			expected: hilite.ErrSubLanguage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := hilite.Compile(tt.lang)
			if !errors.Is(err, tt.expected) {
				t.Fatalf("Expected %v, got %v", tt.expected, err)
			}

			if !errors.Is(err, hilite.ErrConstruction) {
				t.Errorf("Expected ErrConstruction in chain, got %v", err)
			}
		})
	}
}

func TestCompileErrorPropagates(t *testing.T) {
	t.Parallel()

	h := hilite.New()
	register(t, h, "broken", &hilite.Language{Mode: hilite.Mode{
		Contains: []*hilite.Mode{{Begin: `[`}},
	}})

	_, err := h.Highlight("x", "broken", true)
	if !errors.Is(err, hilite.ErrInvalidPattern) {
		t.Fatalf("Expected ErrInvalidPattern even in safe mode, got %v", err)
	}
}

func TestCompileIdempotent(t *testing.T) {
	t.Parallel()

	str := hilite.QuoteStringMode()

	lang := &hilite.Language{
		Mode: hilite.Mode{
			Keywords: hilite.Words("if else"),
			Contains: []*hilite.Mode{
				str,
				{
					Scope:    "block",
					Begin:    `\{`,
					End:      `\}`,
					Contains: []*hilite.Mode{hilite.Self, str},
				},
				{
					Scope: "number",
					Variants: []*hilite.Mode{
						{Begin: `\d+`},
						{Begin: `0x[0-9a-f]+`},
					},
				},
			},
		},
	}

	first, err := hilite.Compile(lang)
	if err != nil {
		t.Fatalf("Failed to compile: %v", err)
	}

	second, err := hilite.Compile(lang)
	if err != nil {
		t.Fatalf("Failed to compile again: %v", err)
	}

	if first.Describe() != second.Describe() {
		t.Errorf("Compiled forms differ:\n%s\n---\n%s", first.Describe(), second.Describe())
	}

	if first.Modes() != second.Modes() {
		t.Errorf("Mode counts differ: %d vs %d", first.Modes(), second.Modes())
	}

	if lang.Contains[2].Variants == nil || lang.Contains[0] != str {
		t.Errorf("Definition was modified by compilation")
	}
}

func TestCompiledLanguageCached(t *testing.T) {
	t.Parallel()

	h := hilite.New()
	register(t, h, "kw", &hilite.Language{
		Mode: hilite.Mode{Keywords: hilite.Words("a")},
	})

	first, err := h.CompiledLanguage("kw")
	if err != nil {
		t.Fatalf("Failed to compile: %v", err)
	}

	second, err := h.CompiledLanguage("KW")
	if err != nil {
		t.Fatalf("Failed to compile: %v", err)
	}

	if first != second {
		t.Errorf("Expected the compiled language to be reused")
	}

	h.Configure(hilite.Options{})

	third, err := h.CompiledLanguage("kw")
	if err != nil {
		t.Fatalf("Failed to compile: %v", err)
	}

	if third == first {
		t.Errorf("Expected Configure to discard compiled languages")
	}
}

func TestBeginKeywords(t *testing.T) {
	t.Parallel()

	h := hilite.New()
	register(t, h, "decl", &hilite.Language{
		Mode: hilite.Mode{
			Contains: []*hilite.Mode{{
				Scope:         "class",
				BeginKeywords: "class struct",
				End:           `\{`,
				ExcludeEnd:    true,
				Contains:      []*hilite.Mode{hilite.TitleMode()},
			}},
		},
	})

	result := highlight(t, h, "class Foo { x.class Bar", "decl")

	expected := `<span class="hljs-class"><span class="hljs-keyword">class</span> <span class="hljs-title">Foo</span> </span>{ x.class Bar`
	if result.Value != expected {
		t.Errorf("Expected %q, got %q", expected, result.Value)
	}
}
