package hilite_test

import (
	"errors"
	"testing"

	"github.com/gopatchy/hilite"
)

func TestBlockText(t *testing.T) {
	t.Parallel()

	h := hilite.New()

	text, err := h.BlockText("a &lt; b &amp;&amp; c")
	if err != nil {
		t.Fatalf("Failed to read block: %v", err)
	}

	if text != "a < b && c" {
		t.Errorf("Expected unescaped text, got %q", text)
	}

	text, err = h.BlockText("x <b>y</b>")
	if err != nil {
		t.Fatalf("Expected unescaped HTML to be tolerated by default, got %v", err)
	}

	if text != "x y" {
		t.Errorf("Expected element text to be kept, got %q", text)
	}

	h.Configure(hilite.Options{ThrowUnescapedHTML: true, IgnoreUnescapedHTML: true})

	_, err = h.BlockText("x <b>y</b>")

	var he *hilite.HTMLInjectionError
	if !errors.As(err, &he) {
		t.Fatalf("Expected *HTMLInjectionError, got %v", err)
	}

	if he.HTML != "x <b>y</b>" || !errors.Is(err, hilite.ErrUnescapedHTML) {
		t.Errorf("Unexpected error details: %v", err)
	}
}

func TestBlockLanguage(t *testing.T) {
	t.Parallel()

	h := newHighlighter(t)

	tests := []struct {
		classes  string
		expected string
	}{
		{"language-c", "c"},
		{"lang-cpp wide", "cpp"},
		{"hljs language-nope", "no-highlight"},
		{"wide json", "json"},
		{"nohighlight", "nohighlight"},
		{"no-highlight c", "no-highlight"},
		{"wide tall", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.classes, func(t *testing.T) {
			t.Parallel()

			got := h.BlockLanguage(tt.classes)
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestHighlightBlock(t *testing.T) {
	t.Parallel()

	h := newHighlighter(t)

	result, err := h.HighlightBlock("int x = 1;", "language-c")
	if err != nil {
		t.Fatalf("Failed to highlight block: %v", err)
	}

	expected := `<span class="hljs-type">int</span> x = <span class="hljs-number">1</span>;`
	if result.Value != expected {
		t.Errorf("Expected %q, got %q", expected, result.Value)
	}

	result, err = h.HighlightBlock("int x;", "nohighlight")
	if err != nil || result != nil {
		t.Errorf("Expected no result for a no-highlight block, got %v, %v", result, err)
	}

	auto := hilite.New()
	register(t, auto, "foo", fooLanguage(""))

	result, err = auto.HighlightBlock("x foo", "wide")
	if err != nil {
		t.Fatalf("Failed to auto-highlight block: %v", err)
	}

	if result.Language != "foo" || result.Relevance != 1 {
		t.Errorf("Expected auto-detection to pick foo, got %q", result.Language)
	}
}
