package hilite_test

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gopatchy/hilite"
)

func TestDiffMarkup(t *testing.T) {
	t.Parallel()

	if diff := hilite.DiffMarkup("a", "b", "same\n", "same\n"); diff != "" {
		t.Errorf("Expected no diff for equal markup, got %q", diff)
	}

	diff := hilite.DiffMarkup("a", "b", "one\n", "two\n")

	for _, want := range []string{"--- a", "+++ b", "-one", "+two"} {
		if !strings.Contains(diff, want) {
			t.Errorf("Expected %q in diff:\n%s", want, diff)
		}
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	fx := fstest.MapFS{
		"src/a.c": {Data: []byte("int x;\n")},
		"src/b.c": {Data: []byte("long x;\n")},
		"src/c.c": {Data: []byte("int x;\n")},
	}

	h := newHighlighter(t)

	result, err := h.Compare(fx, "/src/a.c", "/src/b.c", "c")
	if err != nil {
		t.Fatalf("Failed to compare: %v", err)
	}

	if !strings.Contains(result.Diff, `-<span class="hljs-type">int</span> x;`) ||
		!strings.Contains(result.Diff, `+<span class="hljs-type">long</span> x;`) {
		t.Errorf("Unexpected diff:\n%s", result.Diff)
	}

	result, err = h.Compare(fx, "src/a.c", "src/c.c", "c")
	if err != nil {
		t.Fatalf("Failed to compare: %v", err)
	}

	if result.Diff != "" {
		t.Errorf("Expected identical markup, got:\n%s", result.Diff)
	}

	_, err = h.Compare(fx, "src/a.c", "src/missing.c", "c")
	if !errors.Is(err, hilite.ErrMissingFile) {
		t.Errorf("Expected ErrMissingFile, got %v", err)
	}

	_, err = h.Compare(fx, "src/a.c", "src/b.c", "cobol")
	if !errors.Is(err, hilite.ErrUnknownLanguage) {
		t.Errorf("Expected ErrUnknownLanguage, got %v", err)
	}
}

func TestCompareAutoDetect(t *testing.T) {
	t.Parallel()

	fx := fstest.MapFS{
		"a.txt": {Data: []byte("foo bar")},
		"b.txt": {Data: []byte("foo baz")},
	}

	h := hilite.New()
	register(t, h, "foo", fooLanguage(""))

	result, err := h.Compare(fx, "a.txt", "b.txt", "")
	if err != nil {
		t.Fatalf("Failed to compare: %v", err)
	}

	if result.Language != "foo" {
		t.Errorf("Expected foo to be detected, got %q", result.Language)
	}

	if !strings.Contains(result.Diff, "+<span class=\"hljs-keyword\">foo</span> baz") {
		t.Errorf("Unexpected diff:\n%s", result.Diff)
	}
}
