package fsys_test

import (
	"slices"
	"testing"
	"testing/fstest"

	"github.com/gopatchy/hilite/internal/fsys"
)

func testFS() *fsys.FS {
	return fsys.New(fstest.MapFS{
		"grammars/a.yaml":   {Data: []byte("keywords: a")},
		"grammars/b.json":   {Data: []byte(`{"keywords": "b"}`)},
		"grammars/README":   {Data: []byte("notes")},
		"grammars/c.txt":    {Data: []byte("c")},
		"options/site.toml": {Data: []byte(`classPrefix = "x-"`)},
	})
}

func TestReadFileAbsolute(t *testing.T) {
	t.Parallel()

	f := testFS()

	for _, name := range []string{"grammars/a.yaml", "/grammars/a.yaml", "/grammars/../grammars/a.yaml"} {
		data, err := f.ReadFile(name)
		if err != nil {
			t.Fatalf("Failed to read %s: %v", name, err)
		}

		if string(data) != "keywords: a" {
			t.Errorf("%s: unexpected content %q", name, data)
		}
	}
}

func TestFindFile(t *testing.T) {
	t.Parallel()

	f := testFS()

	if got := f.FindFile("/options/site"); got != "/options/site.toml" {
		t.Errorf("Expected /options/site.toml, got %q", got)
	}

	if got := f.FindFile("options/missing"); got != "" {
		t.Errorf("Expected no match, got %q", got)
	}
}

func TestGlobFiles(t *testing.T) {
	t.Parallel()

	f := testFS()

	got, err := f.GlobFiles("grammars/*")
	if err != nil {
		t.Fatalf("Failed to glob: %v", err)
	}

	if !slices.Equal(got, []string{"grammars/a.yaml", "grammars/b.json"}) {
		t.Errorf("Unexpected matches %v", got)
	}

	got, err = f.GlobFiles("/grammars/*")
	if err != nil {
		t.Fatalf("Failed to glob: %v", err)
	}

	if !slices.Equal(got, []string{"/grammars/a.yaml", "/grammars/b.json"}) {
		t.Errorf("Unexpected absolute matches %v", got)
	}
}
