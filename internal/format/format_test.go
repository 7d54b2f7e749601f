package format_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/gopatchy/hilite/internal/format"
	hiliteerrors "github.com/gopatchy/hilite/pkg/errors"
)

func TestDecodeOne(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		data   string
	}{
		{"json", `{"scope": "string", "relevance": 2, "skip": true}`},
		{"yaml", "scope: string\nrelevance: 2\nskip: true\n"},
		{"yml", "scope: string\nrelevance: 2\nskip: true\n"},
		{"toml", "scope = \"string\"\nrelevance = 2\nskip = true\n"},
		{"properties", "scope=string\nrelevance=2\nskip=true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			doc, err := format.DecodeOne(tt.format, []byte(tt.data))
			if err != nil {
				t.Fatalf("Failed to decode: %v", err)
			}

			m, ok := doc.(map[string]any)
			if !ok {
				t.Fatalf("Expected a map, got %T", doc)
			}

			if m["scope"] != "string" {
				t.Errorf("Expected scope string, got %v", m["scope"])
			}

			if _, found := m["relevance"]; !found {
				t.Errorf("Expected relevance to be decoded")
			}
		})
	}
}

func TestDecodeYAMLMerge(t *testing.T) {
	t.Parallel()

	doc, err := format.DecodeOne("yaml", []byte("base: &b\n  end: x\nmode:\n  <<: *b\n  begin: y\n"))
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	mode := doc.(map[string]any)["mode"].(map[string]any)
	if mode["end"] != "x" || mode["begin"] != "y" {
		t.Errorf("Expected merged mode, got %v", mode)
	}
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()

	_, err := format.DecodeOne("xml", []byte("<a/>"))
	if !errors.Is(err, hiliteerrors.ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}

	_, err = format.DecodeOne("json", []byte("{"))
	if !errors.Is(err, hiliteerrors.ErrDecode) {
		t.Errorf("Expected ErrDecode, got %v", err)
	}

	_, err = format.DecodeOne("yaml", []byte("a: 1\n---\nb: 2\n"))
	if !errors.Is(err, hiliteerrors.ErrDecode) {
		t.Errorf("Expected ErrDecode for two documents, got %v", err)
	}
}

func TestEncodeOne(t *testing.T) {
	t.Parallel()

	tree := map[string]any{
		"scope":    "keyword",
		"children": []any{"if"},
	}

	for _, name := range []string{"json", "json-pretty", "yaml", "toml"} {
		out, err := format.EncodeOne(name, tree)
		if err != nil {
			t.Fatalf("Failed to encode %s: %v", name, err)
		}

		if !strings.Contains(string(out), "keyword") || !strings.Contains(string(out), "if") {
			t.Errorf("%s: unexpected output %q", name, out)
		}
	}

	_, err := format.EncodeOne("xml", tree)
	if !errors.Is(err, hiliteerrors.ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}

	_, err = format.EncodeOne("properties", tree)
	if !errors.Is(err, hiliteerrors.ErrEncode) {
		t.Errorf("Expected ErrEncode for read-only format, got %v", err)
	}
}

func TestDecodePropertiesSections(t *testing.T) {
	t.Parallel()

	doc, err := format.DecodeOne("properties", []byte("classPrefix=x-\nmode.scope=string\nmode.end=)\n"))
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	m := doc.(map[string]any)
	if m["classPrefix"] != "x-" {
		t.Errorf("Expected classPrefix x-, got %v", m["classPrefix"])
	}

	mode := m["mode"].(map[string]any)
	if mode["scope"] != "string" || mode["end"] != ")" {
		t.Errorf("Expected nested mode section, got %v", mode)
	}

	_, err = format.DecodeOne("properties", []byte("a=1\na.b=2\n"))
	if !errors.Is(err, hiliteerrors.ErrDecode) {
		t.Errorf("Expected ErrDecode for conflicting keys, got %v", err)
	}
}

func TestDecodeYAMLInts(t *testing.T) {
	t.Parallel()

	doc, err := format.DecodeOne("yaml", []byte("relevance: 0x10\n"))
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}

	if n, ok := doc.(map[string]any)["relevance"].(int); !ok || n != 16 {
		t.Errorf("Expected int 16, got %#v", doc)
	}
}
