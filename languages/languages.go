// Package languages registers the bundled grammars.
package languages

import (
	"embed"
	"fmt"

	"github.com/gopatchy/hilite"
)

//go:embed data
var dataFS embed.FS

var builtins = []struct {
	name string
	fn   hilite.LanguageFunc
}{
	{"c", C},
	{"cpp", CPP},
}

// Register adds every bundled grammar to h.
func Register(h *hilite.Highlighter) error {
	for _, b := range builtins {
		err := h.RegisterLanguage(b.name, b.fn)
		if err != nil {
			return fmt.Errorf("%s: %w", b.name, err)
		}
	}

	_, err := h.RegisterLanguageDir(dataFS, "data")
	if err != nil {
		return err
	}

	return nil
}

// Default returns a highlighter with every bundled grammar registered.
func Default() (*hilite.Highlighter, error) {
	h := hilite.New()

	err := Register(h)
	if err != nil {
		return nil, err
	}

	return h, nil
}
