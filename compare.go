package hilite

import (
	"fmt"
	"io/fs"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/gopatchy/hilite/internal/fsys"
)

type CompareResult struct {
	File1    string
	File2    string
	Language string
	Diff     string
}

// Compare highlights two files with the same language and returns a
// unified diff of the markup. An empty language auto-detects from file1.
func (h *Highlighter) Compare(fx fs.FS, file1, file2, language string) (*CompareResult, error) {
	fileSystem := fsys.New(fx)

	code1, err := fileSystem.ReadFile(file1)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v (%w)", file1, err, ErrMissingFile)
	}

	code2, err := fileSystem.ReadFile(file2)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %v (%w)", file2, err, ErrMissingFile)
	}

	if language == "" {
		auto, err := h.HighlightAuto(string(code1))
		if err != nil {
			return nil, fmt.Errorf("failed to detect language of %s: %w", file1, err)
		}

		language = auto.Language
	}

	output1, err := h.markup(string(code1), language)
	if err != nil {
		return nil, fmt.Errorf("failed to highlight %s: %w", file1, err)
	}

	output2, err := h.markup(string(code2), language)
	if err != nil {
		return nil, fmt.Errorf("failed to highlight %s: %w", file2, err)
	}

	return &CompareResult{
		File1:    file1,
		File2:    file2,
		Language: language,
		Diff:     DiffMarkup(file1, file2, output1, output2),
	}, nil
}

// markup highlights code, treating "" as plain text.
func (h *Highlighter) markup(code, language string) (string, error) {
	if language == "" {
		return plainTextResult(code, h.Options()).Value, nil
	}

	result, err := h.Highlight(code, language, true)
	if err != nil {
		return "", err
	}

	return result.Value, nil
}

// DiffMarkup returns a unified diff between two markup strings, or "" if
// they are equal.
func DiffMarkup(name1, name2, a, b string) string {
	edits := myers.ComputeEdits(span.URIFromPath(name1), a, b)
	return fmt.Sprint(gotextdiff.ToUnified(name1, name2, a, edits))
}
