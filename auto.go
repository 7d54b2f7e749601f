package hilite

import (
	"errors"
	"sort"
	"strings"

	"github.com/gopatchy/hilite/pkg/log"
	"github.com/gopatchy/hilite/pkg/tokentree"
)

// HighlightAuto highlights code with every candidate language and returns
// the most relevant result, with the runner-up in SecondBest. Candidates
// default to Options.Languages, then to every registered language.
// Unknown names and languages with DisableAutodetect are skipped.
func (h *Highlighter) HighlightAuto(code string, subset ...string) (*Result, error) {
	result, err := h.highlightAuto(code, subset)
	if err != nil {
		return nil, err
	}

	result.Code = code

	return result, nil
}

func (h *Highlighter) highlightAuto(code string, subset []string) (*Result, error) {
	opts := h.Options()

	if len(subset) == 0 {
		subset = opts.Languages
	}

	if len(subset) == 0 {
		subset = h.ListLanguages()
	}

	results := []*Result{plainTextResult(code, opts)}

	for _, name := range subset {
		if !h.AutoDetection(name) {
			continue
		}

		result, err := h.highlight(name, code, false, nil)
		if result == nil {
			return nil, err
		}

		// Strict mode reports illegal matches; they score 0 either way.
		if err != nil && !errors.Is(err, ErrIllegalLexeme) {
			return nil, err
		}

		log.Debugf("[%s] auto-detect relevance %d (illegal=%v)", name, result.Relevance, result.Illegal)

		results = append(results, result)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return h.ranksBefore(results[i], results[j])
	})

	best := results[0]
	if len(results) > 1 {
		best.SecondBest = results[1]
	}

	return best, nil
}

// ranksBefore orders by relevance, then prefers a base language over one
// that declares itself its superset.
func (h *Highlighter) ranksBefore(a, b *Result) bool {
	if a.Relevance != b.Relevance {
		return a.Relevance > b.Relevance
	}

	if a.Language == "" || b.Language == "" {
		return false
	}

	langA := h.GetLanguage(a.Language)
	if langA != nil && strings.EqualFold(langA.SupersetOf, b.Language) {
		return false
	}

	langB := h.GetLanguage(b.Language)
	if langB != nil && strings.EqualFold(langB.SupersetOf, a.Language) {
		return true
	}

	return false
}

func plainTextResult(code string, opts Options) *Result {
	emitter := opts.newEmitter()
	emitter.AddText(code)

	return &Result{
		Value:   tokentree.Escape(code),
		Emitter: emitter,
	}
}
