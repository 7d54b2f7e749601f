package hilite

import (
	"fmt"

	"github.com/gopatchy/hilite/pkg/log"
	"github.com/gopatchy/hilite/pkg/tokentree"
)

// Result is the outcome of one highlight pass.
type Result struct {
	// Name the pass was requested with; "" for the plain text baseline
	Language string

	// Rendered markup
	Value string

	Relevance int

	// Set when an illegal match aborted the pass; Value is then the escaped
	// input and IllegalBy describes the match.
	Illegal   bool
	IllegalBy *IllegalError

	// Input after BeforeHighlighter plugins ran
	Code string

	// Error swallowed by safe mode
	ErrorRaised error

	// Runner-up from auto-detection
	SecondBest *Result

	Emitter tokentree.Emitter

	// Open modes at the end of the pass, for sublanguage continuations
	top []*compiledMode
}

// Highlight runs one pass of the named language over code. Illegal matches
// are treated as plain content when ignoreIllegals is set.
//
// In safe mode only construction and lookup errors are returned. In strict
// mode parse errors are returned as well; an illegal match returns both the
// illegal Result and an *IllegalError.
func (h *Highlighter) Highlight(code, language string, ignoreIllegals bool) (*Result, error) {
	ctx := &BeforeHighlightContext{
		Code:     code,
		Language: language,
	}

	h.fireBeforeHighlight(ctx)

	result := ctx.Result

	var err error

	if result == nil {
		result, err = h.highlight(ctx.Language, ctx.Code, ignoreIllegals, nil)
		if result == nil {
			return nil, err
		}
	}

	result.Code = ctx.Code

	h.fireAfterHighlight(result)

	return result, err
}

func (h *Highlighter) highlight(name, code string, ignoreIllegals bool, continuation []*compiledMode) (*Result, error) {
	if h.GetLanguage(name) == nil {
		log.Warnf("Could not find the language '%s', did you forget to load/include a language module?", name)
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownLanguage)
	}

	cl, err := h.CompiledLanguage(name)
	if err != nil {
		return nil, err
	}

	p := &parser{
		h:              h,
		lang:           cl,
		name:           name,
		code:           code,
		text:           []rune(code),
		ignoreIllegals: ignoreIllegals,
		safe:           h.SafeMode(),
		opts:           h.Options(),
		keywordHits:    map[string]int{},
		continuations:  map[string][]*compiledMode{},
		data:           map[*compiledMode]map[string]any{},
	}

	return p.run(continuation)
}
