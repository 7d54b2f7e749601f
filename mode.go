package hilite

import (
	"reflect"

	"github.com/gopatchy/hilite/pkg/tokentree"
)

// Hook runs when a mode's begin or end pattern matches. Calling
// resp.IgnoreMatch() rejects the match.
type Hook func(m *Match, resp *Response)

// CompilerExtension rewrites a mode definition before it is compiled.
// parent is nil for the language root.
type CompilerExtension func(mode *Mode, parent *Mode) error

// Self may appear in Contains to refer to the enclosing mode.
var Self = &Mode{}

// Relevance returns a pointer for Mode.Relevance.
func Relevance(n int) *int {
	return &n
}

type KeywordGroup struct {
	Scope string

	// Space-delimited; a word may carry a score as "word|N"
	Words string
}

type Keywords struct {
	// Tokenizing pattern for keyword lookup; defaults to \w+
	Pattern string

	Groups []KeywordGroup
}

// Words builds a keyword set in the default "keyword" scope.
func Words(words string) *Keywords {
	return &Keywords{
		Groups: []KeywordGroup{{Scope: "keyword", Words: words}},
	}
}

// Mode is one grammar rule. Definitions are never modified by compilation,
// so one value may be shared by several grammars.
type Mode struct {
	Scope string

	// Legacy alias for Scope
	ClassName string

	// Per capture group scope for MatchSeq/BeginSeq; sugar for BeginScopes
	ScopeGroups map[int]string

	Begin    string
	End      string
	Match    string
	BeginSeq []string
	EndSeq   []string
	MatchSeq []string

	BeginScope  string
	BeginScopes map[int]string
	EndScope    string
	EndScopes   map[int]string

	// Must precede Begin without being consumed
	BeforeMatch   string
	BeginKeywords string

	Illegal    string
	IllegalAny []string

	Keywords *Keywords

	Contains []*Mode
	Variants []*Mode
	Starts   *Mode

	EndsWithParent bool
	EndsParent     bool
	ExcludeBegin   bool
	ExcludeEnd     bool
	ReturnBegin    bool
	ReturnEnd      bool
	Skip           bool

	// nil means 1
	Relevance *int

	// One name: nested pass in that language, resumed across chunks.
	// With SubLanguageAuto: auto-detect among the names (all when empty).
	SubLanguage     []string
	SubLanguageAuto bool

	OnBegin Hook
	OnEnd   Hook

	beginMulti  *multiScope
	endMulti    *multiScope
	beforeBegin Hook
}

func (m *Mode) clone() *Mode {
	ret := *m
	return &ret
}

// Inherit returns a copy of base with every non-zero exported field of each
// override applied in order.
func Inherit(base *Mode, overrides ...*Mode) *Mode {
	ret := base.clone()

	dst := reflect.ValueOf(ret).Elem()
	typ := dst.Type()

	for _, override := range overrides {
		if override == nil {
			continue
		}

		src := reflect.ValueOf(override).Elem()

		for i := 0; i < typ.NumField(); i++ {
			if !typ.Field(i).IsExported() {
				continue
			}

			field := src.Field(i)
			if field.IsZero() {
				continue
			}

			dst.Field(i).Set(field)
		}
	}

	return ret
}

type Language struct {
	Mode

	Name              string
	Aliases           []string
	CaseInsensitive   bool
	UnicodeRegex      bool
	DisableAutodetect bool

	// Auto-detection ties go to the named base language
	SupersetOf string

	// Renames scopes before they reach the emitter
	ClassNameAliases map[string]string

	CompilerExtensions []CompilerExtension

	// Replaces the mode machinery with a hand-written tokenizer
	EmitTokens func(code string, emitter tokentree.Emitter) error
}

// Match is passed to hooks.
type Match struct {
	// Rune offset of the match in the text
	Index int

	// Groups[0] is the whole match, then the rule's capture groups
	Groups []string

	input []rune
}

func (m *Match) Text() string {
	return m.Groups[0]
}

// Preceding returns the character before the match, or 0 at the start.
func (m *Match) Preceding() rune {
	if m.Index <= 0 || m.Index > len(m.input) {
		return 0
	}

	return m.input[m.Index-1]
}

type Response struct {
	// Per-mode scratch space that lives for one highlight call
	Data map[string]any

	ignored bool
}

func (r *Response) IgnoreMatch() {
	r.ignored = true
}

func (r *Response) IsMatchIgnored() bool {
	return r.ignored
}
