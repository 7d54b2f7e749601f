package hilite

import (
	"slices"

	"github.com/gopatchy/hilite/internal/regex"
)

// Patterns shared by many grammars.
const (
	MatchNothingRE      = `\b\B`
	IdentRE             = `[a-zA-Z]\w*`
	UnderscoreIdentRE   = `[a-zA-Z_]\w*`
	NumberRE            = `\b\d+(\.\d+)?`
	CNumberRE           = `(-?)(\b0[xX][a-fA-F0-9]+|(\b\d+(\.\d*)?|\.\d+)([eE][-+]?\d+)?)`
	BinaryNumberRE      = `\b(0b[01]+)`
	REStartersRE        = `!|!=|!==|%|%=|&|&&|&=|\*|\*=|\+|\+=|,|-|-=|/=|/|:|;|<<|<<=|<=|<|===|==|=|>>>=|>>=|>=|>>>|>>|>|\?|\[|\{|\(|\^|\^=|\||\|=|\|\||~`
	commentDoctagWordRE = `(TODO|FIXME|NOTE|BUG|OPTIMIZE|HACK|XXX):`
)

// The constructors below return a new value on every call, so a grammar
// may modify what it gets without affecting any other grammar.

func BackslashEscape() *Mode {
	return &Mode{
		Begin:     `\\[\s\S]`,
		Relevance: Relevance(0),
	}
}

func AposStringMode() *Mode {
	return &Mode{
		Scope:    "string",
		Begin:    `'`,
		End:      `'`,
		Illegal:  `\n`,
		Contains: []*Mode{BackslashEscape()},
	}
}

func QuoteStringMode() *Mode {
	return &Mode{
		Scope:    "string",
		Begin:    `"`,
		End:      `"`,
		Illegal:  `\n`,
		Contains: []*Mode{BackslashEscape()},
	}
}

// PhrasalWordsMode skips common English phrases so their words are not
// taken for keywords.
func PhrasalWordsMode() *Mode {
	return &Mode{
		Begin: `\b(a|an|the|are|I'm|isn't|don't|doesn't|won't|but|just|should|pretty|simply|enough|gonna|going|wtf|so|such|will|you|your|they|like|more)\b`,
	}
}

// Comment builds a comment mode. It recognizes doctags such as TODO: and
// runs of English words, which make comment-heavy text score as prose.
func Comment(begin, end string, overrides ...*Mode) *Mode {
	mode := Inherit(&Mode{
		Scope:    "comment",
		Begin:    begin,
		End:      end,
		Contains: []*Mode{},
	}, overrides...)

	englishWord := regex.Either(
		"I", "a", "is", "so", "us", "to", "at", "if", "in", "it", "on",
		`[A-Za-z]+['](d|ve|re|ll|t|s|n)`,
		`[A-Za-z]+[-][a-z]+`,
		`[A-Za-z][a-z]{2,}`,
	)

	mode.Contains = append(slices.Clone(mode.Contains),
		&Mode{
			Scope:        "doctag",
			Begin:        `[ ]*(?=` + commentDoctagWordRE + `)`,
			End:          commentDoctagWordRE,
			ExcludeBegin: true,
			Relevance:    Relevance(0),
		},
		&Mode{
			Begin: regex.Concat(`[ ]+`, "(", englishWord, `[.]?[:]?([.][ ]|[ ])`, "){3}"),
		},
	)

	return mode
}

func CLineCommentMode() *Mode {
	return Comment(`//`, `$`)
}

func CBlockCommentMode() *Mode {
	return Comment(`/\*`, `\*/`)
}

func HashCommentMode() *Mode {
	return Comment(`#`, `$`)
}

func NumberMode() *Mode {
	return &Mode{
		Scope:     "number",
		Begin:     NumberRE,
		Relevance: Relevance(0),
	}
}

func CNumberMode() *Mode {
	return &Mode{
		Scope:     "number",
		Begin:     CNumberRE,
		Relevance: Relevance(0),
	}
}

func BinaryNumberMode() *Mode {
	return &Mode{
		Scope:     "number",
		Begin:     BinaryNumberRE,
		Relevance: Relevance(0),
	}
}

func RegexpMode() *Mode {
	return &Mode{
		Scope: "regexp",
		Begin: `\/(?=[^/\n]*\/)`,
		End:   `\/[gimuy]*`,
		Contains: []*Mode{
			BackslashEscape(),
			{
				Begin:     `\[`,
				End:       `\]`,
				Relevance: Relevance(0),
				Contains:  []*Mode{BackslashEscape()},
			},
		},
	}
}

func TitleMode() *Mode {
	return &Mode{
		Scope:     "title",
		Begin:     IdentRE,
		Relevance: Relevance(0),
	}
}

func UnderscoreTitleMode() *Mode {
	return &Mode{
		Scope:     "title",
		Begin:     UnderscoreIdentRE,
		Relevance: Relevance(0),
	}
}

// MethodGuard consumes ".name" so that method names are not taken for
// keywords.
func MethodGuard() *Mode {
	return &Mode{
		Begin:     `\.\s*` + UnderscoreIdentRE,
		Relevance: Relevance(0),
	}
}

// Shebang matches "#!/path" on the first line only. A non-empty binary
// restricts it to that interpreter.
func Shebang(binary string, overrides ...*Mode) *Mode {
	begin := `^#![ ]*\/`
	if binary != "" {
		begin = regex.Concat(begin, `.*\b`, binary, `\b.*`)
	}

	return Inherit(&Mode{
		Scope:     "meta",
		Begin:     begin,
		End:       `$`,
		Relevance: Relevance(0),
		OnBegin:   shebangOnBegin,
	}, overrides...)
}

func shebangOnBegin(m *Match, resp *Response) {
	if m.Index != 0 {
		resp.IgnoreMatch()
	}
}

// EndSameAsBegin makes mode end only on the same text its begin pattern
// captured in group 1, as for heredocs.
func EndSameAsBegin(mode *Mode) *Mode {
	return Inherit(mode, &Mode{
		OnBegin: endSameAsBeginOnBegin,
		OnEnd:   endSameAsBeginOnEnd,
	})
}

const beginMatchKey = "_beginMatch"

func endSameAsBeginOnBegin(m *Match, resp *Response) {
	if len(m.Groups) > 1 {
		resp.Data[beginMatchKey] = m.Groups[1]
	}
}

func endSameAsBeginOnEnd(m *Match, resp *Response) {
	if len(m.Groups) < 2 || resp.Data[beginMatchKey] != m.Groups[1] {
		resp.IgnoreMatch()
	}
}

// commonModes are the shared modes a grammar file may reference by name.
var commonModes = map[string]func() *Mode{
	"BACKSLASH_ESCAPE":      BackslashEscape,
	"APOS_STRING_MODE":      AposStringMode,
	"QUOTE_STRING_MODE":     QuoteStringMode,
	"PHRASAL_WORDS_MODE":    PhrasalWordsMode,
	"C_LINE_COMMENT_MODE":   CLineCommentMode,
	"C_BLOCK_COMMENT_MODE":  CBlockCommentMode,
	"HASH_COMMENT_MODE":     HashCommentMode,
	"NUMBER_MODE":           NumberMode,
	"C_NUMBER_MODE":         CNumberMode,
	"BINARY_NUMBER_MODE":    BinaryNumberMode,
	"REGEXP_MODE":           RegexpMode,
	"TITLE_MODE":            TitleMode,
	"UNDERSCORE_TITLE_MODE": UnderscoreTitleMode,
	"METHOD_GUARD":          MethodGuard,
	"SHEBANG":               func() *Mode { return Shebang("") },
}
