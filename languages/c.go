package languages

import (
	"github.com/gopatchy/hilite"
)

const (
	cIdentRE         = `[a-zA-Z_]\w*`
	cFunctionTitleRE = cIdentRE + `\s*\(`
)

var (
	cKeywords = "break case const continue default do else enum extern for goto if inline register restrict return sizeof static struct switch typedef union volatile while _Alignas _Alignof _Atomic _Generic _Noreturn _Static_assert _Thread_local"
	cTypes    = "char double float int long short signed unsigned void _Bool _Complex size_t ssize_t int8_t int16_t int32_t int64_t uint8_t uint16_t uint32_t uint64_t"
	cLiterals = "true false NULL"
	cBuiltIns = "printf fprintf sprintf snprintf scanf malloc calloc realloc free memcpy memset strlen strcmp strcpy exit abort assert"
)

func cKeywordSet(extra ...hilite.KeywordGroup) *hilite.Keywords {
	return &hilite.Keywords{
		Groups: append([]hilite.KeywordGroup{
			{Scope: "keyword", Words: cKeywords},
			{Scope: "type", Words: cTypes},
			{Scope: "literal", Words: cLiterals},
			{Scope: "built_in", Words: cBuiltIns},
		}, extra...),
	}
}

func cStrings() *hilite.Mode {
	return &hilite.Mode{
		Scope: "string",
		Variants: []*hilite.Mode{
			{
				Begin:    `(u8?|U|L)?"`,
				End:      `"`,
				Illegal:  `\n`,
				Contains: []*hilite.Mode{hilite.BackslashEscape()},
			},
			{
				Begin:   `(u8?|U|L)?'(\\(x[0-9A-Fa-f]{2}|u[0-9A-Fa-f]{4,8}|[0-7]{3}|\S)|.)`,
				End:     `'`,
				Illegal: `.`,
			},
		},
	}
}

func cNumbers() *hilite.Mode {
	return &hilite.Mode{
		Scope: "number",
		Variants: []*hilite.Mode{
			{Begin: `\b(0b[01']+)`},
			{Begin: `(-?)\b([\d']+(\.[\d']*)?|\.[\d']+)((ll|LL|l|L)(u|U)?|(u|U)(ll|LL|l|L)?|f|F|b|B)`},
			{Begin: `(-?)(\b0[xX][a-fA-F0-9']+|(\b[\d']+(\.[\d']*)?|\.[\d']+)([eE][-+]?[\d']+)?)`},
		},
		Relevance: hilite.Relevance(0),
	}
}

func cPreprocessor() *hilite.Mode {
	return &hilite.Mode{
		Scope: "meta",
		Begin: `#\s*[a-z]+\b`,
		End:   `$`,
		Keywords: &hilite.Keywords{
			Groups: []hilite.KeywordGroup{{
				Scope: "keyword",
				Words: "if else elif endif define undef warning error line pragma _Pragma ifdef ifndef include",
			}},
		},
		Contains: []*hilite.Mode{
			{
				Begin:     `\\\n`,
				Relevance: hilite.Relevance(0),
			},
			cStrings(),
			{
				Scope:   "string",
				Begin:   `<.*?>`,
				Illegal: `\n`,
			},
			hilite.CLineCommentMode(),
			hilite.CBlockCommentMode(),
		},
	}
}

func cFunctionDeclaration(keywords *hilite.Keywords, extra ...*hilite.Mode) *hilite.Mode {
	params := &hilite.Mode{
		Scope:     "params",
		Begin:     `\(`,
		End:       `\)`,
		Keywords:  keywords,
		Relevance: hilite.Relevance(0),
		Contains: []*hilite.Mode{
			hilite.CLineCommentMode(),
			hilite.CBlockCommentMode(),
			cStrings(),
			cNumbers(),
		},
	}

	contains := []*hilite.Mode{
		{
			Begin:       cFunctionTitleRE,
			ReturnBegin: true,
			Contains: []*hilite.Mode{
				hilite.Inherit(hilite.UnderscoreTitleMode(), &hilite.Mode{Scope: "title.function"}),
			},
			Relevance: hilite.Relevance(0),
		},
		params,
		hilite.CLineCommentMode(),
		hilite.CBlockCommentMode(),
	}

	return &hilite.Mode{
		Begin:       `(` + cIdentRE + `[\*&\s]+)+` + cFunctionTitleRE,
		ReturnBegin: true,
		End:         `[{;=]`,
		ExcludeEnd:  true,
		Keywords:    keywords,
		Illegal:     `[^\w\s\*&:<>.]`,
		Contains:    append(contains, extra...),
	}
}

// C is a compact C grammar.
func C(*hilite.Highlighter) (*hilite.Language, error) {
	keywords := cKeywordSet()

	return &hilite.Language{
		Name:    "C",
		Aliases: []string{"h"},
		Mode: hilite.Mode{
			Keywords: keywords,
			Illegal:  `</`,
			Contains: []*hilite.Mode{
				hilite.CLineCommentMode(),
				hilite.CBlockCommentMode(),
				cPreprocessor(),
				cStrings(),
				cNumbers(),
				cFunctionDeclaration(keywords),
			},
		},
	}, nil
}
