package languages

import (
	"github.com/gopatchy/hilite"
)

var (
	cppKeywords = "alignas alignof and and_eq asm bitand bitor catch class compl concept consteval constexpr constinit const_cast co_await co_return co_yield decltype delete dynamic_cast explicit export friend mutable namespace new noexcept not not_eq operator or or_eq override private protected public reinterpret_cast requires static_assert static_cast template this thread_local throw try typeid typename using virtual xor xor_eq final"
	cppTypes    = "bool wchar_t char8_t char16_t char32_t auto"
	cppLiterals = "nullptr"
	cppBuiltIns = "std string wstring vector map set unordered_map unordered_set array deque list queue stack pair tuple optional variant shared_ptr unique_ptr weak_ptr make_shared make_unique cout cerr cin endl move forward"
)

// CPP extends the C grammar with C++ keywords, templates and raw strings.
func CPP(*hilite.Highlighter) (*hilite.Language, error) {
	keywords := cKeywordSet(
		hilite.KeywordGroup{Scope: "keyword", Words: cppKeywords},
		hilite.KeywordGroup{Scope: "type", Words: cppTypes},
		hilite.KeywordGroup{Scope: "literal", Words: cppLiterals},
		hilite.KeywordGroup{Scope: "built_in", Words: cppBuiltIns},
	)

	rawString := hilite.EndSameAsBegin(&hilite.Mode{
		Scope: "string",
		Begin: `R"([^()\\ ]{0,16})\(`,
		End:   `\)([^()\\ ]{0,16})"`,
	})

	template := &hilite.Mode{
		Begin:     `\b(template|static_cast|dynamic_cast|const_cast|reinterpret_cast)\s*<`,
		End:       `>`,
		Keywords:  keywords,
		Relevance: hilite.Relevance(10),
		Contains:  []*hilite.Mode{hilite.Self},
	}

	class := &hilite.Mode{
		Scope:         "class",
		BeginKeywords: "enum class struct union namespace",
		End:           `[{;:<>=]`,
		Illegal:       `[^\w\s]`,
		Contains: []*hilite.Mode{
			{BeginKeywords: "final class struct"},
			hilite.UnderscoreTitleMode(),
		},
	}

	return &hilite.Language{
		Name:       "C++",
		Aliases:    []string{"cc", "c++", "h++", "hpp", "hh", "hxx", "cxx"},
		SupersetOf: "c",
		Mode: hilite.Mode{
			Keywords: keywords,
			Illegal:  `</`,
			Contains: []*hilite.Mode{
				hilite.CLineCommentMode(),
				hilite.CBlockCommentMode(),
				cPreprocessor(),
				rawString,
				cStrings(),
				cNumbers(),
				template,
				class,
				cFunctionDeclaration(keywords, template),
				{
					// std::name and friends
					Begin:     `\b[a-z\d_]*_t\b|::`,
					Relevance: hilite.Relevance(0),
				},
			},
		},
	}, nil
}
