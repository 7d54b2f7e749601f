package hilite

import (
	_ "embed"
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

//go:embed tests.toml
var testsData []byte

type TestCase struct {
	Description    string   `toml:"description"`
	Language       string   `toml:"language,omitempty"`
	Auto           bool     `toml:"auto,omitempty"`
	Candidates     []string `toml:"candidates,omitempty"`
	Grammar        string   `toml:"grammar,omitempty"`
	GrammarFormat  string   `toml:"grammarFormat,omitempty"`
	Code           string   `toml:"code"`
	Expected       string   `toml:"expected"`
	Relevance      *int     `toml:"relevance,omitempty"`
	Illegal        bool     `toml:"illegal,omitempty"`
	IgnoreIllegals *bool    `toml:"ignoreIllegals,omitempty"`
	Detected       string   `toml:"detected,omitempty"`
	Error          string   `toml:"error,omitempty"`
	Benchmark      bool     `toml:"benchmark,omitempty"`
}

func GetTests() (map[string]*TestCase, error) {
	var tests map[string]*TestCase
	if err := toml.Unmarshal(testsData, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

// Run registers the case's inline grammar, if any, under Language and
// highlights Code with h.
func (tc *TestCase) Run(h *Highlighter) (*Result, error) {
	if tc.Grammar != "" {
		grammarFormat := tc.GrammarFormat
		if grammarFormat == "" {
			grammarFormat = "yaml"
		}

		lang, err := ParseLanguage(grammarFormat, []byte(tc.Grammar))
		if err != nil {
			return nil, fmt.Errorf("grammar: %w", err)
		}

		err = h.RegisterLanguage(tc.Language, func(*Highlighter) (*Language, error) {
			return lang, nil
		})
		if err != nil {
			return nil, err
		}
	}

	if tc.Auto {
		return h.HighlightAuto(tc.Code, tc.Candidates...)
	}

	ignoreIllegals := true
	if tc.IgnoreIllegals != nil {
		ignoreIllegals = *tc.IgnoreIllegals
	}

	return h.Highlight(tc.Code, tc.Language, ignoreIllegals)
}
