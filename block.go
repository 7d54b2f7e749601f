package hilite

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gopatchy/hilite/internal/regex"
	"github.com/gopatchy/hilite/pkg/log"
)

// BlockText returns the text content of a code block given its inner HTML.
// Child elements in the block mean its source was not escaped; that is
// logged unless IgnoreUnescapedHTML is set, and returned as an
// *HTMLInjectionError if ThrowUnescapedHTML is set.
func (h *Highlighter) BlockText(innerHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<pre><code>" + innerHTML + "</code></pre>"))
	if err != nil {
		return "", err
	}

	code := doc.Find("pre > code").First()

	if code.Children().Length() > 0 {
		opts := h.Options()

		if !opts.IgnoreUnescapedHTML {
			log.Warnf("One of your code blocks includes unescaped HTML. This is a potentially serious security risk.")
			log.Warnf("%s", innerHTML)
		}

		if opts.ThrowUnescapedHTML {
			return "", &HTMLInjectionError{HTML: innerHTML}
		}
	}

	return code.Text(), nil
}

// ShouldNotHighlight reports whether a block class opts out of highlighting.
func (h *Highlighter) ShouldNotHighlight(class string) bool {
	re, err := regex.Compile(h.Options().NoHighlightRe, regex.Flags{CaseInsensitive: true})
	if err != nil {
		return false
	}

	matched, _ := re.MatchString(class)

	return matched
}

// BlockLanguage picks the language for a code block from its classes (the
// block's own followed by its parent's). A "language-x" or "lang-x" class
// wins; otherwise the first class naming a registered language or a
// no-highlight marker. An unknown explicit language yields "no-highlight".
func (h *Highlighter) BlockLanguage(classes string) string {
	re, err := regex.Compile(h.Options().LanguageDetectRe, regex.Flags{CaseInsensitive: true})
	if err == nil {
		m, _ := re.FindStringMatch(classes)
		if m != nil {
			name := m.GroupByNumber(1).String()

			if h.GetLanguage(name) == nil {
				log.Warnf("Could not find the language '%s', did you forget to load/include a language module?", name)
				log.Warnf("Falling back to no-highlight mode for this block.")

				return "no-highlight"
			}

			return name
		}
	}

	for _, class := range strings.Fields(classes) {
		if h.ShouldNotHighlight(class) || h.GetLanguage(class) != nil {
			return class
		}
	}

	return ""
}

// HighlightBlock highlights a code block the way a page would: the language
// comes from its classes, falling back to auto-detection. It returns nil
// for blocks marked no-highlight.
func (h *Highlighter) HighlightBlock(innerHTML, classes string) (*Result, error) {
	language := h.BlockLanguage(classes)

	if h.ShouldNotHighlight(language) {
		return nil, nil
	}

	text, err := h.BlockText(innerHTML)
	if err != nil {
		return nil, err
	}

	if language != "" {
		return h.Highlight(text, language, true)
	}

	return h.HighlightAuto(text)
}
