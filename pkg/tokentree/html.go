package tokentree

import (
	"fmt"
	"strings"
)

const (
	DefaultClassPrefix = "hljs-"

	spanClose = "</span>"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// Escape replaces the five HTML-significant characters with entities.
func Escape(s string) string {
	return htmlEscaper.Replace(s)
}

// ScopeToClass maps a scope to its CSS class list:
//
//	string          -> hljs-string
//	title.class.inherited -> hljs-title class_ inherited__
//	language:css    -> language-css
func ScopeToClass(scope, prefix string) string {
	if rest, found := strings.CutPrefix(scope, "language:"); found {
		return "language-" + rest
	}

	if strings.Contains(scope, ".") {
		pieces := strings.Split(scope, ".")
		classes := []string{prefix + pieces[0]}

		for i, piece := range pieces[1:] {
			classes = append(classes, piece+strings.Repeat("_", i+1))
		}

		return strings.Join(classes, " ")
	}

	return prefix + scope
}

type HTMLRenderer struct {
	buf         strings.Builder
	classPrefix string
}

// RenderHTML walks tree and returns the escaped markup.
func RenderHTML(tree *TokenTree, classPrefix string) string {
	r := &HTMLRenderer{
		classPrefix: classPrefix,
	}
	tree.Walk(r)

	return r.Value()
}

func (r *HTMLRenderer) AddText(text string) {
	r.buf.WriteString(Escape(text))
}

func (r *HTMLRenderer) OpenNode(node *Node) {
	if node.Scope == "" {
		return
	}

	fmt.Fprintf(&r.buf, `<span class="%s">`, ScopeToClass(node.Scope, r.classPrefix))
}

func (r *HTMLRenderer) CloseNode(node *Node) {
	if node.Scope == "" {
		return
	}

	r.buf.WriteString(spanClose)
}

func (r *HTMLRenderer) Value() string {
	return r.buf.String()
}
