// Package tokentree holds the scope-annotated token tree built during a
// highlight pass, the emitter contract that builds it and the HTML renderer
// that consumes it.
package tokentree

import "strings"

// Node is either a text leaf (Children == nil) or an interior node with an
// optional scope. The root has no scope.
type Node struct {
	Scope    string
	Text     string
	Children []*Node
}

func newNode(scope string) *Node {
	return &Node{
		Scope:    scope,
		Children: []*Node{},
	}
}

func (n *Node) IsText() bool {
	return n.Children == nil
}

// Value converts the subtree into plain maps, lists and strings for the
// generic format encoders.
func (n *Node) Value() any {
	if n.IsText() {
		return n.Text
	}

	children := make([]any, 0, len(n.Children))
	for _, child := range n.Children {
		children = append(children, child.Value())
	}

	ret := map[string]any{
		"children": children,
	}
	if n.Scope != "" {
		ret["scope"] = n.Scope
	}

	return ret
}

// Renderer receives a depth-first walk of the tree.
type Renderer interface {
	AddText(text string)
	OpenNode(node *Node)
	CloseNode(node *Node)
}

type TokenTree struct {
	root  *Node
	stack []*Node
}

func NewTokenTree() *TokenTree {
	root := newNode("")

	return &TokenTree{
		root:  root,
		stack: []*Node{root},
	}
}

func (t *TokenTree) Root() *Node {
	return t.root
}

func (t *TokenTree) top() *Node {
	return t.stack[len(t.stack)-1]
}

func (t *TokenTree) Add(node *Node) {
	top := t.top()
	top.Children = append(top.Children, node)
}

func (t *TokenTree) AddTextNode(text string) {
	t.Add(&Node{Text: text})
}

func (t *TokenTree) OpenNode(scope string) {
	node := newNode(scope)
	t.Add(node)
	t.stack = append(t.stack, node)
}

// CloseNode pops the innermost open node. The root is never popped.
func (t *TokenTree) CloseNode() *Node {
	if len(t.stack) <= 1 {
		return nil
	}

	node := t.top()
	t.stack = t.stack[:len(t.stack)-1]

	return node
}

func (t *TokenTree) CloseAllNodes() {
	for t.CloseNode() != nil {
	}
}

// Depth is the number of open nodes below the root.
func (t *TokenTree) Depth() int {
	return len(t.stack) - 1
}

func (t *TokenTree) Walk(r Renderer) {
	walk(r, t.root)
}

func walk(r Renderer, node *Node) {
	if node.IsText() {
		r.AddText(node.Text)
		return
	}

	r.OpenNode(node)
	for _, child := range node.Children {
		walk(r, child)
	}
	r.CloseNode(node)
}

// Collapse merges runs of text leaves: a node whose children are all text
// ends up with a single text child.
func Collapse(node *Node) {
	if node.IsText() {
		return
	}

	allText := true
	for _, child := range node.Children {
		if !child.IsText() {
			allText = false
			break
		}
	}

	if !allText {
		for _, child := range node.Children {
			Collapse(child)
		}
		return
	}

	if len(node.Children) == 0 {
		return
	}

	var sb strings.Builder
	for _, child := range node.Children {
		sb.WriteString(child.Text)
	}

	node.Children = []*Node{{Text: sb.String()}}
}
