package tokentree

// Emitter receives scope and text events from a highlight pass. Any
// implementation can replace the default TreeEmitter.
type Emitter interface {
	AddText(text string)
	StartScope(scope string)
	EndScope()

	// OpenSublanguageResult splices the output of a nested pass, tagged with
	// the nested language's name.
	OpenSublanguageResult(sub Emitter, language string)

	// Finalize closes anything left open.
	Finalize() bool
	ToOutput() string
}

// Rooted is implemented by emitters that expose their token tree.
type Rooted interface {
	Root() *Node
}

type Options struct {
	ClassPrefix string
}

// TreeEmitter is the default emitter: it builds a TokenTree and renders HTML.
type TreeEmitter struct {
	*TokenTree
	options Options
}

var _ Emitter = (*TreeEmitter)(nil)

func NewTreeEmitter(opts Options) *TreeEmitter {
	return &TreeEmitter{
		TokenTree: NewTokenTree(),
		options:   opts,
	}
}

func (e *TreeEmitter) AddText(text string) {
	if text == "" {
		return
	}

	e.AddTextNode(text)
}

func (e *TreeEmitter) StartScope(scope string) {
	e.OpenNode(scope)
}

func (e *TreeEmitter) EndScope() {
	e.CloseNode()
}

func (e *TreeEmitter) OpenSublanguageResult(sub Emitter, language string) {
	rooted, ok := sub.(Rooted)
	if !ok {
		// Foreign emitter: keep its text, lose its structure.
		e.AddText(sub.ToOutput())
		return
	}

	node := rooted.Root()
	if language != "" {
		node.Scope = "language:" + language
	}

	e.Add(node)
}

func (e *TreeEmitter) Finalize() bool {
	e.CloseAllNodes()
	return true
}

func (e *TreeEmitter) ToOutput() string {
	return RenderHTML(e.TokenTree, e.options.ClassPrefix)
}
