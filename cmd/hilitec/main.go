package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopatchy/hilite"
	"github.com/gopatchy/hilite/languages"
	"github.com/gopatchy/hilite/pkg/tokentree"
	"github.com/jessevdk/go-flags"
)

type options struct {
	Language string `short:"l" long:"language" description:"language name or alias (auto-detect from file1 if not specified)"`
	Color    bool   `short:"c" long:"color" description:"colorize the diff by highlighting it as a diff"`

	Positional struct {
		File1 flags.Filename `positional-arg-name:"file1" required:"yes" description:"first file to compare"`
		File2 flags.Filename `positional-arg-name:"file2" required:"yes" description:"second file to compare"`
	} `positional-args:"yes"`
}

func main() {
	opts := &options{}

	fp := flags.NewParser(opts, flags.Default)
	fp.LongDescription = `hilitec highlights two source files and prints a unified diff of their markup.

Examples:
  hilitec old.c new.c
  hilitec -l cpp old.h new.h
  hilitec -c old.json new.json`

	_, err := fp.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	file1, err := filepath.Abs(string(opts.Positional.File1))
	if err != nil {
		fatal(err)
	}

	file2, err := filepath.Abs(string(opts.Positional.File2))
	if err != nil {
		fatal(err)
	}

	h, err := languages.Default()
	if err != nil {
		fatal(err)
	}

	result, err := h.Compare(os.DirFS("/"), file1, file2, opts.Language)
	if err != nil {
		fatal(err)
	}

	if !opts.Color || result.Diff == "" {
		fmt.Print(result.Diff)
		return
	}

	colored, err := colorize(h, result.Diff)
	if err != nil {
		fatal(err)
	}

	fmt.Print(colored)
}

var ansiByScope = map[string]string{
	"addition": "\033[32m",
	"deletion": "\033[31m",
	"meta":     "\033[36m",
	"comment":  "\033[1;36m",
}

const ansiReset = "\033[0m"

// ansiRenderer colors text by the innermost scope that has a color.
type ansiRenderer struct {
	b      strings.Builder
	colors []string
}

func (r *ansiRenderer) current() string {
	for i := len(r.colors) - 1; i >= 0; i-- {
		if r.colors[i] != "" {
			return r.colors[i]
		}
	}
	return ""
}

func (r *ansiRenderer) AddText(text string) {
	color := r.current()
	if color == "" {
		r.b.WriteString(text)
		return
	}

	r.b.WriteString(color)
	r.b.WriteString(text)
	r.b.WriteString(ansiReset)
}

func (r *ansiRenderer) OpenNode(node *tokentree.Node) {
	r.colors = append(r.colors, ansiByScope[node.Scope])
}

func (r *ansiRenderer) CloseNode(*tokentree.Node) {
	r.colors = r.colors[:len(r.colors)-1]
}

func colorize(h *hilite.Highlighter, diff string) (string, error) {
	result, err := h.Highlight(diff, "diff", true)
	if err != nil {
		return "", err
	}

	tree, ok := result.Emitter.(interface{ Walk(tokentree.Renderer) })
	if !ok {
		return diff, nil
	}

	r := &ansiRenderer{}
	tree.Walk(r)

	return r.b.String(), nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
