package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"

	"github.com/gopatchy/hilite"
	"github.com/gopatchy/hilite/internal/format"
	"github.com/gopatchy/hilite/internal/utils"
	"github.com/gopatchy/hilite/languages"
	"github.com/gopatchy/hilite/pkg/log"
	"github.com/gopatchy/hilite/pkg/tokentree"
	"github.com/gopatchy/hilite/pkg/version"
	"github.com/jessevdk/go-flags"
)

type options struct {
	Language       string           `short:"l" long:"language" description:"language name or alias (auto-detect if not specified)"`
	Subset         []string         `short:"s" long:"subset" description:"restrict auto-detection to these languages (repeatable or comma-separated)"`
	Grammars       []flags.Filename `short:"g" long:"grammar" description:"register an extra grammar file (json, toml or yaml)"`
	ConfigPath     *flags.Filename  `long:"config" description:"options file (json, toml, yaml or properties)"`
	ClassPrefix    *string          `long:"class-prefix" description:"CSS class prefix (default hljs-)"`
	IgnoreIllegals bool             `short:"i" long:"ignore-illegals" description:"treat illegal lexemes as content instead of aborting"`
	Strict         bool             `long:"strict" description:"return parse errors instead of falling back to escaped text"`
	List           bool             `long:"list" description:"list registered languages and exit"`
	Tree           *string          `short:"t" long:"tree" description:"print the token tree instead of HTML" choice:"json" choice:"json-pretty" choice:"toml" choice:"yaml"`
	OutputPath     *flags.Filename  `short:"o" long:"output" description:"output file path"`
	Verbose        bool             `short:"v" long:"verbose" description:"enable verbose logging"`
	Version        bool             `short:"V" long:"version" description:"print version and exit"`

	CPUProfile *string `short:"c" long:"cpu-profile" description:"write CPU profile to file"`

	Positional struct {
		InputPath *flags.Filename `positional-arg-name:"inputPath" description:"source file path (stdin if omitted or -)"`
	} `positional-args:"yes"`
}

func main() {
	opts := &options{}

	fp := flags.NewParser(opts, flags.Default)
	fp.LongDescription = `
hilite highlights source code as HTML using declarative language grammars.

Examples:
  hilite -l c main.c
  hilite --subset c,cpp main.h
  hilite -g mylang.yaml -l mylang input.txt
  hilite -t yaml -l json config.json

Related tools:
* hilitec
* hilite-mcp`

	_, err := fp.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.CPUProfile != nil {
		fh, err := os.Create(*opts.CPUProfile)
		if err != nil {
			fatal(err)
		}

		pprof.StartCPUProfile(fh)
		defer pprof.StopCPUProfile()
	}

	version.PrintVersion(opts.Version)

	if opts.Verbose {
		log.Debug = true
	}

	h, err := newHighlighter(opts)
	if err != nil {
		fatal(err)
	}

	if opts.List {
		for _, name := range h.ListLanguages() {
			fmt.Printf("%s\t%s\n", name, h.GetLanguage(name).Name)
		}

		return
	}

	code, err := readInput(opts.Positional.InputPath)
	if err != nil {
		fatal(err)
	}

	result, err := highlight(h, opts, string(code))
	if err != nil {
		fatal(err)
	}

	log.Debugf("language=%s relevance=%d illegal=%v", result.Language, result.Relevance, result.Illegal)

	output, err := render(result, opts.Tree)
	if err != nil {
		fatal(err)
	}

	if opts.OutputPath == nil {
		_, err = os.Stdout.Write(output)
	} else {
		err = os.WriteFile(string(*opts.OutputPath), output, 0o644)
	}

	if err != nil {
		fatal(err)
	}
}

func newHighlighter(opts *options) (*hilite.Highlighter, error) {
	h, err := languages.Default()
	if err != nil {
		return nil, err
	}

	h.SetSafeMode(!opts.Strict)

	root := os.DirFS("/")

	if opts.ConfigPath != nil {
		path, err := filepath.Abs(string(*opts.ConfigPath))
		if err != nil {
			return nil, err
		}

		cfg, err := hilite.LoadOptions(root, path)
		if err != nil {
			return nil, err
		}

		h.Configure(*cfg)
	}

	if opts.ClassPrefix != nil {
		cfg := h.Options()
		cfg.ClassPrefix = *opts.ClassPrefix
		h.Configure(cfg)
	}

	for _, grammar := range opts.Grammars {
		path, err := filepath.Abs(string(grammar))
		if err != nil {
			return nil, err
		}

		name, err := h.RegisterLanguageFile(root, path)
		if err != nil {
			return nil, err
		}

		log.Debugf("[%s] registered from %s", name, path)
	}

	return h, nil
}

func readInput(path *flags.Filename) ([]byte, error) {
	if path == nil || utils.IsStdin(string(*path)) {
		return io.ReadAll(os.Stdin)
	}

	return os.ReadFile(string(*path))
}

func highlight(h *hilite.Highlighter, opts *options, code string) (*hilite.Result, error) {
	if opts.Language != "" {
		return h.Highlight(code, opts.Language, opts.IgnoreIllegals)
	}

	subset := []string{}
	for _, s := range opts.Subset {
		for _, name := range strings.Split(s, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				subset = append(subset, name)
			}
		}
	}

	return h.HighlightAuto(code, subset...)
}

func render(result *hilite.Result, tree *string) ([]byte, error) {
	if tree == nil {
		return []byte(result.Value), nil
	}

	rooted, ok := result.Emitter.(tokentree.Rooted)
	if !ok {
		return nil, fmt.Errorf("emitter %T has no token tree", result.Emitter)
	}

	return format.EncodeOne(*tree, rooted.Root().Value())
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
