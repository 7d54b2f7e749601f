package hilite

import (
	"fmt"
	"io/fs"

	"github.com/gopatchy/hilite/internal/format"
	"github.com/gopatchy/hilite/internal/fsys"
	"github.com/gopatchy/hilite/internal/keywords"
	"github.com/gopatchy/hilite/internal/utils"
	"github.com/gopatchy/hilite/pkg/tokentree"
)

const (
	DefaultMaxKeywordHits   = 7
	DefaultNoHighlightRe    = `^(no-?highlight)$`
	DefaultLanguageDetectRe = `\blang(?:uage)?-([\w-]+)\b`
)

// Options configure a Highlighter. Zero values take the defaults.
type Options struct {
	// Prepended to every scope class; defaults to "hljs-"
	ClassPrefix string `json:"classPrefix,omitempty" yaml:"classPrefix,omitempty" toml:"classPrefix,omitempty"`

	// Default auto-detection candidates
	Languages []string `json:"languages,omitempty" yaml:"languages,omitempty" toml:"languages,omitempty"`

	IgnoreUnescapedHTML bool `json:"ignoreUnescapedHTML,omitempty" yaml:"ignoreUnescapedHTML,omitempty" toml:"ignoreUnescapedHTML,omitempty"`
	ThrowUnescapedHTML  bool `json:"throwUnescapedHTML,omitempty" yaml:"throwUnescapedHTML,omitempty" toml:"throwUnescapedHTML,omitempty"`

	// Hits of one keyword beyond this stop adding relevance
	MaxKeywordHits int `json:"maxKeywordHits,omitempty" yaml:"maxKeywordHits,omitempty" toml:"maxKeywordHits,omitempty"`

	// Words that score 0 unless given an explicit score
	CommonKeywords []string `json:"commonKeywords,omitempty" yaml:"commonKeywords,omitempty" toml:"commonKeywords,omitempty"`

	// Code block class patterns
	NoHighlightRe    string `json:"noHighlightRe,omitempty" yaml:"noHighlightRe,omitempty" toml:"noHighlightRe,omitempty"`
	LanguageDetectRe string `json:"languageDetectRe,omitempty" yaml:"languageDetectRe,omitempty" toml:"languageDetectRe,omitempty"`

	// Builds the emitter for each pass; defaults to a token tree
	NewEmitter func(tokentree.Options) tokentree.Emitter `json:"-" yaml:"-" toml:"-"`
}

func (o Options) withDefaults() Options {
	if o.ClassPrefix == "" {
		o.ClassPrefix = tokentree.DefaultClassPrefix
	}

	if o.MaxKeywordHits == 0 {
		o.MaxKeywordHits = DefaultMaxKeywordHits
	}

	if o.CommonKeywords == nil {
		o.CommonKeywords = keywords.Common
	}

	if o.NoHighlightRe == "" {
		o.NoHighlightRe = DefaultNoHighlightRe
	}

	if o.LanguageDetectRe == "" {
		o.LanguageDetectRe = DefaultLanguageDetectRe
	}

	if o.NewEmitter == nil {
		o.NewEmitter = func(opts tokentree.Options) tokentree.Emitter {
			return tokentree.NewTreeEmitter(opts)
		}
	}

	return o
}

func (o Options) newEmitter() tokentree.Emitter {
	return o.NewEmitter(tokentree.Options{ClassPrefix: o.ClassPrefix})
}

// LoadOptions reads options from a json, yaml, toml or properties file.
func LoadOptions(fx fs.FS, path string) (*Options, error) {
	data, err := fsys.New(fx).ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %v (%w)", path, err, ErrMissingFile)
	}

	return ParseOptions(utils.Ext(path), data)
}

// ParseOptions decodes options in the named format.
func ParseOptions(formatName string, data []byte) (*Options, error) {
	doc, err := format.DecodeOne(formatName, data)
	if err != nil {
		return nil, err
	}

	m, err := utils.ToMap(doc)
	if err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}

	opts := &Options{}

	for k, v := range utils.SortedMap(m) {
		err = opts.set(k, v)
		if err != nil {
			return nil, fmt.Errorf("options %s: %w", k, err)
		}
	}

	return opts, nil
}

func (o *Options) set(key string, v any) error {
	var err error

	switch key {
	case "classPrefix":
		o.ClassPrefix, err = utils.ToString(v)

	case "languages":
		o.Languages, err = utils.ToStringList(v)

	case "ignoreUnescapedHTML":
		o.IgnoreUnescapedHTML, err = utils.ToBool(v)

	case "throwUnescapedHTML":
		o.ThrowUnescapedHTML, err = utils.ToBool(v)

	case "maxKeywordHits":
		o.MaxKeywordHits, err = utils.ToInt(v)

	case "commonKeywords":
		o.CommonKeywords, err = utils.ToStringList(v)

	case "noHighlightRe":
		o.NoHighlightRe, err = utils.ToString(v)

	case "languageDetectRe":
		o.LanguageDetectRe, err = utils.ToString(v)

	default:
		return ErrInvalidOption
	}

	return err
}
