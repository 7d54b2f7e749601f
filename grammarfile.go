package hilite

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/gopatchy/hilite/internal/format"
	"github.com/gopatchy/hilite/internal/fsys"
	"github.com/gopatchy/hilite/internal/keywords"
	"github.com/gopatchy/hilite/internal/utils"
	"github.com/gopatchy/hilite/pkg/log"
)

const (
	refKey   = "$ref"
	selfName = "self"
)

// LoadLanguage reads a json, yaml or toml grammar file. The language name
// defaults to the file name without its extension. A path without a known
// extension is tried with each format's extension in turn.
func LoadLanguage(fx fs.FS, path string) (*Language, error) {
	fileSystem := fsys.New(fx)

	if _, err := format.Get(utils.Ext(path)); err != nil {
		if found := fileSystem.FindFile(path); found != "" {
			path = found
		}
	}

	data, err := fileSystem.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %v (%w)", path, err, ErrMissingFile)
	}

	lang, err := ParseLanguage(utils.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if lang.Name == "" {
		lang.Name = utils.Stem(path)
	}

	return lang, nil
}

// ParseLanguage decodes a grammar document in the named format.
//
// Keys mirror the Mode and Language fields in camelCase. Contains entries
// may be "self" or {"$ref": NAME}, where NAME is an entry of the top-level
// "modes" map or a common mode such as QUOTE_STRING_MODE.
func ParseLanguage(formatName string, data []byte) (*Language, error) {
	doc, err := format.DecodeOne(formatName, data)
	if err != nil {
		return nil, err
	}

	m, err := utils.ToMap(doc)
	if err != nil {
		return nil, fmt.Errorf("grammar: %v (%w)", err, ErrInvalidGrammar)
	}

	d := &grammarDecoder{
		modes: map[string]any{},
		refs:  map[string]*Mode{},
	}

	found, modes, m := utils.PopMapValue(m, "modes")
	if found {
		d.modes, err = utils.ToMap(modes)
		if err != nil {
			return nil, fmt.Errorf("modes: %v (%w)", err, ErrInvalidGrammar)
		}
	}

	lang := &Language{}

	for k, v := range utils.SortedMap(m) {
		err = d.setLanguageField(lang, k, v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
	}

	return lang, nil
}

// RegisterLanguageFile loads a grammar file and registers it under its
// language name.
func (h *Highlighter) RegisterLanguageFile(fx fs.FS, path string) (string, error) {
	lang, err := LoadLanguage(fx, path)
	if err != nil {
		return "", err
	}

	name := strings.ToLower(lang.Name)

	err = h.RegisterLanguage(name, func(*Highlighter) (*Language, error) {
		return lang, nil
	})
	if err != nil {
		return "", err
	}

	return name, nil
}

// RegisterLanguageDir registers every grammar file directly inside dir and
// returns the registered names.
func (h *Highlighter) RegisterLanguageDir(fx fs.FS, dir string) ([]string, error) {
	paths, err := fsys.New(fx).GlobFiles(strings.TrimSuffix(dir, "/") + "/*")
	if err != nil {
		return nil, err
	}

	names := []string{}

	for _, path := range paths {
		name, err := h.RegisterLanguageFile(fx, path)
		if err != nil {
			return nil, err
		}

		log.Debugf("[%s] loaded from %s", name, path)

		names = append(names, name)
	}

	return names, nil
}

type grammarDecoder struct {
	modes map[string]any
	refs  map[string]*Mode
}

func invalid(format string, v ...any) error {
	return fmt.Errorf("%s (%w)", fmt.Sprintf(format, v...), ErrInvalidGrammar)
}

func (d *grammarDecoder) setLanguageField(lang *Language, key string, v any) error {
	var err error

	switch key {
	case "name":
		lang.Name, err = utils.ToString(v)

	case "aliases":
		lang.Aliases, err = utils.ToStringList(v)

	case "caseInsensitive", "case_insensitive":
		lang.CaseInsensitive, err = utils.ToBool(v)

	case "unicodeRegex":
		lang.UnicodeRegex, err = utils.ToBool(v)

	case "disableAutodetect":
		lang.DisableAutodetect, err = utils.ToBool(v)

	case "supersetOf":
		lang.SupersetOf, err = utils.ToString(v)

	case "classNameAliases":
		lang.ClassNameAliases, err = toStringMap(v)

	default:
		return d.setModeField(&lang.Mode, key, v)
	}

	return err
}

func toStringMap(v any) (map[string]string, error) {
	m, err := utils.ToMap(v)
	if err != nil {
		return nil, err
	}

	ret := map[string]string{}

	for k, x := range m {
		ret[k], err = utils.ToString(x)
		if err != nil {
			return nil, err
		}
	}

	return ret, nil
}

func toScopeMap(v any) (map[int]string, error) {
	m, err := toStringMap(v)
	if err != nil {
		return nil, err
	}

	ret := map[int]string{}

	for k, scope := range m {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, invalid("scope group %q is not a number", k)
		}

		ret[n] = scope
	}

	return ret, nil
}

// toPattern accepts a single pattern or a list of them.
func toPattern(v any) (string, []string, error) {
	switch x := v.(type) {
	case string:
		return x, nil, nil

	case []any:
		seq, err := utils.ToStringList(x)
		return "", seq, err

	default:
		return "", nil, invalid("pattern: %T", v)
	}
}

func (d *grammarDecoder) decodeMode(v any) (*Mode, error) {
	m, err := utils.ToMap(v)
	if err != nil {
		return nil, invalid("mode: %T", v)
	}

	if ref, found := m[refKey]; found {
		if len(m) != 1 {
			return nil, invalid("%s must be the only key", refKey)
		}

		name, err := utils.ToString(ref)
		if err != nil {
			return nil, invalid("%s: %T", refKey, ref)
		}

		return d.resolveRef(name)
	}

	mode := &Mode{}

	err = d.fillMode(mode, m)
	if err != nil {
		return nil, err
	}

	return mode, nil
}

func (d *grammarDecoder) fillMode(mode *Mode, m map[string]any) error {
	for k, v := range utils.SortedMap(m) {
		err := d.setModeField(mode, k, v)
		if err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}

	return nil
}

// resolveRef returns the one shared mode for name, so references can form
// cycles.
func (d *grammarDecoder) resolveRef(name string) (*Mode, error) {
	if mode, found := d.refs[name]; found {
		return mode, nil
	}

	if raw, found := d.modes[name]; found {
		m, err := utils.ToMap(raw)
		if err != nil {
			return nil, invalid("modes.%s: %T", name, raw)
		}

		mode := &Mode{}
		d.refs[name] = mode

		err = d.fillMode(mode, m)
		if err != nil {
			return nil, fmt.Errorf("modes.%s: %w", name, err)
		}

		return mode, nil
	}

	if fn, found := commonModes[name]; found {
		mode := fn()
		d.refs[name] = mode

		return mode, nil
	}

	return nil, invalid("unknown mode reference %q", name)
}

func (d *grammarDecoder) decodeModeList(v any) ([]*Mode, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, invalid("mode list: %T", v)
	}

	ret := []*Mode{}

	for i, item := range list {
		if s, ok := item.(string); ok {
			if s != selfName {
				return nil, invalid("[%d]: unknown mode %q", i, s)
			}

			ret = append(ret, Self)

			continue
		}

		mode, err := d.decodeMode(item)
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}

		ret = append(ret, mode)
	}

	return ret, nil
}

func (d *grammarDecoder) setModeField(mode *Mode, key string, v any) error {
	var err error

	switch key {
	case "scope":
		switch v.(type) {
		case map[string]any:
			mode.ScopeGroups, err = toScopeMap(v)
		default:
			mode.Scope, err = utils.ToString(v)
		}

	case "className":
		mode.ClassName, err = utils.ToString(v)

	case "begin":
		mode.Begin, mode.BeginSeq, err = toPattern(v)

	case "end":
		mode.End, mode.EndSeq, err = toPattern(v)

	case "match":
		mode.Match, mode.MatchSeq, err = toPattern(v)

	case "beginScope":
		switch v.(type) {
		case map[string]any:
			mode.BeginScopes, err = toScopeMap(v)
		default:
			mode.BeginScope, err = utils.ToString(v)
		}

	case "endScope":
		switch v.(type) {
		case map[string]any:
			mode.EndScopes, err = toScopeMap(v)
		default:
			mode.EndScope, err = utils.ToString(v)
		}

	case "beforeMatch":
		mode.BeforeMatch, err = utils.ToString(v)

	case "beginKeywords":
		mode.BeginKeywords, err = utils.ToString(v)

	case "illegal":
		mode.Illegal, mode.IllegalAny, err = toPattern(v)

	case "keywords":
		mode.Keywords, err = decodeKeywords(v)

	case "contains":
		mode.Contains, err = d.decodeModeList(v)

	case "variants":
		mode.Variants, err = d.decodeModeList(v)

	case "starts":
		mode.Starts, err = d.decodeMode(v)

	case "endsWithParent":
		mode.EndsWithParent, err = utils.ToBool(v)

	case "endsParent":
		mode.EndsParent, err = utils.ToBool(v)

	case "excludeBegin":
		mode.ExcludeBegin, err = utils.ToBool(v)

	case "excludeEnd":
		mode.ExcludeEnd, err = utils.ToBool(v)

	case "returnBegin":
		mode.ReturnBegin, err = utils.ToBool(v)

	case "returnEnd":
		mode.ReturnEnd, err = utils.ToBool(v)

	case "skip":
		mode.Skip, err = utils.ToBool(v)

	case "relevance":
		var n int
		n, err = utils.ToInt(v)
		mode.Relevance = Relevance(n)

	case "subLanguage":
		switch x := v.(type) {
		case string:
			mode.SubLanguage = []string{x}
		default:
			mode.SubLanguage, err = utils.ToStringList(x)
			mode.SubLanguageAuto = true
		}

	case "endSameAsBegin":
		var on bool
		on, err = utils.ToBool(v)
		if on {
			mode.OnBegin = endSameAsBeginOnBegin
			mode.OnEnd = endSameAsBeginOnEnd
		}

	case "shebang":
		var on bool
		on, err = utils.ToBool(v)
		if on {
			mode.OnBegin = shebangOnBegin
		}

	default:
		return invalid("unknown key %q", key)
	}

	if err != nil && !errors.Is(err, ErrInvalidGrammar) {
		return fmt.Errorf("%w (%w)", err, ErrInvalidGrammar)
	}

	return err
}

func decodeKeywords(v any) (*Keywords, error) {
	groups, pattern, err := keywords.Parse(v)
	if err != nil {
		return nil, err
	}

	kw := &Keywords{
		Pattern: pattern,
	}

	for _, g := range groups {
		kw.Groups = append(kw.Groups, KeywordGroup{
			Scope: g.Scope,
			Words: strings.Join(g.Words, " "),
		})
	}

	return kw, nil
}
