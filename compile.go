package hilite

import (
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/gopatchy/hilite/internal/keywords"
	"github.com/gopatchy/hilite/internal/matcher"
	"github.com/gopatchy/hilite/internal/regex"
	"github.com/gopatchy/hilite/pkg/log"
)

const (
	defaultKeywordPattern = `\w+`

	// Zero-width pattern that matches anywhere
	matchAnywhere = `\B|\b`
)

// CompiledLanguage is the runtime form of a Language. It is immutable and
// safe for concurrent highlighting.
type CompiledLanguage struct {
	Language *Language

	flags regex.Flags
	root  *compiledMode
	modes int
}

type compiledMode struct {
	id  int
	def *Mode

	scope      string
	beginScope string
	beginMulti *multiScope
	endScope   string
	endMulti   *multiScope

	begin         string
	end           string
	terminatorEnd string
	illegal       string

	beginRe   *regexp2.Regexp
	endRe     *regexp2.Regexp
	illegalRe *regexp2.Regexp

	keywords   keywords.Table
	keywordRe  *regexp2.Regexp
	hasKeyword bool

	contains []*compiledMode
	starts   *compiledMode
	matcher  *matcher.Resumable

	relevance int

	endsWithParent bool
	endsParent     bool
	excludeBegin   bool
	excludeEnd     bool
	returnBegin    bool
	returnEnd      bool
	skip           bool

	subLanguage     []string
	subLanguageAuto bool

	onBegin     Hook
	onEnd       Hook
	beforeBegin Hook
}

func (cm *compiledMode) hasSubLanguage() bool {
	return len(cm.subLanguage) > 0 || cm.subLanguageAuto
}

type compiler struct {
	lang   *Language
	flags  regex.Flags
	common []string

	compiled map[*Mode]*compiledMode
	variants map[*Mode][]*Mode
	active   map[*Mode]bool
	nextID   int
}

// Compile builds the runtime form of lang. lang is not modified.
func Compile(lang *Language) (*CompiledLanguage, error) {
	return compileLanguage(lang, keywords.Common)
}

func compileLanguage(lang *Language, common []string) (*CompiledLanguage, error) {
	for _, child := range lang.Contains {
		if child == Self {
			return nil, fmt.Errorf("%s: %w", lang.Name, ErrSelfAtTopLevel)
		}
	}

	c := &compiler{
		lang: lang,
		flags: regex.Flags{
			CaseInsensitive: lang.CaseInsensitive,
			Unicode:         lang.UnicodeRegex,
		},
		common:   common,
		compiled: map[*Mode]*compiledMode{},
		variants: map[*Mode][]*Mode{},
		active:   map[*Mode]bool{},
	}

	rootDef := lang.Mode

	root, err := c.compileMode(&rootDef, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", lang.Name, err)
	}

	log.Debugf("[%s] compiled %d modes", lang.Name, c.nextID)

	return &CompiledLanguage{
		Language: lang,
		flags:    c.flags,
		root:     root,
		modes:    c.nextID,
	}, nil
}

func (c *compiler) compileMode(mode *Mode, parent *compiledMode) (*compiledMode, error) {
	if cm, found := c.compiled[mode]; found {
		return cm, nil
	}

	cm := &compiledMode{id: c.nextID}
	c.nextID++
	c.compiled[mode] = cm

	c.active[mode] = true
	defer delete(c.active, mode)

	m, err := c.applyExtensions(mode, parent)
	if err != nil {
		return nil, err
	}

	cm.def = m
	cm.scope = m.Scope
	cm.beginScope = m.BeginScope
	cm.beginMulti = m.beginMulti
	cm.endScope = m.EndScope
	cm.endMulti = m.endMulti
	cm.relevance = *m.Relevance
	cm.endsWithParent = m.EndsWithParent
	cm.endsParent = m.EndsParent
	cm.excludeBegin = m.ExcludeBegin
	cm.excludeEnd = m.ExcludeEnd
	cm.returnBegin = m.ReturnBegin
	cm.returnEnd = m.ReturnEnd
	cm.skip = m.Skip
	cm.subLanguage = m.SubLanguage
	cm.subLanguageAuto = m.SubLanguageAuto
	cm.onBegin = m.OnBegin
	cm.onEnd = m.OnEnd
	cm.beforeBegin = m.beforeBegin

	if len(m.SubLanguage) > 1 && !m.SubLanguageAuto {
		return nil, fmt.Errorf("%v: %w", m.SubLanguage, ErrSubLanguage)
	}

	err = c.compileKeywords(cm, m)
	if err != nil {
		return nil, err
	}

	if parent != nil {
		cm.begin = m.Begin
		if cm.begin == "" {
			cm.begin = matchAnywhere
		}

		cm.beginRe, err = regex.Compile(cm.begin, c.flags)
		if err != nil {
			return nil, err
		}

		cm.end = m.End
		if cm.end == "" && !m.EndsWithParent {
			cm.end = matchAnywhere
		}

		if cm.end != "" {
			cm.endRe, err = regex.Compile(cm.end, c.flags)
			if err != nil {
				return nil, err
			}
		}

		cm.terminatorEnd = cm.end
		if m.EndsWithParent && parent.terminatorEnd != "" {
			if cm.terminatorEnd != "" {
				cm.terminatorEnd += "|"
			}
			cm.terminatorEnd += parent.terminatorEnd
		}
	}

	if m.Illegal != "" {
		cm.illegal = m.Illegal

		cm.illegalRe, err = regex.Compile(cm.illegal, c.flags)
		if err != nil {
			return nil, err
		}
	}

	for _, child := range m.Contains {
		if child == Self {
			cm.contains = append(cm.contains, cm)
			continue
		}

		for _, expanded := range c.expandOrClone(child) {
			ccm, err := c.compileMode(expanded, cm)
			if err != nil {
				return nil, err
			}

			cm.contains = append(cm.contains, ccm)
		}
	}

	if m.Starts != nil {
		cm.starts, err = c.compileMode(m.Starts, parent)
		if err != nil {
			return nil, err
		}
	}

	cm.matcher, err = c.buildMatcher(cm)
	if err != nil {
		return nil, err
	}

	return cm, nil
}

// applyExtensions runs the built-in and language rewrites on a copy of mode.
func (c *compiler) applyExtensions(mode *Mode, parent *compiledMode) (*Mode, error) {
	var parentDef *Mode
	if parent != nil {
		parentDef = parent.def
	}

	m := mode.clone()

	scopeClassName(m)

	err := compileMatch(m)
	if err != nil {
		return nil, err
	}

	err = c.multiClass(m)
	if err != nil {
		return nil, err
	}

	m, err = beforeMatch(m)
	if err != nil {
		return nil, err
	}

	for _, ext := range c.lang.CompilerExtensions {
		err = ext(m, parentDef)
		if err != nil {
			return nil, fmt.Errorf("compiler extension: %w (%w)", err, ErrConstruction)
		}
	}

	m.beforeBegin = nil

	beginKeywords(m, parent != nil)
	compileIllegal(m)
	compileRelevance(m)

	return m, nil
}

func (c *compiler) compileKeywords(cm *compiledMode, m *Mode) error {
	if m.Keywords == nil {
		return nil
	}

	groups := make([]keywords.Group, 0, len(m.Keywords.Groups))
	for _, g := range m.Keywords.Groups {
		groups = append(groups, keywords.Group{
			Scope: g.Scope,
			Words: keywords.Split(g.Words),
		})
	}

	cm.keywords = keywords.Compile(groups, c.lang.CaseInsensitive, c.common)
	cm.hasKeyword = true

	pattern := m.Keywords.Pattern
	if pattern == "" {
		pattern = defaultKeywordPattern
	}

	var err error

	cm.keywordRe, err = regex.Compile(pattern, c.flags)

	return err
}

func (c *compiler) buildMatcher(cm *compiledMode) (*matcher.Resumable, error) {
	rules := []matcher.Rule{}

	for _, child := range cm.contains {
		rules = append(rules, matcher.Rule{
			Pattern: child.begin,
			Kind:    matcher.Begin,
		})
	}

	if cm.terminatorEnd != "" {
		rules = append(rules, matcher.Rule{
			Pattern: cm.terminatorEnd,
			Kind:    matcher.End,
		})
	}

	if cm.illegal != "" {
		rules = append(rules, matcher.Rule{
			Pattern: cm.illegal,
			Kind:    matcher.Illegal,
		})
	}

	return matcher.New(rules, c.flags)
}

// expandOrClone returns the modes a Contains entry stands for: one per
// variant, a private copy when the mode's end depends on its parent, or the
// mode itself.
func (c *compiler) expandOrClone(mode *Mode) []*Mode {
	if len(mode.Variants) > 0 {
		if cached, found := c.variants[mode]; found {
			return cached
		}

		base := mode.clone()
		base.Variants = nil

		expanded := make([]*Mode, 0, len(mode.Variants))
		for _, v := range mode.Variants {
			expanded = append(expanded, Inherit(base, v))
		}

		c.variants[mode] = expanded

		return expanded
	}

	// A mode nested inside itself reuses the instance being compiled.
	if dependsOnParent(mode) && !c.active[mode] {
		ret := mode.clone()
		if ret.Starts != nil {
			ret.Starts = ret.Starts.clone()
		}

		return []*Mode{ret}
	}

	return []*Mode{mode}
}

func dependsOnParent(mode *Mode) bool {
	for m := mode; m != nil; m = m.Starts {
		if m.EndsWithParent {
			return true
		}
	}

	return false
}

// Modes reports how many distinct compiled modes the language has.
func (cl *CompiledLanguage) Modes() int {
	return cl.modes
}

// Describe renders the compiled mode graph as an indented outline. Modes
// already printed are referenced by number.
func (cl *CompiledLanguage) Describe() string {
	b := &strings.Builder{}
	seen := map[*compiledMode]bool{}

	describeMode(b, cl.root, 0, seen)

	return b.String()
}

func describeMode(b *strings.Builder, cm *compiledMode, depth int, seen map[*compiledMode]bool) {
	indent := strings.Repeat("  ", depth)

	if seen[cm] {
		fmt.Fprintf(b, "%s#%d ^\n", indent, cm.id)
		return
	}

	seen[cm] = true

	fmt.Fprintf(b, "%s#%d", indent, cm.id)

	if cm.scope != "" {
		fmt.Fprintf(b, " scope=%s", cm.scope)
	}

	if cm.begin != "" {
		fmt.Fprintf(b, " begin=%q", cm.begin)
	}

	if cm.terminatorEnd != "" {
		fmt.Fprintf(b, " end=%q", cm.terminatorEnd)
	}

	if cm.illegal != "" {
		fmt.Fprintf(b, " illegal=%q", cm.illegal)
	}

	if len(cm.keywords) > 0 {
		fmt.Fprintf(b, " keywords=%d", len(cm.keywords))
	}

	fmt.Fprintf(b, " relevance=%d\n", cm.relevance)

	for _, child := range cm.contains {
		describeMode(b, child, depth+1, seen)
	}

	if cm.starts != nil {
		fmt.Fprintf(b, "%s starts:\n", indent)
		describeMode(b, cm.starts, depth+1, seen)
	}
}
