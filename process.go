package hilite

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/exp/utf8string"

	"github.com/gopatchy/hilite/internal/matcher"
	"github.com/gopatchy/hilite/internal/regex"
	"github.com/gopatchy/hilite/pkg/tokentree"
)

const (
	// Characters of source kept either side of an illegal match
	illegalContext = 100

	runawayIterations = 100000
)

// parser carries the state of one highlight pass. The top of stack is the
// active mode; each frame's parent is the frame below it.
type parser struct {
	h              *Highlighter
	lang           *CompiledLanguage
	name           string
	code           string
	text           []rune
	ignoreIllegals bool
	safe           bool
	opts           Options

	emitter tokentree.Emitter
	stack   []*compiledMode
	buffer  string

	relevance     int
	keywordHits   map[string]int
	continuations map[string][]*compiledMode
	data          map[*compiledMode]map[string]any

	index      int
	iterations int

	// Resume at the same cursor from rule next of the active matcher
	resume bool
	next   int

	last     *matcher.Match
	lastRule string
}

func (p *parser) top() *compiledMode {
	return p.stack[len(p.stack)-1]
}

func (p *parser) run(continuation []*compiledMode) (result *Result, err error) {
	if continuation != nil {
		p.stack = slices.Clone(continuation)
	} else {
		p.stack = []*compiledMode{p.lang.root}
	}

	p.emitter = p.opts.newEmitter()

	defer func() {
		r := recover()
		if r == nil {
			return
		}

		result, err = p.fail(fmt.Errorf("%s: panic: %v (%w)", p.name, r, Err))
	}()

	p.processContinuations()

	err = p.scan()
	if err != nil {
		return p.fail(err)
	}

	p.emitter.Finalize()

	return &Result{
		Language:  p.name,
		Value:     p.emitter.ToOutput(),
		Relevance: p.relevance,
		Emitter:   p.emitter,
		top:       p.stack,
	}, nil
}

func (p *parser) fail(err error) (*Result, error) {
	var ie *IllegalError
	if errors.As(err, &ie) {
		result := &Result{
			Language:  p.name,
			Value:     tokentree.Escape(p.code),
			Illegal:   true,
			IllegalBy: ie,
			Emitter:   p.emitter,
		}

		if p.safe {
			return result, nil
		}

		return result, err
	}

	if errors.Is(err, ErrRunawayLoop) || !p.safe {
		return nil, err
	}

	return &Result{
		Language:    p.name,
		Value:       tokentree.Escape(p.code),
		ErrorRaised: err,
		Emitter:     p.emitter,
		top:         p.stack,
	}, nil
}

func (p *parser) scan() error {
	if p.lang.Language.EmitTokens != nil {
		return p.lang.Language.EmitTokens(p.code, p.emitter)
	}

	for {
		p.iterations++

		from := 0
		if p.resume {
			from = p.next
			p.resume = false
		}

		m, next, err := p.top().matcher.Exec(p.text, p.index, from)
		if err != nil {
			return err
		}

		p.next = next

		if m == nil {
			break
		}

		n, err := p.processLexeme(string(p.text[p.index:m.Index]), m)
		if err != nil {
			return err
		}

		p.index = m.Index + n
	}

	_, err := p.processLexeme(string(p.text[min(p.index, len(p.text)):]), nil)

	return err
}

// processContinuations reopens the scopes of a resumed frame stack.
func (p *parser) processContinuations() {
	for _, cm := range p.stack[1:] {
		if cm.scope != "" {
			p.emitter.StartScope(p.alias(cm.scope))
		}
	}
}

// processLexeme consumes the text before a match and the match itself. It
// returns how far past the match start the cursor moves.
func (p *parser) processLexeme(before string, m *matcher.Match) (int, error) {
	p.buffer += before

	if m == nil {
		return 0, p.processBuffer()
	}

	lexeme := m.Text()

	// A begin then end at one offset, both empty, makes no progress.
	if p.last != nil && p.last.Kind == matcher.Begin && m.Kind == matcher.End && p.last.Index == m.Index && lexeme == "" {
		p.buffer += p.charAt(m.Index)

		if !p.safe {
			return 0, fmt.Errorf("%s: rule %q (%w)", p.name, p.lastRule, ErrZeroWidthMatch)
		}

		return 1, nil
	}

	p.last = m
	p.lastRule = p.top().matcher.Rules()[m.Rule].Pattern

	switch m.Kind {
	case matcher.Begin:
		return p.doBeginMatch(m)

	case matcher.Illegal:
		if !p.ignoreIllegals {
			return 0, p.illegal(m)
		}

	case matcher.End:
		n, ok, err := p.doEndMatch(m)
		if err != nil {
			return 0, err
		}

		if ok {
			return n, nil
		}
	}

	// An ignored illegal match on $ is zero width too.
	if m.Kind == matcher.Illegal && lexeme == "" {
		p.buffer += p.charAt(m.Index)
		return 1, nil
	}

	if p.iterations > runawayIterations && p.iterations > m.Index*3 {
		return 0, fmt.Errorf("%s: %d iterations by index %d (%w)", p.name, p.iterations, m.Index, ErrRunawayLoop)
	}

	// An end match that was vetoed: keep it as content.
	p.buffer += lexeme

	return m.Length, nil
}

func (p *parser) charAt(index int) string {
	if index < 0 || index >= len(p.text) {
		return ""
	}

	return string(p.text[index])
}

func (p *parser) illegal(m *matcher.Match) error {
	s := utf8string.NewString(p.code)

	lo := max(m.Index-illegalContext, 0)
	hi := min(m.Index+illegalContext, s.RuneCount())

	return &IllegalError{
		Lexeme:  m.Text(),
		Mode:    p.top().scope,
		Index:   m.Index,
		Context: s.Slice(lo, hi),
	}
}

func (p *parser) hookMatch(m *matcher.Match) *Match {
	return &Match{
		Index:  m.Index,
		Groups: m.Groups,
		input:  p.text,
	}
}

func (p *parser) response(cm *compiledMode) *Response {
	data := p.data[cm]
	if data == nil {
		data = map[string]any{}
		p.data[cm] = data
	}

	return &Response{Data: data}
}

func (p *parser) doBeginMatch(m *matcher.Match) (int, error) {
	newMode := p.top().contains[m.Rule]
	lexeme := m.Text()

	resp := p.response(newMode)
	hm := p.hookMatch(m)

	for _, cb := range []Hook{newMode.beforeBegin, newMode.onBegin} {
		if cb == nil {
			continue
		}

		cb(hm, resp)

		if resp.IsMatchIgnored() {
			return p.doIgnore(m), nil
		}
	}

	if newMode.skip {
		p.buffer += lexeme
	} else {
		if newMode.excludeBegin {
			p.buffer += lexeme
		}

		err := p.processBuffer()
		if err != nil {
			return 0, err
		}

		if !newMode.returnBegin && !newMode.excludeBegin {
			p.buffer = lexeme
		}
	}

	err := p.startNewMode(newMode, m.Groups)
	if err != nil {
		return 0, err
	}

	if newMode.returnBegin {
		return 0, nil
	}

	return m.Length, nil
}

// doIgnore handles a vetoed begin match. If later rules could still match
// at the cursor the scan resumes there; otherwise one character is consumed.
func (p *parser) doIgnore(m *matcher.Match) int {
	if p.next == 0 {
		p.buffer += p.charAt(m.Index)
		return 1
	}

	p.resume = true

	return 0
}

func (p *parser) startNewMode(cm *compiledMode, groups []string) error {
	if cm.scope != "" {
		p.emitter.StartScope(p.alias(cm.scope))
	}

	switch {
	case cm.beginScope != "":
		p.emitKeyword(p.buffer, p.alias(cm.beginScope))
		p.buffer = ""

	case cm.beginMulti != nil:
		err := p.emitMultiClass(cm.beginMulti, groups)
		if err != nil {
			return err
		}

		p.buffer = ""
	}

	p.stack = append(p.stack, cm)

	return nil
}

// endOfMode finds the frame that a terminator match at m closes, starting
// from frame idx.
func (p *parser) endOfMode(idx int, m *matcher.Match) (int, bool, error) {
	cm := p.stack[idx]

	matched := false

	if cm.endRe != nil {
		var err error

		matched, err = regex.StartsWith(cm.endRe, p.text[m.Index:])
		if err != nil {
			return 0, false, err
		}
	}

	if matched && cm.onEnd != nil {
		resp := p.response(cm)
		cm.onEnd(p.hookMatch(m), resp)

		if resp.IsMatchIgnored() {
			matched = false
		}
	}

	if matched {
		for idx > 1 && p.stack[idx].endsParent {
			idx--
		}

		return idx, true, nil
	}

	// Even when vetoed, the end may still close an ancestor.
	if cm.endsWithParent && idx > 0 {
		return p.endOfMode(idx-1, m)
	}

	return 0, false, nil
}

func (p *parser) doEndMatch(m *matcher.Match) (int, bool, error) {
	lexeme := m.Text()

	endIdx, ok, err := p.endOfMode(len(p.stack)-1, m)
	if err != nil || !ok {
		return 0, false, err
	}

	origin := p.top()

	switch {
	case origin.endScope != "":
		err = p.processBuffer()
		if err != nil {
			return 0, false, err
		}

		p.emitKeyword(lexeme, p.alias(origin.endScope))

	case origin.endMulti != nil:
		err = p.processBuffer()
		if err != nil {
			return 0, false, err
		}

		err = p.emitMultiClass(origin.endMulti, m.Groups)
		if err != nil {
			return 0, false, err
		}

	case origin.skip:
		p.buffer += lexeme

	default:
		if !origin.returnEnd && !origin.excludeEnd {
			p.buffer += lexeme
		}

		err = p.processBuffer()
		if err != nil {
			return 0, false, err
		}

		if origin.excludeEnd {
			p.buffer = lexeme
		}
	}

	endMode := p.stack[endIdx]

	for len(p.stack) > endIdx {
		cm := p.top()

		if cm.scope != "" {
			p.emitter.EndScope()
		}

		if !cm.skip && !cm.hasSubLanguage() {
			p.relevance += cm.relevance
		}

		p.stack = p.stack[:len(p.stack)-1]
	}

	if endMode.starts != nil {
		err = p.startNewMode(endMode.starts, m.Groups)
		if err != nil {
			return 0, false, err
		}
	}

	if origin.returnEnd {
		return 0, true, nil
	}

	return m.Length, true, nil
}

func (p *parser) processBuffer() error {
	var err error

	if p.top().hasSubLanguage() {
		err = p.processSubLanguage()
	} else {
		err = p.processKeywords()
	}

	p.buffer = ""

	return err
}

func (p *parser) processKeywords() error {
	cm := p.top()

	if !cm.hasKeyword {
		p.emitter.AddText(p.buffer)
		return nil
	}

	runes := []rune(p.buffer)
	buf := &strings.Builder{}
	last := 0

	m, err := cm.keywordRe.FindRunesMatch(runes)
	if err != nil {
		return err
	}

	for m != nil {
		buf.WriteString(string(runes[last:m.Index]))

		text := m.String()

		word := text
		if p.lang.Language.CaseInsensitive {
			word = strings.ToLower(word)
		}

		entry, found := cm.keywords[word]
		if found {
			p.emitter.AddText(buf.String())
			buf.Reset()

			p.keywordHits[word]++
			if p.keywordHits[word] <= p.opts.MaxKeywordHits {
				p.relevance += entry.Relevance
			}

			if entry.RelevanceOnly() {
				buf.WriteString(text)
			} else {
				p.emitKeyword(text, p.alias(entry.Scope))
			}
		} else {
			buf.WriteString(text)
		}

		last = m.Index + m.Length

		m, err = cm.keywordRe.FindNextMatch(m)
		if err != nil {
			return err
		}
	}

	buf.WriteString(string(runes[last:]))
	p.emitter.AddText(buf.String())

	return nil
}

func (p *parser) processSubLanguage() error {
	if p.buffer == "" {
		return nil
	}

	cm := p.top()

	var (
		result *Result
		err    error
	)

	if cm.subLanguageAuto {
		result, err = p.h.highlightAuto(p.buffer, cm.subLanguage)
		if err != nil {
			return err
		}
	} else {
		name := cm.subLanguage[0]

		if p.h.GetLanguage(name) == nil {
			p.emitter.AddText(p.buffer)
			return nil
		}

		result, err = p.h.highlight(name, p.buffer, true, p.continuations[name])
		if err != nil {
			return err
		}

		p.continuations[name] = result.top
	}

	// A zero-relevance host keeps embedded scores out of detection.
	if cm.relevance > 0 {
		p.relevance += result.Relevance
	}

	p.emitter.OpenSublanguageResult(result.Emitter, result.Language)

	return nil
}

func (p *parser) emitKeyword(text, scope string) {
	if text == "" {
		return
	}

	p.emitter.StartScope(scope)
	p.emitter.AddText(text)
	p.emitter.EndScope()
}

func (p *parser) emitMultiClass(ms *multiScope, groups []string) error {
	for i := 1; i < len(groups); i++ {
		if !ms.emit[i] {
			continue
		}

		scope := p.alias(ms.scopes[i])

		if scope != "" {
			p.emitKeyword(groups[i], scope)
			continue
		}

		p.buffer = groups[i]

		err := p.processKeywords()
		if err != nil {
			return err
		}

		p.buffer = ""
	}

	return nil
}

func (p *parser) alias(scope string) string {
	alias := p.lang.Language.ClassNameAliases[scope]
	if alias != "" {
		return alias
	}

	return scope
}
