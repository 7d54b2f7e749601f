package hilite

import (
	"fmt"
	"strings"

	"github.com/gopatchy/hilite/internal/regex"
)

// multiScope maps merged capture group numbers to scopes. Only groups in
// emit are top-level pieces of the original pattern list.
type multiScope struct {
	scopes map[int]string
	emit   map[int]bool
}

func scopeClassName(m *Mode) {
	if m.ClassName == "" {
		return
	}

	m.Scope = m.ClassName
	m.ClassName = ""
}

func compileMatch(m *Mode) error {
	if m.Match == "" && m.MatchSeq == nil {
		return nil
	}

	if m.Begin != "" || m.End != "" || m.BeginSeq != nil || m.EndSeq != nil {
		return fmt.Errorf("match %q: %w", m.Match, ErrMatchWithBeginEnd)
	}

	m.Begin = m.Match
	m.BeginSeq = m.MatchSeq
	m.Match = ""
	m.MatchSeq = nil

	return nil
}

func (c *compiler) multiClass(m *Mode) error {
	if m.ScopeGroups != nil {
		m.BeginScopes = m.ScopeGroups
		m.ScopeGroups = nil
	}

	if m.BeginSeq != nil {
		if m.Skip || m.ExcludeBegin || m.ReturnBegin {
			return fmt.Errorf("skip, excludeBegin, returnBegin not compatible with beginScope: %w", ErrMultiClass)
		}

		if m.BeginScopes == nil {
			return fmt.Errorf("beginScope must be a group map: %w", ErrMultiClass)
		}

		ms, err := c.remapScopeNames(m.BeginScopes, m.BeginSeq)
		if err != nil {
			return err
		}

		m.beginMulti = ms
		m.Begin = regex.RewriteBackreferences(m.BeginSeq, "")
		m.BeginSeq = nil
		m.BeginScopes = nil
	}

	if m.EndSeq != nil {
		if m.Skip || m.ExcludeEnd || m.ReturnEnd {
			return fmt.Errorf("skip, excludeEnd, returnEnd not compatible with endScope: %w", ErrMultiClass)
		}

		if m.EndScopes == nil {
			return fmt.Errorf("endScope must be a group map: %w", ErrMultiClass)
		}

		ms, err := c.remapScopeNames(m.EndScopes, m.EndSeq)
		if err != nil {
			return err
		}

		m.endMulti = ms
		m.End = regex.RewriteBackreferences(m.EndSeq, "")
		m.EndSeq = nil
		m.EndScopes = nil
	}

	return nil
}

// remapScopeNames shifts each scope index past the groups nested inside the
// patterns before it, so index i still names the i-th pattern.
func (c *compiler) remapScopeNames(scopes map[int]string, patterns []string) (*multiScope, error) {
	ms := &multiScope{
		scopes: map[int]string{},
		emit:   map[int]bool{},
	}

	offset := 0

	for i := 1; i <= len(patterns); i++ {
		ms.scopes[i+offset] = scopes[i]
		ms.emit[i+offset] = true

		n, err := regex.CountMatchGroups(patterns[i-1], c.flags)
		if err != nil {
			return nil, err
		}

		offset += n
	}

	return ms, nil
}

// beforeMatch turns the mode into a zero-relevance wrapper that matches the
// qualifier and then starts the original mode, which ends the wrapper.
func beforeMatch(m *Mode) (*Mode, error) {
	if m.BeforeMatch == "" {
		return m, nil
	}

	if m.Starts != nil {
		return nil, fmt.Errorf("beforeMatch %q: %w", m.BeforeMatch, ErrBeforeMatchWithStarts)
	}

	orig := m.clone()
	orig.EndsParent = true
	orig.BeforeMatch = ""

	return &Mode{
		Keywords: orig.Keywords,
		Begin:    regex.Concat(m.BeforeMatch, regex.Lookahead(orig.Begin)),
		Starts: &Mode{
			Relevance: Relevance(0),
			Contains:  []*Mode{orig},
		},
		Relevance: Relevance(0),
	}, nil
}

func skipIfHasPrecedingDot(m *Match, resp *Response) {
	if m.Preceding() == '.' {
		resp.IgnoreMatch()
	}
}

func beginKeywords(m *Mode, hasParent bool) {
	if !hasParent || m.BeginKeywords == "" {
		return
	}

	words := strings.Fields(m.BeginKeywords)

	// \s as well as \b, for keywords that end in non-word characters
	m.Begin = `\b(` + strings.Join(words, "|") + `)(?!\.)(?=\b|\s)`
	m.beforeBegin = skipIfHasPrecedingDot

	if m.Keywords == nil {
		m.Keywords = Words(m.BeginKeywords)
	}
	m.BeginKeywords = ""

	// the keywords already score
	if m.Relevance == nil {
		m.Relevance = Relevance(0)
	}
}

func compileIllegal(m *Mode) {
	if len(m.IllegalAny) == 0 {
		return
	}

	alts := m.IllegalAny
	if m.Illegal != "" {
		alts = append([]string{m.Illegal}, alts...)
	}

	m.Illegal = regex.Either(alts...)
	m.IllegalAny = nil
}

func compileRelevance(m *Mode) {
	if m.Relevance == nil {
		m.Relevance = Relevance(1)
	}
}
