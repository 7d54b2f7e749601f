// Package matcher finds the earliest of many patterns in one scan by merging
// them into a single alternation, and can resume at the same position while
// skipping a rule the caller rejected.
package matcher

import (
	"sync"

	"github.com/dlclark/regexp2"

	"github.com/gopatchy/hilite/internal/regex"
)

type Kind int

const (
	Begin Kind = iota
	End
	Illegal
)

func (k Kind) String() string {
	switch k {
	case Begin:
		return "begin"
	case End:
		return "end"
	case Illegal:
		return "illegal"
	default:
		return "unknown"
	}
}

type Rule struct {
	Pattern string
	Kind    Kind
}

// Match is one search hit. Offsets count runes.
type Match struct {
	// Position of the rule that fired in the full rule list
	Rule int
	Kind Kind

	Index  int
	Length int

	// Groups[0] is the whole match; the rest are the rule's own capture
	// groups, "" when a group did not participate.
	Groups []string
}

func (m *Match) Text() string {
	return m.Groups[0]
}

type multiRegex struct {
	re      *regexp2.Regexp
	offset  int
	kinds   []Kind
	groupAt []int
	inner   []int
}

func newMultiRegex(rules []Rule, offset int, flags regex.Flags) (*multiRegex, error) {
	m := &multiRegex{
		offset: offset,
	}

	if len(rules) == 0 {
		return m, nil
	}

	patterns := make([]string, 0, len(rules))
	matchAt := 1

	for _, rule := range rules {
		n, err := regex.CountMatchGroups(rule.Pattern, flags)
		if err != nil {
			return nil, err
		}

		m.kinds = append(m.kinds, rule.Kind)
		m.groupAt = append(m.groupAt, matchAt)
		m.inner = append(m.inner, n)
		patterns = append(patterns, rule.Pattern)

		matchAt += n + 1
	}

	re, err := regex.Compile(regex.RewriteBackreferences(patterns, "|"), flags)
	if err != nil {
		return nil, err
	}

	m.re = re

	return m, nil
}

func (m *multiRegex) exec(text []rune, at int) (*Match, error) {
	if m.re == nil || at > len(text) {
		return nil, nil
	}

	res, err := m.re.FindRunesMatchStartingAt(text, at)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, nil
	}

	for i, g := range m.groupAt {
		if !participated(res, g) {
			continue
		}

		groups := make([]string, m.inner[i]+1)
		for j := range groups {
			if participated(res, g+j) {
				groups[j] = res.GroupByNumber(g + j).String()
			}
		}

		return &Match{
			Rule:   m.offset + i,
			Kind:   m.kinds[i],
			Index:  res.Index,
			Length: res.Length,
			Groups: groups,
		}, nil
	}

	return nil, nil
}

func participated(res *regexp2.Match, num int) bool {
	g := res.GroupByNumber(num)
	return g != nil && len(g.Captures) > 0
}

// Resumable searches an ordered rule list. Begin rules must come first.
// It holds no per-search state, so one instance may serve concurrent scans.
type Resumable struct {
	rules []Rule
	flags regex.Flags
	count int

	mu    sync.Mutex
	multi map[int]*multiRegex
}

// New validates every rule and builds the full matcher.
func New(rules []Rule, flags regex.Flags) (*Resumable, error) {
	r := &Resumable{
		rules: rules,
		flags: flags,
		multi: map[int]*multiRegex{},
	}

	for _, rule := range rules {
		if rule.Kind == Begin {
			r.count++
		}
	}

	_, err := r.matcher(0)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Resumable) Rules() []Rule {
	return r.rules
}

// BeginCount is the number of begin rules.
func (r *Resumable) BeginCount() int {
	return r.count
}

func (r *Resumable) matcher(index int) (*multiRegex, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, found := r.multi[index]; found {
		return m, nil
	}

	start := min(index, len(r.rules))

	m, err := newMultiRegex(r.rules[start:], start, r.flags)
	if err != nil {
		return nil, err
	}

	r.multi[index] = m

	return m, nil
}

// Exec finds the next match at or after at. resumeFrom is 0 for a fresh
// search, or the value returned by the previous Exec when the caller ignored
// that match without moving the cursor. The second return value is the
// resumeFrom to pass if this match is ignored in turn.
func (r *Resumable) Exec(text []rune, at, resumeFrom int) (*Match, int, error) {
	m, err := r.matcher(resumeFrom)
	if err != nil {
		return nil, 0, err
	}

	result, err := m.exec(text, at)
	if err != nil {
		return nil, 0, err
	}

	if resumeFrom != 0 && (result == nil || result.Index != at) {
		// The narrowed matcher found nothing here; any other rule may still
		// start one character later.
		full, err := r.matcher(0)
		if err != nil {
			return nil, 0, err
		}

		result, err = full.exec(text, at+1)
		if err != nil {
			return nil, 0, err
		}
	}

	if result == nil {
		return nil, 0, nil
	}

	next := result.Rule + 1
	if next == r.count {
		next = 0
	}

	return result, next, nil
}
