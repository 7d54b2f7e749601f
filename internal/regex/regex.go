// Package regex composes grammar patterns as source text and compiles them
// with a backtracking engine that supports backreferences and lookaround.
package regex

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/gopatchy/hilite/pkg/errors"
)

// Flags select how a grammar pattern is compiled.
type Flags struct {
	CaseInsensitive bool
	Unicode         bool
}

func (f Flags) options() regexp2.RegexOptions {
	opts := regexp2.RegexOptions(regexp2.Multiline)

	if f.CaseInsensitive {
		opts |= regexp2.IgnoreCase
	}

	// Unicode grammars get the full engine syntax (\p{L} etc); everything
	// else uses ECMAScript semantics so \w and \d stay ASCII.
	if !f.Unicode {
		opts |= regexp2.ECMAScript
	}

	return opts
}

// Compile builds a multiline regexp for pattern.
func Compile(pattern string, flags Flags) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(NumberNamedGroups(pattern), flags.options())
	if err != nil {
		return nil, fmt.Errorf("%q: %v (%w)", pattern, err, errors.ErrInvalidPattern)
	}

	return re, nil
}

func Concat(parts ...string) string {
	return strings.Join(parts, "")
}

func Lookahead(re string) string {
	return Concat("(?=", re, ")")
}

func AnyNumberOfTimes(re string) string {
	return Concat("(?:", re, ")*")
}

func Optional(re string) string {
	return Concat("(?:", re, ")?")
}

// Either builds a non-capturing alternation.
func Either(alts ...string) string {
	return "(?:" + strings.Join(alts, "|") + ")"
}

// EitherCapture builds a capturing alternation.
func EitherCapture(alts ...string) string {
	return "(" + strings.Join(alts, "|") + ")"
}

// CountMatchGroups returns the number of capture groups in pattern.
func CountMatchGroups(pattern string, flags Flags) (int, error) {
	re, err := Compile(pattern+"|", flags)
	if err != nil {
		return 0, err
	}

	// GetGroupNumbers includes group 0
	return len(re.GetGroupNumbers()) - 1, nil
}

// StartsWith reports whether re matches text at its very beginning.
func StartsWith(re *regexp2.Regexp, text []rune) (bool, error) {
	if re == nil {
		return false, nil
	}

	m, err := re.FindRunesMatchStartingAt(text, 0)
	if err != nil {
		return false, err
	}

	return m != nil && m.Index == 0, nil
}

var namedGroupRE = regexp.MustCompile(`\[(?:[^\\\]]|\\.)*\]|\\k<([A-Za-z_]\w*)>|\\k'([A-Za-z_]\w*)'|\\.|\(\?P?<([A-Za-z_]\w*)>|\(\?'([A-Za-z_]\w*)'|\(\??`)

// NumberNamedGroups turns named groups into plain ones and named
// backreferences into numbered ones. The engine numbers named groups after
// all unnamed ones; grammars expect every group numbered left to right.
func NumberNamedGroups(pattern string) string {
	if !strings.Contains(pattern, "(?<") && !strings.Contains(pattern, "(?'") && !strings.Contains(pattern, "(?P<") {
		return pattern
	}

	names := map[string]int{}
	groups := 0

	var sb strings.Builder

	for len(pattern) > 0 {
		loc := namedGroupRE.FindStringSubmatchIndex(pattern)
		if loc == nil {
			sb.WriteString(pattern)
			break
		}

		sb.WriteString(pattern[:loc[0]])
		tok := pattern[loc[0]:loc[1]]

		switch {
		case loc[2] >= 0 || loc[4] >= 0:
			name := submatch(pattern, loc, 1, 2)
			if n, found := names[name]; found {
				sb.WriteString(`(?:\` + strconv.Itoa(n) + `)`)
			} else {
				sb.WriteString(tok)
			}

		case loc[6] >= 0 || loc[8] >= 0:
			groups++
			names[submatch(pattern, loc, 3, 4)] = groups
			sb.WriteString("(")

		default:
			if tok == "(" {
				groups++
			}
			sb.WriteString(tok)
		}

		pattern = pattern[loc[1]:]
	}

	return sb.String()
}

// submatch returns whichever of the two alternative groups matched.
func submatch(s string, loc []int, a, b int) string {
	if loc[2*a] >= 0 {
		return s[loc[2*a]:loc[2*a+1]]
	}
	return s[loc[2*b]:loc[2*b+1]]
}

// Matches an open paren or backreference, plus [...] classes and other
// escapes so they are skipped rather than misread.
var backrefRE = regexp.MustCompile(`\[(?:[^\\\]]|\\.)*\]|\(\??|\\([1-9][0-9]*)|\\.`)

// RewriteBackreferences wraps each pattern in its own capture group and joins
// them with joinWith, renumbering backreferences so each still points at a
// group inside its own pattern. Named groups are numbered first.
func RewriteBackreferences(patterns []string, joinWith string) string {
	numCaptures := 0
	out := make([]string, 0, len(patterns))

	for _, re := range patterns {
		re = NumberNamedGroups(re)
		numCaptures++
		offset := numCaptures

		var sb strings.Builder

		for len(re) > 0 {
			loc := backrefRE.FindStringSubmatchIndex(re)
			if loc == nil {
				sb.WriteString(re)
				break
			}

			sb.WriteString(re[:loc[0]])
			tok := re[loc[0]:loc[1]]

			if tok[0] == '\\' && loc[2] >= 0 {
				n, _ := strconv.Atoi(re[loc[2]:loc[3]])
				sb.WriteString(`\` + strconv.Itoa(n+offset))
			} else {
				sb.WriteString(tok)
				if tok == "(" {
					numCaptures++
				}
			}

			re = re[loc[1]:]
		}

		out = append(out, "("+sb.String()+")")
	}

	return strings.Join(out, joinWith)
}
