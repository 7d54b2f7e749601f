// Package keywords compiles grammar keyword lists into a lookup table.
package keywords

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/gopatchy/hilite/pkg/errors"
)

const (
	// DefaultScope is applied to keywords given without a scope name.
	DefaultScope = "keyword"

	// PatternKey names the custom tokenizing pattern in a decoded keyword map.
	PatternKey = "$pattern"
)

// Common lists words that score 0 unless a score is written explicitly.
var Common = []string{
	"of",
	"and",
	"for",
	"in",
	"not",
	"or",
	"if",
	"then",
	"parent",
	"list",
	"value",
}

// Group is one scope and its words. A word may carry a score as "word|N".
type Group struct {
	Scope string
	Words []string
}

// Entry is the compiled form of a single keyword.
type Entry struct {
	Scope     string
	Relevance int
}

// RelevanceOnly reports whether the entry scores without being highlighted.
func (e Entry) RelevanceOnly() bool {
	return strings.HasPrefix(e.Scope, "_")
}

type Table map[string]Entry

// Split breaks a space-delimited keyword string into words.
func Split(s string) []string {
	return strings.Fields(s)
}

// Compile flattens groups into a table. Later groups overwrite earlier ones
// for repeated words.
func Compile(groups []Group, caseInsensitive bool, common []string) Table {
	table := Table{}

	for _, group := range groups {
		scope := group.Scope
		if scope == "" {
			scope = DefaultScope
		}

		for _, word := range group.Words {
			if caseInsensitive {
				word = strings.ToLower(word)
			}

			name, score, _ := strings.Cut(word, "|")
			table[name] = Entry{
				Scope:     scope,
				Relevance: scoreFor(name, score, common),
			}
		}
	}

	return table
}

func scoreFor(word, provided string, common []string) int {
	if provided != "" {
		n, err := strconv.Atoi(provided)
		if err == nil {
			return n
		}
	}

	if slices.Contains(common, strings.ToLower(word)) {
		return 0
	}

	return 1
}

// Parse converts a decoded keyword value (string, list or scope map) into
// groups plus an optional tokenizing pattern.
func Parse(raw any) ([]Group, string, error) {
	switch v := raw.(type) {
	case nil:
		return nil, "", nil

	case string:
		return []Group{{Scope: DefaultScope, Words: Split(v)}}, "", nil

	case []any:
		words, err := parseWords(v)
		if err != nil {
			return nil, "", err
		}
		return []Group{{Scope: DefaultScope, Words: words}}, "", nil

	case map[string]any:
		pattern := ""
		groups := []Group{}

		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			if key == PatternKey {
				s, ok := v[key].(string)
				if !ok {
					return nil, "", fmt.Errorf("%s must be a string, got %T (%w)", PatternKey, v[key], errors.ErrInvalidType)
				}
				pattern = s
				continue
			}

			var words []string

			switch w := v[key].(type) {
			case string:
				words = Split(w)

			case []any:
				var err error
				words, err = parseWords(w)
				if err != nil {
					return nil, "", err
				}

			default:
				return nil, "", fmt.Errorf("keywords.%s: %T (%w)", key, w, errors.ErrInvalidType)
			}

			groups = append(groups, Group{Scope: key, Words: words})
		}

		return groups, pattern, nil

	default:
		return nil, "", fmt.Errorf("keywords: %T (%w)", raw, errors.ErrInvalidType)
	}
}

func parseWords(list []any) ([]string, error) {
	words := []string{}

	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("keyword must be a string, got %T (%w)", item, errors.ErrInvalidType)
		}
		words = append(words, s)
	}

	return words, nil
}
