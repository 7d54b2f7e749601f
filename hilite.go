// Package hilite compiles declarative language grammars into a streaming
// lexer and renders highlighted source as HTML.
package hilite

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/gopatchy/hilite/pkg/log"
)

// LanguageFunc builds a language definition. It is called once per
// registration and should return a fresh value.
type LanguageFunc func(h *Highlighter) (*Language, error)

// Highlighter is a language registry plus the options, plugins and error
// policy applied to highlight calls. It is safe for concurrent use.
type Highlighter struct {
	mu sync.RWMutex

	options   Options
	safeMode  bool
	plugins   []any
	languages map[string]*Language
	order     []string
	aliases   map[string]string
	compiled  map[string]*CompiledLanguage
}

// New creates and returns a [Highlighter] with no languages, default
// options and safe mode on.
func New() *Highlighter {
	return &Highlighter{
		safeMode:  true,
		languages: map[string]*Language{},
		aliases:   map[string]string{},
		compiled:  map[string]*CompiledLanguage{},
	}
}

// Configure replaces the options. Compiled languages are discarded since
// they depend on CommonKeywords.
func (h *Highlighter) Configure(opts Options) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.options = opts
	h.compiled = map[string]*CompiledLanguage{}
}

// Options returns the current options with defaults filled in.
func (h *Highlighter) Options() Options {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.options.withDefaults()
}

// SetSafeMode selects between safe mode (the default), where parse errors
// degrade into a plain result, and strict mode, where they are returned.
func (h *Highlighter) SetSafeMode(safe bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.safeMode = safe
}

func (h *Highlighter) SafeMode() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.safeMode
}

func plainTextLanguage() *Language {
	return &Language{
		Name:              "Plain text",
		DisableAutodetect: true,
	}
}

// RegisterLanguage adds or replaces a language. In safe mode a failing
// factory is logged and replaced by a plain text stand-in; in strict mode
// its error is returned and nothing is registered.
func (h *Highlighter) RegisterLanguage(name string, fn LanguageFunc) error {
	lang, err := buildLanguage(h, fn)
	if err != nil {
		log.Warnf("Language definition for '%s' could not be registered.", name)

		if !h.SafeMode() {
			return fmt.Errorf("%s: %w (%w)", name, err, ErrLanguageRegistration)
		}

		log.Warnf("%v", err)

		lang = plainTextLanguage()
	}

	if lang.Name == "" {
		lang.Name = name
	}

	key := strings.ToLower(name)

	h.mu.Lock()

	if _, found := h.languages[key]; !found {
		h.order = append(h.order, key)
	}

	h.languages[key] = lang
	delete(h.compiled, key)

	h.mu.Unlock()

	h.RegisterAliases(lang.Aliases, key)

	log.Debugf("[%s] registered (%s)", key, lang.Name)

	return nil
}

func buildLanguage(h *Highlighter, fn LanguageFunc) (lang *Language, err error) {
	defer func() {
		r := recover()
		if r != nil {
			lang = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	lang, err = fn(h)
	if err == nil && lang == nil {
		err = fmt.Errorf("nil language (%w)", ErrInvalidGrammar)
	}

	return lang, err
}

// UnregisterLanguage removes a language and every alias pointing at it.
func (h *Highlighter) UnregisterLanguage(name string) {
	key := strings.ToLower(name)

	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.languages, key)
	delete(h.compiled, key)

	h.order = slices.DeleteFunc(h.order, func(k string) bool {
		return k == key
	})

	for alias, target := range h.aliases {
		if target == key {
			delete(h.aliases, alias)
		}
	}
}

// RegisterAliases points each alias at languageName.
func (h *Highlighter) RegisterAliases(aliases []string, languageName string) {
	if len(aliases) == 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, alias := range aliases {
		h.aliases[strings.ToLower(alias)] = strings.ToLower(languageName)
	}
}

// GetLanguage looks a language up by name or alias, ignoring case. It
// returns nil when nothing matches.
func (h *Highlighter) GetLanguage(name string) *Language {
	h.mu.RLock()
	defer h.mu.RUnlock()

	_, lang := h.resolve(name)

	return lang
}

func (h *Highlighter) resolve(name string) (string, *Language) {
	key := strings.ToLower(name)

	lang, found := h.languages[key]
	if found {
		return key, lang
	}

	key = h.aliases[key]

	return key, h.languages[key]
}

// ListLanguages returns registered names in registration order.
func (h *Highlighter) ListLanguages() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.order)
}

// AutoDetection reports whether name is registered and takes part in
// auto-detection.
func (h *Highlighter) AutoDetection(name string) bool {
	lang := h.GetLanguage(name)
	return lang != nil && !lang.DisableAutodetect
}

// CompiledLanguage returns the compiled form of a registered language,
// compiling it on first use.
func (h *Highlighter) CompiledLanguage(name string) (*CompiledLanguage, error) {
	h.mu.RLock()
	key, lang := h.resolve(name)
	cl := h.compiled[key]
	common := h.options.withDefaults().CommonKeywords
	h.mu.RUnlock()

	if lang == nil {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownLanguage)
	}

	if cl != nil {
		return cl, nil
	}

	cl, err := compileLanguage(lang, common)
	if err != nil {
		return nil, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	// A concurrent re-registration wins over this compile.
	if h.languages[key] == lang {
		h.compiled[key] = cl
	}

	return cl, nil
}
