package hilite

import (
	"fmt"
	"reflect"
)

// BeforeHighlightContext is handed to BeforeHighlighter plugins. Plugins may
// rewrite Code or Language, or set Result to skip the pass entirely.
type BeforeHighlightContext struct {
	Code     string
	Language string
	Result   *Result
}

type BeforeHighlighter interface {
	BeforeHighlight(ctx *BeforeHighlightContext)
}

type AfterHighlighter interface {
	AfterHighlight(result *Result)
}

// AddPlugin registers p, which must implement BeforeHighlighter,
// AfterHighlighter or both, and be comparable so RemovePlugin can find it.
func (h *Highlighter) AddPlugin(p any) error {
	_, before := p.(BeforeHighlighter)
	_, after := p.(AfterHighlighter)

	if !before && !after {
		return fmt.Errorf("plugin %T implements no hooks (%w)", p, ErrInvalidOption)
	}

	if !reflect.TypeOf(p).Comparable() {
		return fmt.Errorf("plugin %T is not comparable, use a pointer (%w)", p, ErrInvalidOption)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.plugins = append(h.plugins, p)

	return nil
}

// RemovePlugin unregisters p. Values AddPlugin would reject are ignored.
func (h *Highlighter) RemovePlugin(p any) {
	if p == nil || !reflect.TypeOf(p).Comparable() {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for i, plugin := range h.plugins {
		if plugin == p {
			h.plugins = append(h.plugins[:i:i], h.plugins[i+1:]...)
			return
		}
	}
}

func (h *Highlighter) pluginList() []any {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return append([]any{}, h.plugins...)
}

func (h *Highlighter) fireBeforeHighlight(ctx *BeforeHighlightContext) {
	for _, p := range h.pluginList() {
		if bh, ok := p.(BeforeHighlighter); ok {
			bh.BeforeHighlight(ctx)
		}
	}
}

func (h *Highlighter) fireAfterHighlight(result *Result) {
	for _, p := range h.pluginList() {
		if ah, ok := p.(AfterHighlighter); ok {
			ah.AfterHighlight(result)
		}
	}
}
