package hilite_test

import (
	"testing"

	"github.com/gopatchy/hilite"
)

func fooLanguage(superset string) *hilite.Language {
	return &hilite.Language{
		Mode: hilite.Mode{
			Keywords: hilite.Words("foo"),
		},
		SupersetOf: superset,
	}
}

func TestAutoSupersetTieBreak(t *testing.T) {
	t.Parallel()

	for _, order := range [][]string{{"a", "b"}, {"b", "a"}} {
		h := hilite.New()
		register(t, h, "a", fooLanguage(""))
		register(t, h, "b", fooLanguage("a"))

		result, err := h.HighlightAuto("foo", order...)
		if err != nil {
			t.Fatalf("Failed to auto-detect: %v", err)
		}

		if result.Language != "a" {
			t.Errorf("Order %v: expected a, got %q", order, result.Language)
		}

		if result.SecondBest == nil || result.SecondBest.Language != "b" {
			t.Errorf("Order %v: expected b as second best, got %+v", order, result.SecondBest)
		}
	}
}

func TestAutoPicksMostRelevant(t *testing.T) {
	t.Parallel()

	h := hilite.New()

	register(t, h, "low", &hilite.Language{
		Mode: hilite.Mode{Keywords: hilite.Words("foo")},
	})

	register(t, h, "high", &hilite.Language{
		Mode: hilite.Mode{Keywords: hilite.Words("foo|5")},
	})

	result, err := h.HighlightAuto("foo")
	if err != nil {
		t.Fatalf("Failed to auto-detect: %v", err)
	}

	if result.Language != "high" || result.Relevance != 5 {
		t.Errorf("Expected high with relevance 5, got %q with %d", result.Language, result.Relevance)
	}

	if result.SecondBest.Language != "low" {
		t.Errorf("Expected low as second best, got %q", result.SecondBest.Language)
	}

	if result.Code != "foo" {
		t.Errorf("Expected code to be recorded, got %q", result.Code)
	}
}

func TestAutoSkipsDisabledAndUnknown(t *testing.T) {
	t.Parallel()

	h := hilite.New()

	register(t, h, "hidden", &hilite.Language{
		Mode:              hilite.Mode{Keywords: hilite.Words("foo|10")},
		DisableAutodetect: true,
	})

	register(t, h, "shown", fooLanguage(""))

	result, err := h.HighlightAuto("foo", "hidden", "shown", "missing")
	if err != nil {
		t.Fatalf("Failed to auto-detect: %v", err)
	}

	if result.Language != "shown" {
		t.Errorf("Expected shown, got %q", result.Language)
	}

	if h.AutoDetection("hidden") || h.AutoDetection("missing") {
		t.Errorf("Expected auto-detection to be off for hidden and missing")
	}
}

func TestAutoIllegalScoresZero(t *testing.T) {
	t.Parallel()

	h := hilite.New()

	register(t, h, "strictFoo", &hilite.Language{
		Mode: hilite.Mode{
			Keywords: hilite.Words("foo|10"),
			Illegal:  `!`,
		},
	})

	result, err := h.HighlightAuto("foo!")
	if err != nil {
		t.Fatalf("Failed to auto-detect: %v", err)
	}

	if result.Language != "" {
		t.Errorf("Expected the plain text baseline, got %q", result.Language)
	}

	if result.Value != "foo!" {
		t.Errorf("Expected escaped input, got %q", result.Value)
	}

	if result.SecondBest == nil || !result.SecondBest.Illegal {
		t.Errorf("Expected the illegal result as second best")
	}
}

func TestAutoDefaultCandidates(t *testing.T) {
	t.Parallel()

	h := hilite.New()
	h.Configure(hilite.Options{Languages: []string{"one"}})

	register(t, h, "one", &hilite.Language{
		Mode: hilite.Mode{Keywords: hilite.Words("x")},
	})

	register(t, h, "two", &hilite.Language{
		Mode: hilite.Mode{Keywords: hilite.Words("x|9")},
	})

	result, err := h.HighlightAuto("x")
	if err != nil {
		t.Fatalf("Failed to auto-detect: %v", err)
	}

	if result.Language != "one" {
		t.Errorf("Expected only the configured candidates, got %q", result.Language)
	}
}

func TestAutoEmptyInput(t *testing.T) {
	t.Parallel()

	h := hilite.New()
	register(t, h, "foo", fooLanguage(""))

	result, err := h.HighlightAuto("")
	if err != nil {
		t.Fatalf("Failed to auto-detect: %v", err)
	}

	if result.Language != "" || result.Relevance != 0 || result.Value != "" {
		t.Errorf("Expected an empty plain text result, got %+v", result)
	}
}
