package main

import (
	"testing"

	"github.com/gopatchy/hilite/languages"
)

func TestColorize(t *testing.T) {
	t.Parallel()

	h, err := languages.Default()
	if err != nil {
		t.Fatalf("Failed to register languages: %v", err)
	}

	got, err := colorize(h, "-old\n+new\n same\n")
	if err != nil {
		t.Fatalf("Failed to colorize: %v", err)
	}

	expected := "\033[31m-old\033[0m\n\033[32m+new\033[0m\n same\n"
	if got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}
