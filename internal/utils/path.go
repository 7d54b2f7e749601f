package utils

import (
	"path/filepath"
	"strings"
)

func Ext(path string) string {
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

// IsStdin reports whether path is "-", optionally with a format extension
// such as "-.yaml".
func IsStdin(path string) bool {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) == "-"
}

// Stem returns the file name without directory or extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
