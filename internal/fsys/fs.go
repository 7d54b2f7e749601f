// Package fsys resolves grammar and options paths on an fs.FS. Paths may be
// absolute; the leading slash is dropped so os.DirFS("/") and in-memory
// filesystems accept the same names.
package fsys

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/gopatchy/hilite/internal/format"
	"github.com/gopatchy/hilite/internal/utils"
)

type FS struct {
	fsys fs.FS
}

func New(fsys fs.FS) *FS {
	return &FS{
		fsys: fsys,
	}
}

func (f *FS) ReadFile(name string) ([]byte, error) {
	return fs.ReadFile(f.fsys, rel(name))
}

func (f *FS) exists(name string) bool {
	_, err := fs.Stat(f.fsys, rel(name))
	return err == nil
}

// FindFile returns path with the first format extension that exists, or "".
func (f *FS) FindFile(name string) string {
	for _, ext := range format.Extensions() {
		candidate := name + "." + ext
		if f.exists(candidate) {
			return candidate
		}
	}

	return ""
}

// GlobFiles returns every match of pattern whose extension is a known
// format, keeping the caller's absolute or relative form.
func (f *FS) GlobFiles(pattern string) ([]string, error) {
	matches, err := fs.Glob(f.fsys, rel(pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}

	ret := []string{}

	for _, match := range matches {
		if _, err := format.Get(utils.Ext(match)); err != nil {
			continue
		}

		if strings.HasPrefix(pattern, "/") {
			match = "/" + match
		}

		ret = append(ret, match)
	}

	return ret, nil
}

func rel(name string) string {
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if name == "" {
		return "."
	}

	return name
}
