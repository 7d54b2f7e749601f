package main

import (
	"fmt"
	"io/fs"
	"strings"
	"testing/fstest"

	"github.com/gopatchy/hilite"
	"github.com/gopatchy/hilite/internal/utils"
)

func argString(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// argList accepts a JSON array or a comma-separated string.
func argList(args map[string]any, key string) []string {
	list, err := utils.ToStringList(args[key])
	if err != nil {
		return nil
	}
	return list
}

// argFS builds an in-memory filesystem from a {path: content} argument.
func argFS(args map[string]any) (fs.FS, error) {
	files, ok := args["fileSystem"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("fileSystem must be an object of path to content")
	}

	fx := fstest.MapFS{}

	for path, content := range files {
		s, ok := content.(string)
		if !ok {
			return nil, fmt.Errorf("fileSystem[%s] must be a string, got %T", path, content)
		}

		fx[strings.TrimPrefix(path, "/")] = &fstest.MapFile{Data: []byte(s)}
	}

	return fx, nil
}

// exampleScore weighs keyword hits in a fixture's name above its prose and
// code.
func exampleScore(name string, tc *hilite.TestCase, keywords []string) int {
	fields := []struct {
		text   string
		weight int
	}{
		{name, 25},
		{tc.Description, 15},
		{tc.Language, 15},
		{tc.Code, 5},
	}

	score := 0

	for _, f := range fields {
		text := strings.ToLower(f.text)

		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				score += f.weight
			}
		}
	}

	return score
}
