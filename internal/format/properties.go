package format

import (
	"fmt"
	"strings"

	"github.com/magiconair/properties"
)

// propertiesDecode turns dotted keys into nested maps. Values stay strings.
func propertiesDecode(in []byte) (any, error) {
	p, err := properties.Load(in, properties.UTF8)
	if err != nil {
		return nil, err
	}

	root := map[string]any{}

	for _, key := range p.Keys() {
		err := setPath(root, strings.Split(key, "."), p.MustGetString(key))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
	}

	return root, nil
}

func setPath(m map[string]any, path []string, value string) error {
	for _, part := range path[:len(path)-1] {
		next, found := m[part]
		if !found {
			next = map[string]any{}
			m[part] = next
		}

		child, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("%s is both a value and a section", part)
		}

		m = child
	}

	m[path[len(path)-1]] = value

	return nil
}
