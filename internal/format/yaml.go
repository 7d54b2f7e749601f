package format

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/gopatchy/hilite/pkg/errors"
)

// yamlDecode walks the node tree rather than decoding into any, so that
// grammars can share modes through anchors and "<<" merge keys and ints
// come back as int.
func yamlDecode(in []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(in))

	var doc yaml.Node

	err := dec.Decode(&doc)
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); err != io.EOF {
		return nil, fmt.Errorf("expected a single document")
	}

	return yamlValue(&doc)
}

func yamlEncode(v any) ([]byte, error) {
	buf := &bytes.Buffer{}

	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)

	err := enc.Encode(v)
	if err != nil {
		return nil, err
	}

	err = enc.Close()
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func yamlValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}

		return yamlValue(node.Content[0])

	case yaml.AliasNode:
		return yamlValue(node.Alias)

	case yaml.SequenceNode:
		list := make([]any, 0, len(node.Content))

		for _, item := range node.Content {
			v, err := yamlValue(item)
			if err != nil {
				return nil, err
			}

			list = append(list, v)
		}

		return list, nil

	case yaml.MappingNode:
		return yamlMapping(node)

	case yaml.ScalarNode:
		return yamlScalar(node)

	default:
		return nil, fmt.Errorf("yaml node kind %d (%w)", node.Kind, errors.ErrInvalidType)
	}
}

// yamlMapping applies merge keys first so local keys override them.
func yamlMapping(node *yaml.Node) (map[string]any, error) {
	m := map[string]any{}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value != "<<" {
			continue
		}

		src, err := yamlValue(node.Content[i+1])
		if err != nil {
			return nil, err
		}

		err = yamlMerge(m, src)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Content[i].Line, err)
		}
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if key == "<<" {
			continue
		}

		v, err := yamlValue(node.Content[i+1])
		if err != nil {
			return nil, err
		}

		m[key] = v
	}

	return m, nil
}

// yamlMerge copies src into dst. In a list of maps, earlier maps win.
func yamlMerge(dst map[string]any, src any) error {
	switch x := src.(type) {
	case map[string]any:
		for k, v := range x {
			dst[k] = v
		}

	case []any:
		for i := len(x) - 1; i >= 0; i-- {
			err := yamlMerge(dst, x[i])
			if err != nil {
				return err
			}
		}

	default:
		return fmt.Errorf("cannot merge %T (%w)", src, errors.ErrInvalidType)
	}

	return nil
}

func yamlScalar(node *yaml.Node) (any, error) {
	switch node.ShortTag() {
	case "!!null":
		return nil, nil

	case "!!bool":
		return strconv.ParseBool(node.Value)

	case "!!int":
		n, err := strconv.ParseInt(node.Value, 0, 64)
		if err != nil {
			return nil, err
		}

		return int(n), nil

	case "!!float":
		return strconv.ParseFloat(node.Value, 64)

	case "!!str", "!!timestamp", "!!binary":
		return node.Value, nil

	default:
		return nil, fmt.Errorf("yaml tag %s (%w)", node.ShortTag(), errors.ErrInvalidType)
	}
}
