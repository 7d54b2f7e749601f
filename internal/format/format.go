// Package format decodes grammar and options documents and encodes token
// trees, choosing a codec by file extension.
package format

import (
	"fmt"
	"slices"

	"github.com/gopatchy/hilite/pkg/errors"
)

// Codec converts between bytes and generic values (maps, lists, scalars).
// Encode is nil for formats that are only read.
type Codec struct {
	Decode func([]byte) (any, error)
	Encode func(any) ([]byte, error)
}

var codecs = map[string]Codec{
	"json":        {Decode: jsonDecode, Encode: jsonEncode("")},
	"json-pretty": {Decode: jsonDecode, Encode: jsonEncode("  ")},
	"properties":  {Decode: propertiesDecode},
	"toml":        {Decode: tomlDecode, Encode: tomlEncode},
	"yaml":        {Decode: yamlDecode, Encode: yamlEncode},
	"yml":         {Decode: yamlDecode, Encode: yamlEncode},
}

func Get(name string) (*Codec, error) {
	c, found := codecs[name]
	if !found {
		return nil, fmt.Errorf("%s: %w", name, errors.ErrUnknownFormat)
	}

	return &c, nil
}

// Extensions returns every known extension, sorted.
func Extensions() []string {
	exts := []string{}
	for ext := range codecs {
		exts = append(exts, ext)
	}

	slices.Sort(exts)

	return exts
}

// DecodeOne decodes a document that must hold exactly one value.
func DecodeOne(name string, data []byte) (any, error) {
	c, err := Get(name)
	if err != nil {
		return nil, err
	}

	v, err := c.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %v (%w)", name, err, errors.ErrDecode)
	}

	return v, nil
}

func EncodeOne(name string, v any) ([]byte, error) {
	c, err := Get(name)
	if err != nil {
		return nil, err
	}

	if c.Encode == nil {
		return nil, fmt.Errorf("%s is read-only (%w)", name, errors.ErrEncode)
	}

	out, err := c.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %v (%w)", name, err, errors.ErrEncode)
	}

	return out, nil
}
