package format

import (
	"bytes"

	"github.com/pelletier/go-toml/v2"
)

func tomlDecode(in []byte) (any, error) {
	v := map[string]any{}

	err := toml.Unmarshal(in, &v)
	if err != nil {
		return nil, err
	}

	return v, nil
}

func tomlEncode(v any) ([]byte, error) {
	buf := &bytes.Buffer{}

	enc := toml.NewEncoder(buf)
	enc.SetIndentTables(true)

	err := enc.Encode(v)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
