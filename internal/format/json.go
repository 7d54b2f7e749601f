package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

func jsonDecode(in []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(in))

	var v any

	err := dec.Decode(&v)
	if err != nil {
		return nil, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after document")
	}

	return v, nil
}

func jsonEncode(indent string) func(any) ([]byte, error) {
	return func(v any) ([]byte, error) {
		buf := &bytes.Buffer{}

		enc := json.NewEncoder(buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", indent)

		err := enc.Encode(v)
		if err != nil {
			return nil, err
		}

		return buf.Bytes(), nil
	}
}
