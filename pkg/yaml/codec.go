package yaml

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

const (
	indentWidth = 2
)

// Codec encodes values as YAML documents.
type Codec struct{}

// NewCodec returns a new YAML Codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Encode returns the YAML document for the value. Struct fields are encoded using their yaml
// tags, so field order follows the struct definition.
func (c *Codec) Encode(in interface{}) ([]byte, error) {
	var buf bytes.Buffer
	e := yaml.NewEncoder(&buf)
	e.SetIndent(indentWidth)

	if err := e.Encode(in); err != nil {
		return nil, err
	}

	if err := e.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
