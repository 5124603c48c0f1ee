package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/SEEK-Jobs/paused-dependabot-repos/pkg/yaml"
)

// ResultPrinter is an interface for writing data returned by a command.
type ResultPrinter interface {
	Print(v interface{}) error
}

// NewResultPrinter returns the ResultPrinter for the format, which must be one of 'yaml',
// 'json' or 'quiet'.
func NewResultPrinter(format string, writer io.Writer) (ResultPrinter, error) {
	switch strings.ToLower(format) {
	case "yaml":
		return NewYAMLResultPrinter(writer), nil
	case "json":
		return NewJSONResultPrinter(writer), nil
	case "quiet":
		return NewNoOpResultPrinter(), nil
	}
	return nil, fmt.Errorf("unknown output format '%s'", format)
}

// NoOpResultPrinter writes nothing.
type NoOpResultPrinter struct{}

// NewNoOpResultPrinter returns a new ResultPrinter that doesn't write anything.
func NewNoOpResultPrinter() ResultPrinter {
	return &NoOpResultPrinter{}
}

// Print implements ResultPrinter
func (p *NoOpResultPrinter) Print(v interface{}) error {
	return nil
}

// JSONResultPrinter writes data in JSON format.
type JSONResultPrinter struct {
	writer io.Writer
}

// NewJSONResultPrinter returns a new ResultPrinter that outputs JSON.
func NewJSONResultPrinter(writer io.Writer) ResultPrinter {
	return &JSONResultPrinter{writer: writer}
}

// Print implements ResultPrinter
func (p *JSONResultPrinter) Print(v interface{}) error {
	buf, err := json.Marshal(v)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(p.writer, string(buf))
	return err
}

// YAMLResultPrinter writes data in YAML format.
type YAMLResultPrinter struct {
	writer io.Writer
	codec  *yaml.Codec
}

// NewYAMLResultPrinter returns a new ResultPrinter that outputs YAML.
func NewYAMLResultPrinter(writer io.Writer) ResultPrinter {
	return &YAMLResultPrinter{writer: writer, codec: yaml.NewCodec()}
}

// Print implements ResultPrinter
func (p *YAMLResultPrinter) Print(v interface{}) error {
	buf, err := p.codec.Encode(v)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(p.writer, string(buf))
	return err
}
