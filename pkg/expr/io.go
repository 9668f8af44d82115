package expr

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	arborerrors "github.com/matzehuels/arbor/pkg/errors"
)

// Format is a serialization format for expressions.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the format from a file extension.
// Unknown extensions default to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Read decodes and validates an expression from r.
func Read(r io.Reader, format Format) (*Node, error) {
	var n Node
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&n); err != nil {
			return nil, arborerrors.Wrap(arborerrors.ErrCodeInvalidDocument, err, "decode yaml")
		}
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(&n); err != nil {
			return nil, arborerrors.Wrap(arborerrors.ErrCodeInvalidDocument, err, "decode json")
		}
	default:
		return nil, arborerrors.New(arborerrors.ErrCodeUnsupported, "unsupported format %q", format)
	}
	if err := n.Validate(); err != nil {
		return nil, arborerrors.Wrap(arborerrors.ErrCodeInvalidDocument, err, "validate")
	}
	return &n, nil
}

// ReadFile reads an expression from path, inferring the format from its
// extension.
func ReadFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, arborerrors.Wrap(arborerrors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	n, err := Read(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}

// Write encodes n as indented JSON.
func Write(w io.Writer, n *Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(n)
}

// Marshal encodes n as compact JSON. The encoding is stable and is used for
// content hashing.
func Marshal(n *Node) ([]byte, error) {
	return json.Marshal(n)
}

// Unmarshal decodes and validates compact JSON produced by Marshal.
func Unmarshal(data []byte) (*Node, error) {
	return Read(bytes.NewReader(data), FormatJSON)
}
