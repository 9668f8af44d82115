package tree

import (
	arborerrors "github.com/matzehuels/arbor/pkg/errors"
)

// FieldExpanded is the name of the persisted expansion attribute.
const FieldExpanded = "Expanded"

// Literal tokens of the expansion attribute.
const (
	tokenTrue  = "True"
	tokenFalse = "False"
)

// EncodeExpanded returns the persisted token for v.
func EncodeExpanded(v bool) string {
	if v {
		return tokenTrue
	}
	return tokenFalse
}

// DecodeExpanded parses a persisted token. Any token other than "True" or
// "False" is a format error.
func DecodeExpanded(s string) (bool, error) {
	switch s {
	case tokenTrue:
		return true, nil
	case tokenFalse:
		return false, nil
	}
	return false, arborerrors.New(arborerrors.ErrCodeInvalidFormat, "invalid expansion state %q", s)
}

// SerializationNames returns the names of the persisted attributes.
func (t *Tree) SerializationNames() []string {
	return []string{FieldExpanded}
}

// SerializationStrings returns the persisted attribute values, in the order
// of SerializationNames.
func (t *Tree) SerializationStrings() []string {
	return []string{EncodeExpanded(t.Expanded)}
}

// SetSerializationStrings restores the persisted attributes. The tree is left
// unchanged on error.
func (t *Tree) SetSerializationStrings(values []string) error {
	if len(values) != 1 {
		return arborerrors.New(arborerrors.ErrCodeInvalidFormat, "expected 1 attribute value, got %d", len(values))
	}
	v, err := DecodeExpanded(values[0])
	if err != nil {
		return err
	}
	t.Expanded = v
	return nil
}
