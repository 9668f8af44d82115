package tree

import (
	"reflect"
	"testing"

	arborerrors "github.com/matzehuels/arbor/pkg/errors"
)

func TestSerializationNames(t *testing.T) {
	tr := New(leaf(1, 1))
	if got := tr.SerializationNames(); !reflect.DeepEqual(got, []string{"Expanded"}) {
		t.Errorf("SerializationNames() = %v", got)
	}
}

func TestSerializationRoundTrip(t *testing.T) {
	for _, expanded := range []bool{true, false} {
		src := New(leaf(1, 1), leaf(1, 1))
		src.Expanded = expanded

		dst := New(leaf(1, 1), leaf(1, 1))
		dst.Expanded = !expanded
		if err := dst.SetSerializationStrings(src.SerializationStrings()); err != nil {
			t.Fatalf("SetSerializationStrings: %v", err)
		}
		if dst.Expanded != expanded {
			t.Errorf("Expanded = %v after round trip, want %v", dst.Expanded, expanded)
		}
	}
}

func TestSerializationStrings(t *testing.T) {
	tr := New(leaf(1, 1))
	if got := tr.SerializationStrings(); !reflect.DeepEqual(got, []string{"True"}) {
		t.Errorf("expanded = %v, want [True]", got)
	}
	tr.Expanded = false
	if got := tr.SerializationStrings(); !reflect.DeepEqual(got, []string{"False"}) {
		t.Errorf("collapsed = %v, want [False]", got)
	}
}

func TestSetSerializationStringsErrors(t *testing.T) {
	tests := []struct {
		name   string
		values []string
	}{
		{"lowercase", []string{"true"}},
		{"numeric", []string{"1"}},
		{"empty token", []string{""}},
		{"no values", nil},
		{"too many values", []string{"True", "False"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(leaf(1, 1), leaf(1, 1))
			tr.Expanded = false
			err := tr.SetSerializationStrings(tt.values)
			if err == nil {
				t.Fatal("expected error")
			}
			if !arborerrors.Is(err, arborerrors.ErrCodeInvalidFormat) {
				t.Errorf("error code = %v, want %v", arborerrors.GetCode(err), arborerrors.ErrCodeInvalidFormat)
			}
			if tr.Expanded {
				t.Error("tree modified on failed decode")
			}
		})
	}
}
