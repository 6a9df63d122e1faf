package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestReferenceKindFromString(t *testing.T) {
	tests := []struct {
		in   string
		want ReferenceKind
	}{
		{"LIBRARY_BLOCK", RefKindLibraryBlock},
		{"MODEL_BLOCK", RefKindModelBlock},
		{"DATA_DICTIONARY", RefKindUnknown},
		{"library_block", RefKindUnknown}, // source tokens are upper case
		{"", RefKindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ReferenceKindFromString(tt.in), "token %q", tt.in)
	}
}

func TestSolverNameFromString(t *testing.T) {
	tests := []struct {
		in   string
		want SolverName
	}{
		{"FixedStepDiscrete", SolverFixedStepDiscrete},
		{"FixedStepAuto", SolverFixedStepAuto},
		{"VariableStepAuto", SolverVariableStepAuto},
		{"VariableStepDiscrete", SolverVariableStepDiscrete},
		{"ode45", SolverUnset},
		{"", SolverUnset},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SolverNameFromString(tt.in), "token %q", tt.in)
	}
}

func TestLibraryName(t *testing.T) {
	ref := ExternalFileReference{Reference: "Regler/Joint_Interpolator"}
	assert.Equal(t, "Regler", ref.LibraryName())

	ref = ExternalFileReference{Reference: "Solo"}
	assert.Equal(t, "Solo", ref.LibraryName())

	ref = ExternalFileReference{Reference: ""}
	assert.Equal(t, "", ref.LibraryName())
}

func TestLibraryNames(t *testing.T) {
	gi := &GraphicalInterface{
		References: []ExternalFileReference{
			{Reference: "Regler/Joint_Interpolator", Kind: RefKindLibraryBlock},
			{Reference: "Sensorik/Encoder_Filter", Kind: RefKindLibraryBlock},
			{Reference: "Regler/Cascade_Controller", Kind: RefKindLibraryBlock},
			{Reference: "Plant/Arm_Dynamics", Kind: RefKindModelBlock},
			{Reference: "Util/Saturation_Dynamic", Kind: RefKindUnknown},
		},
	}

	want := []string{"Regler", "Sensorik"}
	if diff := cmp.Diff(want, gi.LibraryNames()); diff != "" {
		t.Errorf("library names mismatch (-want +got):\n%s", diff)
	}
}
