package model

import "strings"

// Mask is the per-block configuration metadata: two small scripts plus the
// declared parameters and the dialog layout.
type Mask struct {
	// Display is the script that renders the on-diagram summary text.
	Display string

	Description string

	// Initialization is the script that builds lookup tables for Display.
	Initialization string

	Help string

	Parameters []MaskParameter

	// Dialog holds the dialog-layout entries. They matter only to editing
	// UIs and are opaque to mask evaluation.
	Dialog []DialogControl
}

// Parameter returns the mask parameter with the given name, or nil.
func (m *Mask) Parameter(name string) *MaskParameter {
	for i := range m.Parameters {
		if m.Parameters[i].Name == name {
			return &m.Parameters[i]
		}
	}
	return nil
}

// MaskParamType is the closed set of mask parameter kinds.
type MaskParamType string

// Known mask parameter types. Unrecognized source tokens map to
// MaskParamUnknown; the raw token stays on the parameter.
const (
	MaskParamPopup    MaskParamType = "popup"
	MaskParamEdit     MaskParamType = "edit"
	MaskParamCheckbox MaskParamType = "checkbox"
	MaskParamString   MaskParamType = "string"
	MaskParamUnknown  MaskParamType = "unknown"
)

// MaskParamTypeFromString maps a source type token to a MaskParamType.
func MaskParamTypeFromString(s string) MaskParamType {
	switch {
	case strings.EqualFold(s, "popup"):
		return MaskParamPopup
	case strings.EqualFold(s, "edit"):
		return MaskParamEdit
	case strings.EqualFold(s, "checkbox"):
		return MaskParamCheckbox
	case strings.EqualFold(s, "string"):
		return MaskParamString
	default:
		return MaskParamUnknown
	}
}

// MaskParameter is one declared parameter of a mask. Values are stored as
// strings regardless of the declared type; popup values use the form
// "<index>. <label>" with a 1-based index.
type MaskParameter struct {
	Name string
	Type MaskParamType

	// TypeRaw preserves the source type token, useful when Type is unknown.
	TypeRaw string

	Prompt   string
	Value    *string
	Callback string
	Tunable  *bool
	Visible  *bool

	// Options are the allowed choice strings for popup parameters.
	Options []string
}

// DialogControlType is the closed set of dialog-layout entry kinds.
type DialogControlType string

// Known dialog control types.
const (
	DialogGroup    DialogControlType = "group"
	DialogText     DialogControlType = "text"
	DialogEdit     DialogControlType = "edit"
	DialogCheckbox DialogControlType = "checkbox"
	DialogPopup    DialogControlType = "popup"
	DialogUnknown  DialogControlType = "unknown"
)

// DialogControlTypeFromString maps a source type token to a DialogControlType.
func DialogControlTypeFromString(s string) DialogControlType {
	switch {
	case strings.EqualFold(s, "group"):
		return DialogGroup
	case strings.EqualFold(s, "text"):
		return DialogText
	case strings.EqualFold(s, "edit"):
		return DialogEdit
	case strings.EqualFold(s, "checkbox"):
		return DialogCheckbox
	case strings.EqualFold(s, "popup"):
		return DialogPopup
	default:
		return DialogUnknown
	}
}

// DialogControl is one dialog-layout entry. Controls may nest (groups).
type DialogControl struct {
	Type     DialogControlType
	Name     string
	Prompt   string
	Children []DialogControl
}
