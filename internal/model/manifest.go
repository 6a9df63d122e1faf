package model

import "strings"

// ReferenceKind classifies an entry of the graphical-interface manifest.
type ReferenceKind string

// Known reference kinds. Manifests are produced by an external, evolving
// tool, so unrecognized tokens map to RefKindUnknown instead of failing;
// the raw token stays on the entry.
const (
	RefKindLibraryBlock ReferenceKind = "library_block"
	RefKindModelBlock   ReferenceKind = "model_block"
	RefKindUnknown      ReferenceKind = "unknown"
)

// ReferenceKindFromString maps a manifest Type token to a ReferenceKind.
func ReferenceKindFromString(s string) ReferenceKind {
	switch s {
	case "LIBRARY_BLOCK":
		return RefKindLibraryBlock
	case "MODEL_BLOCK":
		return RefKindModelBlock
	default:
		return RefKindUnknown
	}
}

// SolverName is the closed set of solver configurations a manifest can name.
type SolverName string

// Known solver names. Absent or unrecognized values are preserved as
// SolverUnset rather than failing the parse.
const (
	SolverUnset                SolverName = ""
	SolverFixedStepDiscrete    SolverName = "FixedStepDiscrete"
	SolverFixedStepAuto        SolverName = "FixedStepAuto"
	SolverVariableStepAuto     SolverName = "VariableStepAuto"
	SolverVariableStepDiscrete SolverName = "VariableStepDiscrete"
)

// SolverNameFromString maps a manifest SolverName token to a SolverName.
func SolverNameFromString(s string) SolverName {
	switch SolverName(s) {
	case SolverFixedStepDiscrete, SolverFixedStepAuto,
		SolverVariableStepAuto, SolverVariableStepDiscrete:
		return SolverName(s)
	default:
		return SolverUnset
	}
}

// ExternalFileReference is one manifest entry mapping a symbolic model path
// to content defined outside the current file tree.
type ExternalFileReference struct {
	// Path is the source file the reference originates from.
	Path string

	// Reference is the slash-delimited symbolic address into the model
	// namespace, e.g. "Regler/Joint_Interpolator".
	Reference string

	// SID is the originating block identifier. Manifest SIDs are stored as
	// strings by the upstream tool and are not guaranteed numeric, unlike
	// in-model block SIDs.
	SID string

	Kind ReferenceKind

	// KindRaw preserves the source Type token, useful when Kind is unknown.
	KindRaw string
}

// LibraryName returns the first segment of the symbolic reference, which
// names the library the entry points into.
func (r ExternalFileReference) LibraryName() string {
	name, _, _ := strings.Cut(r.Reference, "/")
	return strings.TrimSpace(name)
}

// GraphicalInterface is the parsed graphical-interface manifest.
type GraphicalInterface struct {
	References []ExternalFileReference
	Solver     SolverName

	// SolverRaw preserves the source token when Solver is SolverUnset but
	// the manifest carried a value.
	SolverRaw string
}

// LibraryNames returns the unique library names of the LIBRARY_BLOCK
// references, in order of first appearance.
func (g *GraphicalInterface) LibraryNames() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, r := range g.References {
		if r.Kind != RefKindLibraryBlock {
			continue
		}
		name := r.LibraryName()
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
