// Package model holds the reconstructed model tree: systems, blocks, lines,
// masks and the graphical-interface manifest. Types here are pure data; they
// are produced by the domain parser and consumed by viewers and tooling.
package model

// Path represents a logical file path inside a model file tree.
type Path string

// System is one diagram level: the root model or the content of a subsystem
// block. Blocks are owned exclusively by their System; no two systems share
// a block.
type System struct {
	// Properties holds the raw <P Name="...">value</P> pairs of the system.
	Properties map[string]string

	Blocks []Block
	Lines  []Line

	// Annotations are free-floating notes inside this system.
	Annotations []Annotation

	// Chart is an optional embedded state-machine payload, carried opaquely.
	Chart *Chart
}

// Block is a single diagram node.
type Block struct {
	// Type is the block-type tag, e.g. "Gain", "SubSystem", "Reference".
	Type string

	// Name is unique within the owning System, not globally.
	Name string

	// SID is the stable per-block identifier, unique within the owning
	// System. Nil for transient blocks or when the attribute is not a
	// well-formed integer.
	SID *int

	// Position is the block rectangle parsed from the "Position" property.
	// Nil when the property is absent or malformed.
	Position *Rect

	ZOrder    *int
	Commented bool

	// CodeBlock marks MATLAB-Function-like blocks that carry a code body.
	CodeBlock bool

	// Code is the inline code body of a code-bearing block.
	Code string

	// Properties holds every raw <P> pair of the block, including the ones
	// mirrored into typed fields above.
	Properties map[string]string

	Ports []Port

	// Subsystem is the nested system owned by this block. Nil unless the
	// block is subsystem-like. A subsystem-typed block with a nil Subsystem
	// and a non-empty SystemRef is an unresolved reference.
	Subsystem *System

	// SystemRef is the raw cross-file reference name (e.g. "system_22")
	// when the nested system lives in a separate file.
	SystemRef string

	Mask *Mask

	// Annotations are note texts attached to the block.
	Annotations []string

	// Style holds optional display styling. Nil when the source carries none.
	Style *BlockStyle

	// MaskDisplay caches the mask engine's output for this block's Mask.
	// It is derived data: nil when there is no mask, no display script, or
	// the scripts fall outside the supported subset. Re-run the engine after
	// any mask mutation; never set this by hand.
	MaskDisplay *string
}

// BlockStyle groups the optional display attributes of a block.
type BlockStyle struct {
	BackgroundColor string
	ShowName        *bool
	FontSize        *int
	FontWeight      string
}

// PortDirection distinguishes input from output ports.
type PortDirection string

// Port directions as they appear in endpoint references.
const (
	PortIn  PortDirection = "in"
	PortOut PortDirection = "out"
)

// Port describes one connection point of a block.
type Port struct {
	Direction PortDirection

	// Index is the 1-based port index. Nil when the source omits it.
	Index *int

	Properties map[string]string
}

// Line is a signal connection from one source port to one or more
// destination ports.
type Line struct {
	Name string
	Src  *Endpoint
	Dst  *Endpoint

	// Points are the routing waypoints of the line.
	Points []Point

	Labels string

	// Branches carry additional destinations when the line fans out.
	Branches []Branch
}

// Branch is one fork of a branching line. Branches may nest.
type Branch struct {
	Name     string
	Dst      *Endpoint
	Points   []Point
	Labels   string
	Branches []Branch
}

// Endpoint references a port on a block, e.g. "5#out:1".
//
// The SID is kept as a string: endpoint SIDs are not guaranteed numeric
// (Stateflow blocks use forms like "47:2").
type Endpoint struct {
	SID       string
	Direction PortDirection
	PortIndex int
}

// Point is a diagram coordinate.
type Point struct {
	X int
	Y int
}

// Annotation is a free-floating note inside a system.
type Annotation struct {
	SID         string
	Text        string
	Position    string
	Interpreter string
	Properties  map[string]string
}

// Chart is an opaque state-machine payload attached to a system. The model
// does not interpret charts; it only preserves what the source provides.
type Chart struct {
	ID         *int
	Name       string
	Script     string
	Properties map[string]string
}
