package model

import (
	"strconv"
	"strings"
)

// Rect is an axis-aligned block rectangle, in the source convention
// [left, top, right, bottom].
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width returns the rectangle width.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the rectangle height.
func (r Rect) Height() int { return r.Bottom - r.Top }

// ParseRect parses a "[left, top, right, bottom]" geometry string. The
// second result is false when the string is not four well-formed integers.
func ParseRect(s string) (Rect, bool) {
	inner := strings.TrimSpace(s)
	inner = strings.TrimPrefix(inner, "[")
	inner = strings.TrimSuffix(inner, "]")
	parts := strings.Split(inner, ",")
	if len(parts) != 4 {
		return Rect{}, false
	}
	vals := make([]int, 4)
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Rect{}, false
		}
		vals[i] = n
	}
	return Rect{Left: vals[0], Top: vals[1], Right: vals[2], Bottom: vals[3]}, true
}

// PortAnchor returns the diagram point where a port attaches to a block
// rectangle: input ports on the left edge, output ports on the right, spaced
// evenly along the edge. index is 1-based; count is the number of ports on
// that edge. It is a pure function, usable by renderers without re-parsing.
func PortAnchor(r Rect, dir PortDirection, index, count int) Point {
	if index < 1 {
		index = 1
	}
	if count < index {
		count = index
	}
	y := r.Top + r.Height()*index/(count+1)
	if dir == PortOut {
		return Point{X: r.Right, Y: y}
	}
	return Point{X: r.Left, Y: y}
}
