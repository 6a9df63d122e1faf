package model

import "strings"

// BlockByName returns the block with the given name, or nil. Names are
// unique within a system.
func (s *System) BlockByName(name string) *Block {
	for i := range s.Blocks {
		if s.Blocks[i].Name == name {
			return &s.Blocks[i]
		}
	}
	return nil
}

// ResolvePath resolves a slash-delimited path of block names ("/Child" or
// "Child/Grandchild") to the nested system owned by the addressed block.
// An empty path resolves to the receiver. The second result is false when
// any segment is missing or names a block without a nested system.
func (s *System) ResolvePath(path string) (*System, bool) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return s, true
	}
	return s.ResolveSegments(strings.Split(trimmed, "/"))
}

// ResolveSegments is ResolvePath over pre-split name segments.
func (s *System) ResolveSegments(segments []string) (*System, bool) {
	cur := s
	for _, seg := range segments {
		blk := cur.BlockByName(seg)
		if blk == nil || blk.Subsystem == nil {
			return nil, false
		}
		cur = blk.Subsystem
	}
	return cur, true
}

// WalkBlocks visits every block in the tree depth-first in source order.
// The path holds the names of the enclosing subsystem blocks, root first;
// callers must not retain the slice across calls.
func (s *System) WalkBlocks(fn func(path []string, b *Block)) {
	s.walkBlocks(nil, fn)
}

func (s *System) walkBlocks(path []string, fn func(path []string, b *Block)) {
	for i := range s.Blocks {
		blk := &s.Blocks[i]
		fn(path, blk)
		if blk.Subsystem != nil {
			blk.Subsystem.walkBlocks(append(path, blk.Name), fn)
		}
	}
}

// FindBlocksByType returns every block whose type tag matches, with the
// full slash path of each match.
func (s *System) FindBlocksByType(blockType string) []BlockMatch {
	var out []BlockMatch
	s.WalkBlocks(func(path []string, b *Block) {
		if b.Type == blockType {
			out = append(out, BlockMatch{Path: joinBlockPath(path, b.Name), Block: b})
		}
	})
	return out
}

// BlockMatch pairs a found block with its full path in the tree.
type BlockMatch struct {
	Path  string
	Block *Block
}

// UnresolvedSubsystem reports whether the block references a nested system
// that the parser could not attach.
func (b *Block) UnresolvedSubsystem() bool {
	return b.SystemRef != "" && b.Subsystem == nil
}

func joinBlockPath(path []string, name string) string {
	if len(path) == 0 {
		return name
	}
	return strings.Join(path, "/") + "/" + name
}
