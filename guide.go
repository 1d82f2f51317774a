package dawgo

// guide is the completion-guide walker: for any node index it gives the
// first child's transition label and the next sibling's transition label,
// enabling lexicographic enumeration. Behavior on node indices that are not
// themselves reachable Dictionary states is unspecified but never reads
// out of bounds — both accessors bounds-check against the image's own
// base_size.
type guide struct {
	img      image
	hasGuide bool // false for dictionary-only automata with no Guide image
}

// child returns node i's first child's label, or 0 if i has no children.
func (g *guide) child(i uint32) (byte, error) {
	if !g.hasGuide {
		return 0, nil
	}
	return g.img.readGuideByte(i * 2)
}

// sibling returns node i's next sibling's label, or 0 if there is none.
func (g *guide) sibling(i uint32) (byte, error) {
	if !g.hasGuide {
		return 0, nil
	}
	return g.img.readGuideByte(i*2 + 1)
}

// size reports the number of bytes in the guide table (2 per node), or 0
// for an automaton built without a Guide image.
func (g *guide) size() uint32 {
	if !g.hasGuide {
		return 0
	}
	return g.img.baseSize * 2
}
