package dawgo

// completer is a stateful cursor that enumerates keys in lexicographic
// order under a given Dictionary subtree, paired against a Guide. After
// each successful call to next, key holds the bytes of the current
// completion (prefix included).
type completer struct {
	dict *dictionary
	gd   *guide

	key        []byte
	indexStack []uint32
	lastIndex  uint32 // ROOT before the first yield
}

func newCompleter(d *dictionary, g *guide) *completer {
	return &completer{dict: d, gd: g}
}

// start resets the cursor to enumerate from startIndex, with prefixBytes as
// the already-consumed key prefix. If the automaton has no Guide image the
// cursor is left empty and next always returns false.
func (c *completer) start(startIndex uint32, prefixBytes []byte) {
	c.key = append(c.key[:0], prefixBytes...)
	c.lastIndex = rootIndex
	c.indexStack = c.indexStack[:0]
	if c.gd.size() > 0 {
		c.indexStack = append(c.indexStack, startIndex)
	}
}

// next advances to the next key in lexicographic order, returning false at
// the end of enumeration. It returns ErrStructuralMismatch if the Guide
// claims a transition the Dictionary does not have.
func (c *completer) next() (bool, error) {
	if len(c.indexStack) == 0 {
		return false, nil
	}
	index := c.indexStack[len(c.indexStack)-1]

	if c.lastIndex != rootIndex {
		childLabel, err := c.gd.child(index)
		if err != nil {
			return false, err
		}
		if childLabel != 0 {
			next, ok, err := c.follow(childLabel, index)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, ErrStructuralMismatch
			}
			index = next
		} else {
			for {
				siblingLabel, err := c.gd.sibling(index)
				if err != nil {
					return false, err
				}
				if len(c.key) > 0 {
					c.key = c.key[:len(c.key)-1]
				}
				c.indexStack = c.indexStack[:len(c.indexStack)-1]
				if len(c.indexStack) == 0 {
					return false, nil
				}
				index = c.indexStack[len(c.indexStack)-1]
				if siblingLabel != 0 {
					next, ok, err := c.follow(siblingLabel, index)
					if err != nil {
						return false, err
					}
					if !ok {
						return false, ErrStructuralMismatch
					}
					index = next
					break
				}
			}
		}
	}

	return c.findTerminal(index)
}

// follow descends one transition, pushing the new node and appending label
// to key.
func (c *completer) follow(label byte, index uint32) (uint32, bool, error) {
	next, ok, err := c.dict.followChar(label, index)
	if err != nil || !ok {
		return 0, false, err
	}
	c.key = append(c.key, label)
	c.indexStack = append(c.indexStack, next)
	return next, true, nil
}

// findTerminal descends the leftmost path from index until a terminal
// (has_value) node is reached.
func (c *completer) findTerminal(index uint32) (bool, error) {
	for {
		has, err := c.dict.hasValue(index)
		if err != nil {
			return false, err
		}
		if has {
			break
		}
		label, err := c.gd.child(index)
		if err != nil {
			return false, err
		}
		next, ok, err := c.follow(label, index)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, ErrStructuralMismatch
		}
		index = next
	}
	c.lastIndex = index
	return true, nil
}
