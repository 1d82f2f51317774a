package dawgo

// completionBase is the shared guts of every façade that needs ordered
// enumeration (CompletionDAWG, BytesDAWG, RecordDAWG, IntCompletionDAWG):
// an open Dictionary+Guide pair plus the walk/enumerate primitives spec.md
// §4.5 describes. Each façade adds its own payload decoding on top.
type completionBase struct {
	oc     openedContainer
	closed bool
}

func openCompletionBase(path string, spec openSpec) (completionBase, error) {
	oc, err := openContainerPath(path, spec)
	if err != nil {
		return completionBase{}, err
	}
	return completionBase{oc: oc}, nil
}

func (c *completionBase) contains(key []byte) (bool, error) {
	if c.closed {
		return false, ErrNotLoaded
	}
	return c.oc.dict.contains(key)
}

func (c *completionBase) close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.oc.handle.Close()
}

// prefixesOf returns, in increasing length order, every byte-prefix of q
// that is itself a complete stored key.
func (c *completionBase) prefixesOf(q []byte) ([][]byte, error) {
	if c.closed {
		return nil, ErrNotLoaded
	}
	var out [][]byte
	index := rootIndex
	for i, ch := range q {
		next, ok, err := c.oc.dict.followChar(ch, index)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		index = next
		has, err := c.oc.dict.hasValue(index)
		if err != nil {
			return nil, err
		}
		if has {
			out = append(out, append([]byte(nil), q[:i+1]...))
		}
	}
	return out, nil
}

// walkTo follows prefix from the root and reports the node reached, or
// ok=false if prefix is not a valid path (not an error: an absent prefix
// is the ordinary "nothing under here" outcome).
func (c *completionBase) walkTo(prefix []byte) (uint32, bool, error) {
	if c.closed {
		return 0, false, ErrNotLoaded
	}
	return c.oc.dict.followBytes(prefix, rootIndex)
}

// rawKeysUnder enumerates every stored key (including any payload suffix)
// beginning with prefix, in lexicographic order. Returns nil, not an
// error, when prefix is unreachable.
func (c *completionBase) rawKeysUnder(prefix []byte) ([][]byte, error) {
	index, ok, err := c.walkTo(prefix)
	if err != nil || !ok {
		return nil, err
	}
	comp := newCompleter(&c.oc.dict, &c.oc.gd)
	comp.start(index, prefix)
	var out [][]byte
	for {
		more, err := comp.next()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		out = append(out, append([]byte(nil), comp.key...))
	}
	return out, nil
}

// rawKeysWithValuesUnder is rawKeysUnder's analogue for automata whose
// leaf values live directly at each terminal node (IntCompletionDAWG)
// rather than encoded as a payload suffix.
func (c *completionBase) rawKeysWithValuesUnder(prefix []byte) ([][]byte, []uint32, error) {
	index, ok, err := c.walkTo(prefix)
	if err != nil || !ok {
		return nil, nil, err
	}
	comp := newCompleter(&c.oc.dict, &c.oc.gd)
	comp.start(index, prefix)
	var keys [][]byte
	var values []uint32
	for {
		more, err := comp.next()
		if err != nil {
			return nil, nil, err
		}
		if !more {
			break
		}
		v, err := c.oc.dict.value(comp.lastIndex)
		if err != nil {
			return nil, nil, err
		}
		keys = append(keys, append([]byte(nil), comp.key...))
		values = append(values, v)
	}
	return keys, values, nil
}
