package dawgo

// IntDAWG maps string keys to unsigned integers stored directly in the
// automaton's leaf cells, with no separator or base64 encoding (§3
// "Integer-encoded leaf image").
type IntDAWG struct {
	oc     openedContainer
	closed bool
}

// OpenInt reads the Dictionary image at path.
func OpenInt(path string) (*IntDAWG, error) {
	oc, err := openContainerPath(path, openSpec{})
	if err != nil {
		return nil, err
	}
	return &IntDAWG{oc: oc}, nil
}

// Contains reports whether key names a complete key in the automaton.
func (d *IntDAWG) Contains(key string) (bool, error) {
	if d.closed {
		return false, ErrNotLoaded
	}
	return d.oc.dict.contains([]byte(key))
}

// Find returns the value stored for key, or ErrNotFound.
func (d *IntDAWG) Find(key string) (int, error) {
	if d.closed {
		return 0, ErrNotLoaded
	}
	v, err := d.oc.dict.find([]byte(key))
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// FindSentinel mirrors the source library's integer-find convention: it
// returns -1 instead of ErrNotFound when key is absent (§7 "Sentinel
// integer returns", spec.md §9). Prefer Find in new code; this exists for
// boundary compatibility with callers that expect the sentinel.
func (d *IntDAWG) FindSentinel(key string) int {
	v, err := d.Find(key)
	if err != nil {
		return -1
	}
	return v
}

// Get returns the value stored for key, or fallback if key is absent.
func (d *IntDAWG) Get(key string, fallback int) int {
	v, err := d.Find(key)
	if err != nil {
		return fallback
	}
	return v
}

// SimilarKeys returns every key reachable from query by the replacement
// table's substitutions (including the identity substitution) that names
// a complete key in the automaton, in depth-first, table-before-literal
// order, deduplicated by first occurrence (§4.6).
func (d *IntDAWG) SimilarKeys(query string, table *ReplaceTable) ([]string, error) {
	if d.closed {
		return nil, ErrNotLoaded
	}
	return similarKeysOn(&d.oc.dict, []byte(query), table)
}

// Close releases the underlying file handle. Further queries return
// ErrNotLoaded. Close is idempotent.
func (d *IntDAWG) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.oc.handle.Close()
}
