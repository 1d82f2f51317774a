package dawgo

// IntCompletionDAWG is an IntDAWG paired with a Guide: it supports ordered
// Keys/Items enumeration in addition to integer lookup. Unlike BytesDAWG
// and RecordDAWG, its leaf values are not payload-encoded — each
// completed key's value is read directly from its terminal node's leaf
// cell, the same way IntDAWG.Find does.
type IntCompletionDAWG struct {
	base completionBase
}

// IntItem is one (key, value) pair as produced by Items.
type IntItem struct {
	Key   string
	Value int
}

// OpenIntCompletion reads the Dictionary and Guide images at path.
func OpenIntCompletion(path string) (*IntCompletionDAWG, error) {
	base, err := openCompletionBase(path, openSpec{guide: true})
	if err != nil {
		return nil, err
	}
	return &IntCompletionDAWG{base: base}, nil
}

// Contains reports whether key names a complete key in the automaton.
func (d *IntCompletionDAWG) Contains(key string) (bool, error) {
	return d.base.contains([]byte(key))
}

// Find returns the value stored for key, or ErrNotFound.
func (d *IntCompletionDAWG) Find(key string) (int, error) {
	if d.base.closed {
		return 0, ErrNotLoaded
	}
	v, err := d.base.oc.dict.find([]byte(key))
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// Prefixes returns every byte-prefix of q that is itself a stored key,
// in increasing length order.
func (d *IntCompletionDAWG) Prefixes(q string) ([]string, error) {
	raw, err := d.base.prefixesOf([]byte(q))
	if err != nil {
		return nil, err
	}
	return toStrings(raw), nil
}

// Keys returns every stored key beginning with prefix, in lexicographic
// order.
func (d *IntCompletionDAWG) Keys(prefix string) ([]string, error) {
	keys, _, err := d.base.rawKeysWithValuesUnder([]byte(prefix))
	if err != nil {
		return nil, err
	}
	return toStrings(keys), nil
}

// Items returns every (key, value) pair beginning with prefix, in
// lexicographic order.
func (d *IntCompletionDAWG) Items(prefix string) ([]IntItem, error) {
	keys, values, err := d.base.rawKeysWithValuesUnder([]byte(prefix))
	if err != nil {
		return nil, err
	}
	out := make([]IntItem, len(keys))
	for i := range keys {
		out[i] = IntItem{Key: string(keys[i]), Value: int(values[i])}
	}
	return out, nil
}

// Close releases the underlying file handle. Further queries return
// ErrNotLoaded. Close is idempotent.
func (d *IntCompletionDAWG) Close() error {
	return d.base.close()
}
