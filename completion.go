package dawgo

// CompletionDAWG is a DAWG paired with a Guide, supporting ordered
// enumeration of keys and their prefixes in addition to membership.
type CompletionDAWG struct {
	base completionBase
}

// OpenCompletion reads the Dictionary and Guide images at path.
func OpenCompletion(path string) (*CompletionDAWG, error) {
	base, err := openCompletionBase(path, openSpec{guide: true})
	if err != nil {
		return nil, err
	}
	return &CompletionDAWG{base: base}, nil
}

// Contains reports whether key names a complete key in the automaton.
func (d *CompletionDAWG) Contains(key string) (bool, error) {
	return d.base.contains([]byte(key))
}

// Prefixes returns every byte-prefix of q that is itself a stored key,
// in increasing length order.
func (d *CompletionDAWG) Prefixes(q string) ([]string, error) {
	raw, err := d.base.prefixesOf([]byte(q))
	if err != nil {
		return nil, err
	}
	return toStrings(raw), nil
}

// Keys returns every stored key beginning with prefix, in lexicographic
// order. An empty prefix enumerates the whole key set.
func (d *CompletionDAWG) Keys(prefix string) ([]string, error) {
	raw, err := d.base.rawKeysUnder([]byte(prefix))
	if err != nil {
		return nil, err
	}
	return toStrings(raw), nil
}

// SimilarKeys returns every key reachable from query by the replacement
// table's substitutions (including the identity substitution) that names
// a complete key in the automaton, deduplicated by first occurrence
// (§4.6).
func (d *CompletionDAWG) SimilarKeys(query string, table *ReplaceTable) ([]string, error) {
	if d.base.closed {
		return nil, ErrNotLoaded
	}
	return similarKeysOn(&d.base.oc.dict, []byte(query), table)
}

// Close releases the underlying file handle. Further queries return
// ErrNotLoaded. Close is idempotent.
func (d *CompletionDAWG) Close() error {
	return d.base.close()
}

func toStrings(raw [][]byte) []string {
	if raw == nil {
		return nil
	}
	out := make([]string, len(raw))
	for i, b := range raw {
		out[i] = string(b)
	}
	return out
}
