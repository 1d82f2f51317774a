// Package dawgo is a read-only reader for the compact double-array DAWG
// (directed acyclic word graph) file format produced by pytries/dawg and
// its C-extension sibling dawgdic. It answers membership, prefix, and
// key-completion queries against such a file without ever loading the
// whole automaton into memory, and without depending on the builder that
// produced it.
//
// See https://github.com/pytries/dawg-python for the format this reader
// is compatible with.
package dawgo

// DAWG is a read-only membership automaton: it answers whether a key
// belongs to the encoded set, and nothing else. It has no Guide image, so
// it supports no ordered enumeration.
//
// The zero value is not usable; construct with Open.
type DAWG struct {
	oc     openedContainer
	closed bool
}

// Open reads the Dictionary image at path. The automaton must have been
// produced by an external builder in this wire format; this reader never
// constructs one.
func Open(path string) (*DAWG, error) {
	oc, err := openContainerPath(path, openSpec{})
	if err != nil {
		return nil, err
	}
	return &DAWG{oc: oc}, nil
}

// Contains reports whether key names a complete key in the automaton.
func (d *DAWG) Contains(key string) (bool, error) {
	if d.closed {
		return false, ErrNotLoaded
	}
	return d.oc.dict.contains([]byte(key))
}

// SimilarKeys returns every key reachable from query by the replacement
// table's substitutions (including the identity substitution) that names
// a complete key in the automaton, deduplicated by first occurrence
// (§4.6).
func (d *DAWG) SimilarKeys(query string, table *ReplaceTable) ([]string, error) {
	if d.closed {
		return nil, ErrNotLoaded
	}
	return similarKeysOn(&d.oc.dict, []byte(query), table)
}

// Close releases the underlying file handle. Further queries return
// ErrNotLoaded. Close is idempotent.
func (d *DAWG) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	return d.oc.handle.Close()
}
