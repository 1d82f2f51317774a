package dawgo

import "sort"

// BytesDAWG maps string keys to one or more arbitrary byte-string values.
// Multiple values for the same key are stored as multiple composite keys
// sharing a key||SEP prefix (§3 "Payload-encoded key image"); Get returns
// all of them.
type BytesDAWG struct {
	base completionBase
}

// BytesItem is one (key, value) pair as produced by Items.
type BytesItem struct {
	Key   string
	Value []byte
}

// OpenBytes reads the Dictionary and Guide images at path.
func OpenBytes(path string) (*BytesDAWG, error) {
	base, err := openCompletionBase(path, openSpec{guide: true})
	if err != nil {
		return nil, err
	}
	return &BytesDAWG{base: base}, nil
}

// Contains reports whether key has at least one associated value.
func (d *BytesDAWG) Contains(key string) (bool, error) {
	raws, err := d.rawValues(key)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(raws) > 0, nil
}

// Get returns every value stored for key, in lexicographic order of their
// stored (base64) encoding. Returns ErrNotFound if key has no values.
func (d *BytesDAWG) Get(key string) ([][]byte, error) {
	raws, err := d.rawValues(key)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(raws))
	for i, r := range raws {
		v, err := decodeBytesPayload(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Keys returns every user-visible key beginning with prefix, in
// lexicographic byte order, with multiplicity equal to the number of
// values stored for it.
func (d *BytesDAWG) Keys(prefix string) ([]string, error) {
	raw, err := d.base.rawKeysUnder([]byte(prefix))
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		key, _, ok := splitPayload(r)
		if !ok {
			return nil, ErrStructuralMismatch
		}
		out = append(out, string(key))
	}
	sort.Strings(out)
	return out, nil
}

// Items returns every (key, value) pair beginning with prefix, ordered
// by key in lexicographic byte order; pairs sharing a key are in
// lexicographic order of their stored (base64) encoding.
func (d *BytesDAWG) Items(prefix string) ([]BytesItem, error) {
	raw, err := d.base.rawKeysUnder([]byte(prefix))
	if err != nil {
		return nil, err
	}
	out := make([]BytesItem, 0, len(raw))
	for _, r := range raw {
		key, b64, ok := splitPayload(r)
		if !ok {
			return nil, ErrStructuralMismatch
		}
		value, err := decodeBytesPayload(b64)
		if err != nil {
			return nil, err
		}
		out = append(out, BytesItem{Key: string(key), Value: value})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Close releases the underlying file handle. Further queries return
// ErrNotLoaded. Close is idempotent.
func (d *BytesDAWG) Close() error {
	return d.base.close()
}

// rawValues returns the raw (still base64-encoded) payload suffixes
// stored for key.
func (d *BytesDAWG) rawValues(key string) ([][]byte, error) {
	if d.base.closed {
		return nil, ErrNotLoaded
	}
	full := append([]byte(key), payloadSep)
	index, ok, err := d.base.oc.dict.followBytes(full, rootIndex)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	comp := newCompleter(&d.base.oc.dict, &d.base.oc.gd)
	comp.start(index, nil)
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
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return out, nil
}
