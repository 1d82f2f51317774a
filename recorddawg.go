package dawgo

import "sort"

// RecordDAWG maps string keys to one or more fixed-layout integer tuples,
// packed per a format string (§6 "Record automaton wrapper"). Multiple
// records for the same key are stored the same way BytesDAWG stores
// multiple byte-string values.
type RecordDAWG struct {
	base   completionBase
	format *recordFormat
}

// RecordItem is one (key, record) pair as produced by Items.
type RecordItem struct {
	Key    string
	Record []int64
}

// OpenRecord reads the format header, Dictionary, and Guide images at
// path. The record format is read from the file's own leading header; a
// non-empty format must equal that header's format string, and an empty
// format skips the check.
func OpenRecord(path string, format string) (*RecordDAWG, error) {
	base, err := openCompletionBase(path, openSpec{recordHeader: true, guide: true})
	if err != nil {
		return nil, err
	}
	if base.oc.format == nil {
		base.close()
		return nil, malformed("record-header", 0, ErrMalformed)
	}
	if format != "" && format != base.oc.format.raw {
		base.close()
		return nil, malformed("record-header", 0, ErrMalformed)
	}
	return &RecordDAWG{base: base, format: base.oc.format}, nil
}

// Contains reports whether key has at least one associated record.
func (d *RecordDAWG) Contains(key string) (bool, error) {
	raws, err := d.rawValues(key)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(raws) > 0, nil
}

// Get returns every record stored for key. Returns ErrNotFound if key has
// no records.
func (d *RecordDAWG) Get(key string) ([][]int64, error) {
	raws, err := d.rawValues(key)
	if err != nil {
		return nil, err
	}
	out := make([][]int64, len(raws))
	for i, r := range raws {
		packed, err := decodeBytesPayload(r)
		if err != nil {
			return nil, err
		}
		rec, err := d.format.unpack(packed)
		if err != nil {
			return nil, err
		}
		out[i] = rec
	}
	return out, nil
}

// Keys returns every user-visible key beginning with prefix, in
// lexicographic byte order, with multiplicity equal to the number of
// records stored for it.
func (d *RecordDAWG) Keys(prefix string) ([]string, error) {
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

// Items returns every (key, record) pair beginning with prefix, in
// lexicographic order of their stored encoding.
func (d *RecordDAWG) Items(prefix string) ([]RecordItem, error) {
	raw, err := d.base.rawKeysUnder([]byte(prefix))
	if err != nil {
		return nil, err
	}
	out := make([]RecordItem, 0, len(raw))
	for _, r := range raw {
		key, b64, ok := splitPayload(r)
		if !ok {
			return nil, ErrStructuralMismatch
		}
		packed, err := decodeBytesPayload(b64)
		if err != nil {
			return nil, err
		}
		rec, err := d.format.unpack(packed)
		if err != nil {
			return nil, err
		}
		out = append(out, RecordItem{Key: string(key), Record: rec})
	}
	return out, nil
}

// Close releases the underlying file handle. Further queries return
// ErrNotLoaded. Close is idempotent.
func (d *RecordDAWG) Close() error {
	return d.base.close()
}

func (d *RecordDAWG) rawValues(key string) ([][]byte, error) {
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
