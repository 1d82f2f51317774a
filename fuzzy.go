package dawgo

import (
	"bytes"
	"sort"
)

// ReplaceTable is a compiled character-substitution table for fuzzy
// lookup (§3 "Fuzzy-replacement table", §4.6). Build one with
// CompileReplaces.
type ReplaceTable struct {
	groups map[byte][]replaceEntry
}

type replaceEntry struct {
	from []byte
	to   []byte
}

// CompileReplaces compiles a {from: to} byte-sequence mapping into a
// ReplaceTable. It rejects mapping if any value also appears as a key,
// which would admit infinite substitution chains (§3 invariant a).
//
// Entries are grouped by the first byte of from and, within each group,
// ordered by descending length so the longest applicable match is tried
// first (§4.6 "longer keys are tried before shorter keys").
func CompileReplaces(mapping map[string]string) (*ReplaceTable, error) {
	for _, to := range mapping {
		if _, isKey := mapping[to]; isKey {
			return nil, ErrInvalidReplaceTable
		}
	}

	rt := &ReplaceTable{groups: make(map[byte][]replaceEntry)}
	for from, to := range mapping {
		fb, tb := []byte(from), []byte(to)
		if len(fb) == 0 {
			continue
		}
		rt.groups[fb[0]] = append(rt.groups[fb[0]], replaceEntry{from: fb, to: tb})
	}
	for k := range rt.groups {
		entries := rt.groups[k]
		sort.Slice(entries, func(i, j int) bool {
			return len(entries[i].from) > len(entries[j].from)
		})
		rt.groups[k] = entries
	}
	return rt, nil
}

func (rt *ReplaceTable) entriesFor(b byte) []replaceEntry {
	if rt == nil {
		return nil
	}
	return rt.groups[b]
}

// fuzzyWalker performs the recursive backtracking walk of §4.6: at each
// query position it tries every replacement-table entry whose `from` is a
// prefix of the remaining query (longest first), then the literal next
// byte, following each candidate through the Dictionary before recursing.
type fuzzyWalker struct {
	dict  *dictionary
	table *ReplaceTable
	query []byte
}

// walk drives the search from index at query position qpos, with out the
// bytes accumulated so far. onTerminal is invoked once per path that
// consumes the whole query.
func (w *fuzzyWalker) walk(index uint32, qpos int, out []byte, onTerminal func(index uint32, out []byte) error) error {
	if qpos == len(w.query) {
		return onTerminal(index, out)
	}

	rest := w.query[qpos:]

	for _, e := range w.table.entriesFor(rest[0]) {
		if len(e.from) > len(rest) || !bytes.Equal(rest[:len(e.from)], e.from) {
			continue
		}
		idx := index
		ok := true
		for _, b := range e.to {
			next, found, err := w.dict.followChar(b, idx)
			if err != nil {
				return err
			}
			if !found {
				ok = false
				break
			}
			idx = next
		}
		if !ok {
			continue
		}
		nextOut := make([]byte, len(out)+len(e.to))
		copy(nextOut, out)
		copy(nextOut[len(out):], e.to)
		if err := w.walk(idx, qpos+len(e.from), nextOut, onTerminal); err != nil {
			return err
		}
	}

	next, found, err := w.dict.followChar(rest[0], index)
	if err != nil {
		return err
	}
	if found {
		nextOut := make([]byte, len(out)+1)
		copy(nextOut, out)
		nextOut[len(out)] = rest[0]
		if err := w.walk(next, qpos+1, nextOut, onTerminal); err != nil {
			return err
		}
	}
	return nil
}

// similarKeysOn runs the fuzzy walk against dict (a plain membership or
// integer-valued automaton: "terminal" means has_value) and returns every
// matching key, deduplicated by first occurrence.
func similarKeysOn(dict *dictionary, query []byte, table *ReplaceTable) ([]string, error) {
	w := &fuzzyWalker{dict: dict, table: table, query: query}
	seen := make(map[string]bool)
	var out []string
	err := w.walk(rootIndex, 0, nil, func(index uint32, key []byte) error {
		has, err := dict.hasValue(index)
		if err != nil {
			return err
		}
		if !has {
			return nil
		}
		s := string(key)
		if seen[s] {
			return nil
		}
		seen[s] = true
		out = append(out, s)
		return nil
	})
	return out, err
}

// rawSimilarPairsOn runs the fuzzy walk against a payload-encoded automaton
// (byte- or record-valued: "terminal" means key||SEP is a valid prefix)
// and returns every (key, raw base64 payload) pair, deduplicated by the
// pair as a whole since a single key may legitimately carry several values.
func rawSimilarPairsOn(dict *dictionary, gd *guide, query []byte, table *ReplaceTable) ([][2][]byte, error) {
	w := &fuzzyWalker{dict: dict, table: table, query: query}
	seen := make(map[string]bool)
	var out [][2][]byte
	err := w.walk(rootIndex, 0, nil, func(index uint32, key []byte) error {
		sepIdx, ok, err := dict.followChar(payloadSep, index)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		comp := newCompleter(dict, gd)
		comp.start(sepIdx, nil)
		for {
			more, err := comp.next()
			if err != nil {
				return err
			}
			if !more {
				break
			}
			pairKey := string(key) + "\x00" + string(comp.key)
			if seen[pairKey] {
				continue
			}
			seen[pairKey] = true
			out = append(out, [2][]byte{
				append([]byte(nil), key...),
				append([]byte(nil), comp.key...),
			})
		}
		return nil
	})
	return out, err
}

// SimilarKeys is BytesDAWG's fuzzy lookup: every key reachable from query
// under table that has at least one value, deduplicated.
func (d *BytesDAWG) SimilarKeys(query string, table *ReplaceTable) ([]string, error) {
	if d.base.closed {
		return nil, ErrNotLoaded
	}
	pairs, err := rawSimilarPairsOn(&d.base.oc.dict, &d.base.oc.gd, []byte(query), table)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, p := range pairs {
		k := string(p[0])
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out, nil
}

// SimilarItems is BytesDAWG's fuzzy lookup returning decoded (key, value)
// pairs.
func (d *BytesDAWG) SimilarItems(query string, table *ReplaceTable) ([]BytesItem, error) {
	if d.base.closed {
		return nil, ErrNotLoaded
	}
	pairs, err := rawSimilarPairsOn(&d.base.oc.dict, &d.base.oc.gd, []byte(query), table)
	if err != nil {
		return nil, err
	}
	out := make([]BytesItem, 0, len(pairs))
	for _, p := range pairs {
		v, err := decodeBytesPayload(p[1])
		if err != nil {
			return nil, err
		}
		out = append(out, BytesItem{Key: string(p[0]), Value: v})
	}
	return out, nil
}

// SimilarItemValues is BytesDAWG's fuzzy lookup returning only the
// decoded values, in the order their (key, value) pairs were produced.
func (d *BytesDAWG) SimilarItemValues(query string, table *ReplaceTable) ([][]byte, error) {
	items, err := d.SimilarItems(query, table)
	if err != nil {
		return nil, err
	}
	out := make([][]byte, len(items))
	for i, it := range items {
		out[i] = it.Value
	}
	return out, nil
}

// SimilarKeys is RecordDAWG's fuzzy lookup: every key reachable from
// query under table that has at least one record, deduplicated.
func (d *RecordDAWG) SimilarKeys(query string, table *ReplaceTable) ([]string, error) {
	if d.base.closed {
		return nil, ErrNotLoaded
	}
	pairs, err := rawSimilarPairsOn(&d.base.oc.dict, &d.base.oc.gd, []byte(query), table)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var out []string
	for _, p := range pairs {
		k := string(p[0])
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out, nil
}

// SimilarItems is RecordDAWG's fuzzy lookup returning decoded (key,
// record) pairs.
func (d *RecordDAWG) SimilarItems(query string, table *ReplaceTable) ([]RecordItem, error) {
	if d.base.closed {
		return nil, ErrNotLoaded
	}
	pairs, err := rawSimilarPairsOn(&d.base.oc.dict, &d.base.oc.gd, []byte(query), table)
	if err != nil {
		return nil, err
	}
	out := make([]RecordItem, 0, len(pairs))
	for _, p := range pairs {
		packed, err := decodeBytesPayload(p[1])
		if err != nil {
			return nil, err
		}
		rec, err := d.format.unpack(packed)
		if err != nil {
			return nil, err
		}
		out = append(out, RecordItem{Key: string(p[0]), Record: rec})
	}
	return out, nil
}

// SimilarItemValues is RecordDAWG's fuzzy lookup returning only the
// decoded records.
func (d *RecordDAWG) SimilarItemValues(query string, table *ReplaceTable) ([][]int64, error) {
	items, err := d.SimilarItems(query, table)
	if err != nil {
		return nil, err
	}
	out := make([][]int64, len(items))
	for i, it := range items {
		out[i] = it.Record
	}
	return out, nil
}
