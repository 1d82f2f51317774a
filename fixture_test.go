package dawgo

// In-memory double-array fixture encoder, for this package's own tests
// only. It is a deliberately simple (unminimized, one-offset-search-loop)
// double-array trie construction — nothing like the real dawgdic/pytries
// builder, and not exported. Its only job is handing the reader's tests
// byte-identical-shaped input: cells that decode under exactly the same
// bit-field rules unit.go implements (§4.1, §4.2).
//
// See original_source/scripts/generate_fixtures.py and
// original_source/scripts/test_parity.py for the role fixture generation
// plays in validating a DAWG reader against known key sets.

import (
	"bytes"
	"encoding/binary"
	"encoding/base64"
	"sort"
)

type fixtureTrieNode struct {
	idx           uint32
	incomingLabel byte
	children      map[byte]*fixtureTrieNode
	hasLeaf       bool
	hasLeafValue  bool
	leafValue     uint32
}

func newFixtureTrieNode() *fixtureTrieNode {
	return &fixtureTrieNode{children: make(map[byte]*fixtureTrieNode)}
}

func (n *fixtureTrieNode) insert(key []byte, leafValue *uint32) {
	cur := n
	for _, b := range key {
		child, ok := cur.children[b]
		if !ok {
			child = newFixtureTrieNode()
			cur.children[b] = child
		}
		cur = child
	}
	cur.hasLeaf = true
	if leafValue != nil {
		cur.hasLeafValue = true
		cur.leafValue = *leafValue
	}
}

type fixtureCellBuilder struct {
	cells        []uint32
	used         []bool
	guideChild   []byte
	guideSibling []byte
}

func (cb *fixtureCellBuilder) ensure(n uint32) {
	for uint32(len(cb.cells)) <= n {
		cb.cells = append(cb.cells, 0)
		cb.used = append(cb.used, false)
		cb.guideChild = append(cb.guideChild, 0)
		cb.guideSibling = append(cb.guideSibling, 0)
	}
}

func (cb *fixtureCellBuilder) alloc(idx uint32) {
	cb.ensure(idx)
	cb.used[idx] = true
}

func (cb *fixtureCellBuilder) isUsed(idx uint32) bool {
	if idx >= uint32(len(cb.used)) {
		return false
	}
	return cb.used[idx]
}

func (cb *fixtureCellBuilder) fits(nidx uint32, needLabels []byte, off uint32) bool {
	seen := make(map[uint32]bool, len(needLabels))
	for _, l := range needLabels {
		p := (nidx ^ off ^ uint32(l)) & precisionMask
		if cb.isUsed(p) || seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}

func (cb *fixtureCellBuilder) findOffset(nidx uint32, needLabels []byte) uint32 {
	for off := uint32(0); ; off++ {
		if cb.fits(nidx, needLabels, off) {
			return off
		}
	}
}

func (cb *fixtureCellBuilder) setCell(idx uint32, off uint32, hasLeaf bool, label byte) {
	cb.ensure(idx)
	u := off << 10
	if hasLeaf {
		u |= hasLeafBit
	}
	u |= uint32(label)
	cb.cells[idx] = u
}

// buildDoubleArray lays out root in a BFS over the trie, assigning each
// node an index and an offset such that
// child_index = (node_index XOR offset XOR child_label) & PRECISION_MASK,
// the same transition algebra dictionary.followChar decodes.
func buildDoubleArray(root *fixtureTrieNode) *fixtureCellBuilder {
	cb := &fixtureCellBuilder{}
	root.idx = 0
	cb.alloc(0)

	queue := []*fixtureTrieNode{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		labels := make([]byte, 0, len(n.children))
		for l := range n.children {
			labels = append(labels, l)
		}
		sort.Slice(labels, func(i, j int) bool { return labels[i] < labels[j] })

		needLabels := append([]byte(nil), labels...)
		if n.hasLeafValue {
			needLabels = append(needLabels, 0)
		}

		var off uint32
		if len(needLabels) > 0 {
			off = cb.findOffset(n.idx, needLabels)
		}
		cb.setCell(n.idx, off, n.hasLeaf, n.incomingLabel)

		if len(labels) > 0 {
			cb.guideChild[n.idx] = labels[0]
		}

		for _, l := range needLabels {
			p := (n.idx ^ off ^ uint32(l)) & precisionMask
			cb.alloc(p)
			if l == 0 && n.hasLeafValue {
				cb.cells[p] = n.leafValue & precisionMask
				continue
			}
			child := n.children[l]
			child.idx = p
			child.incomingLabel = l
			queue = append(queue, child)
		}

		for i, l := range labels {
			childIdx := n.children[l].idx
			cb.ensure(childIdx)
			if i+1 < len(labels) {
				cb.guideSibling[childIdx] = labels[i+1]
			}
		}
	}
	return cb
}

func (cb *fixtureCellBuilder) encodeDictionary() []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, uint32(len(cb.cells)))
	for _, c := range cb.cells {
		binary.Write(buf, binary.LittleEndian, c)
	}
	return buf.Bytes()
}

func (cb *fixtureCellBuilder) encodeGuide() []byte {
	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, uint32(len(cb.guideChild)))
	for i := range cb.guideChild {
		buf.WriteByte(cb.guideChild[i])
		buf.WriteByte(cb.guideSibling[i])
	}
	return buf.Bytes()
}

// fixtureDictOnly builds a Dictionary-only image (no Guide) from a plain
// key set, for DAWG.
func fixtureDictOnly(keys []string) []byte {
	root := newFixtureTrieNode()
	for _, k := range keys {
		root.insert([]byte(k), nil)
	}
	return buildDoubleArray(root).encodeDictionary()
}

// fixtureCompletion builds a Dictionary+Guide image from a plain key set,
// for CompletionDAWG.
func fixtureCompletion(keys []string) []byte {
	root := newFixtureTrieNode()
	for _, k := range keys {
		root.insert([]byte(k), nil)
	}
	cb := buildDoubleArray(root)
	return append(cb.encodeDictionary(), cb.encodeGuide()...)
}

// fixtureIntDAWG builds a Dictionary-only image (no Guide) for IntDAWG,
// storing each value directly at its key's leaf.
func fixtureIntDAWG(values map[string]int) []byte {
	root := newFixtureTrieNode()
	for k, v := range values {
		uv := uint32(v)
		root.insert([]byte(k), &uv)
	}
	return buildDoubleArray(root).encodeDictionary()
}

// fixtureIntCompletionDAWG builds a Dictionary+Guide image for
// IntCompletionDAWG.
func fixtureIntCompletionDAWG(values map[string]int) []byte {
	root := newFixtureTrieNode()
	for k, v := range values {
		uv := uint32(v)
		root.insert([]byte(k), &uv)
	}
	cb := buildDoubleArray(root)
	return append(cb.encodeDictionary(), cb.encodeGuide()...)
}

// fixtureBytesDAWG builds a Dictionary+Guide image for BytesDAWG from
// (key, value) pairs, composing each stored key as key || SEP ||
// base64(value) per §3 "Payload-encoded key image".
func fixtureBytesDAWG(pairs [][2][]byte) []byte {
	root := newFixtureTrieNode()
	for _, p := range pairs {
		root.insert(composePayloadKey(p[0], p[1]), nil)
	}
	cb := buildDoubleArray(root)
	return append(cb.encodeDictionary(), cb.encodeGuide()...)
}

// fixtureRecordDAWG builds a full record-automaton file (format header +
// Dictionary + Guide) for RecordDAWG from (key, record) pairs.
func fixtureRecordDAWG(format string, pairs []fixtureRecordPair) []byte {
	rf, err := parseRecordFormat(format)
	if err != nil {
		panic(err)
	}

	root := newFixtureTrieNode()
	for _, p := range pairs {
		packed, err := rf.pack(p.record)
		if err != nil {
			panic(err)
		}
		root.insert(composePayloadKey([]byte(p.key), packed), nil)
	}
	cb := buildDoubleArray(root)

	buf := &bytes.Buffer{}
	binary.Write(buf, binary.LittleEndian, uint16(len(format)))
	buf.WriteString(format)
	buf.Write(cb.encodeDictionary())
	buf.Write(cb.encodeGuide())
	return buf.Bytes()
}

type fixtureRecordPair struct {
	key    string
	record []int64
}

// openFixtureContainer wraps fixture bytes in a bytes.Reader (which
// satisfies io.ReaderAt) and parses it exactly as openContainerPath would
// parse a real file, without touching the filesystem.
func openFixtureContainer(data []byte, spec openSpec) openedContainer {
	h := nopCloserReaderAt{ReaderAt: bytes.NewReader(data)}
	oc, err := openContainer(h, int64(len(data)), spec)
	if err != nil {
		panic(err)
	}
	return oc
}

func composePayloadKey(key []byte, value []byte) []byte {
	out := make([]byte, 0, len(key)+1+base64.StdEncoding.EncodedLen(len(value)))
	out = append(out, key...)
	out = append(out, payloadSep)
	out = append(out, encodeBytesPayload(value)...)
	return out
}
