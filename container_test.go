package dawgo

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpenContainer_TruncatedDictionaryHeader_IsMalformed(t *testing.T) {
	t.Parallel()

	data := []byte{0x01, 0x00} // only 2 of the 4 base_size header bytes
	h := nopCloserReaderAt{ReaderAt: bytes.NewReader(data)}

	_, err := openContainer(h, int64(len(data)), openSpec{})
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMalformed)

	var me *MalformedError
	require.True(t, errors.As(err, &me))
	require.Equal(t, "dictionary", me.Image)
}

func TestOpenContainer_TruncatedCellData_IsMalformed(t *testing.T) {
	t.Parallel()

	data := fixtureDictOnly([]string{"foo"})
	// Keep the 4-byte base_size header plus only 2 of the root cell's 4
	// bytes, so the very first cell read (root, index 0) runs past EOF.
	truncated := data[:4+2]
	h := nopCloserReaderAt{ReaderAt: bytes.NewReader(truncated)}

	oc, err := openContainer(h, int64(len(truncated)), openSpec{})
	require.NoError(t, err) // the header itself is intact; only cell reads fail

	_, err = oc.dict.contains([]byte("foo"))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestOpenContainer_RecordHeaderLengthOverrunsFile_IsMalformed(t *testing.T) {
	t.Parallel()

	data := []byte{0xFF, 0xFF} // claims a 65535-byte format string in a 2-byte file
	h := nopCloserReaderAt{ReaderAt: bytes.NewReader(data)}

	_, err := openContainer(h, int64(len(data)), openSpec{recordHeader: true})
	require.ErrorIs(t, err, ErrMalformed)
}

func TestOpenRecord_FormatMismatch_IsMalformed(t *testing.T) {
	t.Parallel()

	data := fixtureRecordDAWG(">3H", []fixtureRecordPair{{key: "foo", record: []int64{1, 2, 3}}})
	_, err := openRecordFromFixture(data, "<2I")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestParseRecordFormat_UnknownType_IsMalformed(t *testing.T) {
	t.Parallel()

	_, err := parseRecordFormat(">3Q")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestParseRecordFormat_Empty_IsMalformed(t *testing.T) {
	t.Parallel()

	_, err := parseRecordFormat("")
	require.ErrorIs(t, err, ErrMalformed)
}

func TestCompleter_GuideDictionaryMismatch_IsStructuralMismatch(t *testing.T) {
	t.Parallel()

	root := newFixtureTrieNode()
	root.insert([]byte("foo"), nil)
	root.insert([]byte("bar"), nil)
	cb := buildDoubleArray(root)

	dictBytes := cb.encodeDictionary()
	guideBytes := cb.encodeGuide()
	// Corrupt the root's guide child label (the first guide byte, right
	// after the guide's own 4-byte header) to a byte with no corresponding
	// dictionary transition out of the root.
	guideBytes[4] = 'z'

	data := append(append([]byte(nil), dictBytes...), guideBytes...)
	oc := openFixtureContainer(data, openSpec{guide: true})

	comp := newCompleter(&oc.dict, &oc.gd)
	comp.start(rootIndex, nil)
	_, err := comp.next()
	require.ErrorIs(t, err, ErrStructuralMismatch)
}
