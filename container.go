package dawgo

import (
	"encoding/binary"
	"io"
	"os"
)

// image is a keyed random-access view into one section of a container
// file: a byte range starting at base, which lies immediately after the
// image's 4-byte base_size header. Reads are always relative to base so that a Dictionary
// or Guide image can sit anywhere in a multi-image file.
//
// This generalizes original_source/circuit_dawg/wrapper.py's FilePointer,
// which achieves the same effect by adjusting Seek positions on a shared
// file handle (self.skip). Keyed reads remove the implicit shared-position
// hazard a stateful seek has under concurrent queries against one handle.
type image struct {
	r        io.ReaderAt
	base     int64
	baseSize uint32 // cell/node count declared by this image's header
	fileSize int64  // total size of the underlying file, for bounds checks
}

// openImage reads the 4-byte little-endian base_size header at base and
// returns an image view starting immediately after it.
func openImage(r io.ReaderAt, base int64, fileSize int64, name string) (image, error) {
	var hdr [4]byte
	if base+4 > fileSize {
		return image{}, malformed(name, base, io.ErrUnexpectedEOF)
	}
	if _, err := r.ReadAt(hdr[:], base); err != nil {
		return image{}, malformed(name, base, err)
	}
	return image{
		r:        r,
		base:     base + 4,
		baseSize: binary.LittleEndian.Uint32(hdr[:]),
		fileSize: fileSize,
	}, nil
}

// end returns the file offset immediately following this image.
func (img image) end(cellSize int64) int64 {
	return img.base + int64(img.baseSize)*cellSize
}

// readCell reads the 32-bit little-endian cell at node index idx.
func (img image) readCell(idx uint32) (uint32, error) {
	off := img.base + int64(idx)*4
	if idx >= img.baseSize || off+4 > img.fileSize {
		return 0, malformed("dictionary", off, io.ErrUnexpectedEOF)
	}
	var buf [4]byte
	if _, err := img.r.ReadAt(buf[:], off); err != nil {
		return 0, malformed("dictionary", off, err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// readGuideByte reads one byte of the guide's (child_label, sibling_label)
// table: byteIdx = node*2 for child, node*2+1 for sibling.
func (img image) readGuideByte(byteIdx uint32) (byte, error) {
	off := img.base + int64(byteIdx)
	if uint32(byteIdx/2) >= img.baseSize || off+1 > img.fileSize {
		return 0, malformed("guide", off, io.ErrUnexpectedEOF)
	}
	var buf [1]byte
	if _, err := img.r.ReadAt(buf[:], off); err != nil {
		return 0, malformed("guide", off, err)
	}
	return buf[0], nil
}

// fileHandle is the subset of *os.File this package relies on: random
// access reads plus an explicit close. Tests substitute a bytes.Reader
// wrapped in a no-op closer.
type fileHandle interface {
	io.ReaderAt
	Close() error
}

// nopCloserReaderAt adapts an io.ReaderAt without a Close method (such as
// *bytes.Reader) to fileHandle.
type nopCloserReaderAt struct {
	io.ReaderAt
}

func (nopCloserReaderAt) Close() error { return nil }

func openFile(path string) (*os.File, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}
	return f, fi.Size(), nil
}
