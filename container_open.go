package dawgo

import (
	"encoding/binary"
	"io"
)

// openSpec describes which images a container file holds, so one opening
// routine serves every façade type (§6 "File container").
type openSpec struct {
	recordHeader bool // a leading format-string header precedes the Dictionary
	guide        bool // a Guide image follows the Dictionary
}

// openedContainer is the result of parsing a container file: the open
// handle plus every image openContainer located within it.
type openedContainer struct {
	handle fileHandle
	dict   dictionary
	gd     guide
	format *recordFormat // non-nil only when openSpec.recordHeader was set
}

// openContainer parses a container file per spec.md §3/§6: an optional
// record-format header, then a Dictionary image, then an optional Guide
// image, all back-to-back. It records each image's starting file offset so
// that every subsequent read is a keyed random-access ReadAt rather than a
// seek on shared state.
func openContainer(handle fileHandle, fileSize int64, spec openSpec) (openedContainer, error) {
	var offset int64
	var format *recordFormat

	if spec.recordHeader {
		var lenBuf [2]byte
		if offset+2 > fileSize {
			return openedContainer{}, malformed("record-header", offset, io.ErrUnexpectedEOF)
		}
		if _, err := handle.ReadAt(lenBuf[:], offset); err != nil {
			return openedContainer{}, malformed("record-header", offset, err)
		}
		formatLen := int64(binary.LittleEndian.Uint16(lenBuf[:]))
		offset += 2

		if offset+formatLen > fileSize {
			return openedContainer{}, malformed("record-header", offset, io.ErrUnexpectedEOF)
		}
		formatBuf := make([]byte, formatLen)
		if _, err := handle.ReadAt(formatBuf, offset); err != nil {
			return openedContainer{}, malformed("record-header", offset, err)
		}
		offset += formatLen

		f, err := parseRecordFormat(string(formatBuf))
		if err != nil {
			return openedContainer{}, malformed("record-header", offset, err)
		}
		format = f
	}

	dictImg, err := openImage(handle, offset, fileSize, "dictionary")
	if err != nil {
		return openedContainer{}, err
	}
	offset = dictImg.end(4)

	var gd guide
	if spec.guide {
		guideImg, err := openImage(handle, offset, fileSize, "guide")
		if err != nil {
			return openedContainer{}, err
		}
		gd = guide{img: guideImg, hasGuide: true}
	}

	return openedContainer{
		handle: handle,
		dict:   dictionary{img: dictImg},
		gd:     gd,
		format: format,
	}, nil
}

func openContainerPath(path string, spec openSpec) (openedContainer, error) {
	f, size, err := openFile(path)
	if err != nil {
		return openedContainer{}, err
	}
	oc, err := openContainer(f, size, spec)
	if err != nil {
		f.Close()
		return openedContainer{}, err
	}
	return oc, nil
}
