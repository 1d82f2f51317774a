package dawgo

import (
	"encoding/binary"
	"fmt"
	"strconv"
)

// recordFormat is a parsed fixed-width packing format string, e.g. ">3H"
// or "=H". The grammar: one leading byte-order character (< little-endian,
// > big-endian, = native, ! network/big-endian), followed by one or more
// <count><type> pairs. Supported types: H (uint16), I (uint32), B (uint8),
// h (int16), i (int32), b (int8). Unaligned, like Python's struct module
// without the native-alignment prefix "@".
type recordFormat struct {
	raw    string
	order  binary.ByteOrder
	fields []recordField
}

type recordField struct {
	signed bool
	size   int // 1, 2, or 4 bytes
}

// parseRecordFormat parses a format string per the grammar above.
func parseRecordFormat(s string) (*recordFormat, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty record format", ErrMalformed)
	}

	var order binary.ByteOrder
	rest := s
	switch s[0] {
	case '<', '=':
		order = binary.LittleEndian
		rest = s[1:]
	case '>', '!':
		order = binary.BigEndian
		rest = s[1:]
	default:
		// No explicit byte-order character: default to native-unaligned,
		// which this reader always treats as little-endian (the format
		// strings this reader handles are produced by little-endian
		// build tools).
		order = binary.LittleEndian
	}

	rf := &recordFormat{raw: s, order: order}

	i := 0
	for i < len(rest) {
		start := i
		for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
			i++
		}
		count := 1
		if i > start {
			n, err := strconv.Atoi(rest[start:i])
			if err != nil {
				return nil, fmt.Errorf("%w: bad repeat count in %q", ErrMalformed, s)
			}
			count = n
		}
		if i >= len(rest) {
			return nil, fmt.Errorf("%w: missing type character in %q", ErrMalformed, s)
		}
		typ := rest[i]
		i++

		var field recordField
		switch typ {
		case 'B':
			field = recordField{signed: false, size: 1}
		case 'b':
			field = recordField{signed: true, size: 1}
		case 'H':
			field = recordField{signed: false, size: 2}
		case 'h':
			field = recordField{signed: true, size: 2}
		case 'I':
			field = recordField{signed: false, size: 4}
		case 'i':
			field = recordField{signed: true, size: 4}
		default:
			return nil, fmt.Errorf("%w: unsupported format type %q in %q", ErrMalformed, string(typ), s)
		}
		for n := 0; n < count; n++ {
			rf.fields = append(rf.fields, field)
		}
	}

	if len(rf.fields) == 0 {
		return nil, fmt.Errorf("%w: record format %q has no fields", ErrMalformed, s)
	}
	return rf, nil
}

// size reports the packed byte length of one record.
func (rf *recordFormat) size() int {
	n := 0
	for _, f := range rf.fields {
		n += f.size
	}
	return n
}

// unpack decodes one record from buf, which must be exactly rf.size() bytes.
func (rf *recordFormat) unpack(buf []byte) ([]int64, error) {
	if len(buf) != rf.size() {
		return nil, fmt.Errorf("%w: record payload is %d bytes, want %d for format %q",
			ErrMalformed, len(buf), rf.size(), rf.raw)
	}
	out := make([]int64, len(rf.fields))
	pos := 0
	for idx, f := range rf.fields {
		var uval uint64
		switch f.size {
		case 1:
			uval = uint64(buf[pos])
		case 2:
			uval = uint64(rf.order.Uint16(buf[pos : pos+2]))
		case 4:
			uval = uint64(rf.order.Uint32(buf[pos : pos+4]))
		}
		if f.signed {
			switch f.size {
			case 1:
				out[idx] = int64(int8(uval))
			case 2:
				out[idx] = int64(int16(uval))
			case 4:
				out[idx] = int64(int32(uval))
			}
		} else {
			out[idx] = int64(uval)
		}
		pos += f.size
	}
	return out, nil
}

// pack encodes values into the wire representation, for use by this
// package's in-memory fixture encoder (fixture_test.go).
func (rf *recordFormat) pack(values []int64) ([]byte, error) {
	if len(values) != len(rf.fields) {
		return nil, fmt.Errorf("%w: got %d values, want %d for format %q",
			ErrMalformed, len(values), len(rf.fields), rf.raw)
	}
	buf := make([]byte, rf.size())
	pos := 0
	for idx, f := range rf.fields {
		uval := uint64(values[idx])
		switch f.size {
		case 1:
			buf[pos] = byte(uval)
		case 2:
			rf.order.PutUint16(buf[pos:pos+2], uint16(uval))
		case 4:
			rf.order.PutUint32(buf[pos:pos+4], uint32(uval))
		}
		pos += f.size
	}
	return buf, nil
}
