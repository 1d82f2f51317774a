package dawgo

import "encoding/base64"

// payloadSep separates a key from its encoded payload in byte- and
// record-valued automata: key || payloadSep || base64(value).
const payloadSep byte = 0xFF

// splitPayload locates payloadSep in a raw stored key and returns the
// user-visible key and the trailing base64 text, or ok=false if no
// separator is present.
func splitPayload(raw []byte) (key []byte, b64 []byte, ok bool) {
	for i, b := range raw {
		if b == payloadSep {
			return raw[:i], raw[i+1:], true
		}
	}
	return nil, nil, false
}

// decodeBytesPayload base64-decodes a payload suffix into raw bytes.
func decodeBytesPayload(b64 []byte) ([]byte, error) {
	n := base64.StdEncoding.DecodedLen(len(b64))
	out := make([]byte, n)
	written, err := base64.StdEncoding.Decode(out, b64)
	if err != nil {
		return nil, malformed("payload", 0, err)
	}
	return out[:written], nil
}

// encodeBytesPayload base64-encodes value for storage as a payload suffix.
func encodeBytesPayload(value []byte) []byte {
	out := make([]byte, base64.StdEncoding.EncodedLen(len(value)))
	base64.StdEncoding.Encode(out, value)
	return out
}
