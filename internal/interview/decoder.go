package interview

import (
	"strings"
	"unicode/utf8"
)

// StreamDecoder decodes an incremental byte stream to text without assuming
// chunk boundaries align with character boundaries. A chunk may split a
// multi-byte UTF-8 sequence; the trailing incomplete sequence is buffered
// and prepended to the next chunk, so every string returned by Decode ends
// on a rune boundary.
type StreamDecoder struct {
	pending []byte
}

// Decode appends p to any buffered partial sequence and returns the longest
// decodable prefix. At most utf8.UTFMax-1 bytes are retained between calls.
func (d *StreamDecoder) Decode(p []byte) string {
	b := p
	if len(d.pending) > 0 {
		b = append(d.pending, p...)
	}

	cut := len(b)
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		c := b[i]
		if c < utf8.RuneSelf {
			break // ASCII: everything up to the end is complete
		}
		if c >= 0xC0 {
			// Leading byte of a multi-byte sequence. Hold it back if the
			// sequence extends past the end of the buffer.
			if i+leadSize(c) > len(b) {
				cut = i
			}
			break
		}
		// Continuation byte: keep scanning backwards for the leading byte.
		// If none is found within UTFMax bytes the data is invalid and is
		// passed through as-is.
	}

	// Materialize the output before touching pending: b may alias pending's
	// backing array, and rewriting the buffered tail onto its front would
	// corrupt the bytes still referenced by b[:cut].
	out := string(b[:cut])
	d.pending = append(d.pending[:0], b[cut:]...)
	return out
}

// Flush returns whatever is still buffered at end of stream. A dangling
// incomplete sequence decodes to the Unicode replacement character, matching
// the behavior of an incremental text decoder's final flush.
func (d *StreamDecoder) Flush() string {
	if len(d.pending) == 0 {
		return ""
	}
	s := strings.ToValidUTF8(string(d.pending), string(utf8.RuneError))
	d.pending = d.pending[:0]
	return s
}

// leadSize returns the declared length of a UTF-8 sequence from its leading
// byte. Invalid leading bytes report length 1 so they pass through.
func leadSize(c byte) int {
	switch {
	case c >= 0xF8:
		return 1 // invalid
	case c >= 0xF0:
		return 4
	case c >= 0xE0:
		return 3
	case c >= 0xC0:
		return 2
	default:
		return 1
	}
}
