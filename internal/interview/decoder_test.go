package interview

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoderASCIIPassThrough(t *testing.T) {
	var d StreamDecoder
	assert.Equal(t, "hello", d.Decode([]byte("hello")))
	assert.Equal(t, " world", d.Decode([]byte(" world")))
	assert.Equal(t, "", d.Flush())
}

func TestDecoderSplitTwoByteRune(t *testing.T) {
	// "é" is 0xC3 0xA9.
	var d StreamDecoder
	assert.Equal(t, "h", d.Decode([]byte{'h', 0xC3}))
	assert.Equal(t, "é", d.Decode([]byte{0xA9}))
}

func TestDecoderSplitFourByteRuneAcrossThreeChunks(t *testing.T) {
	emoji := []byte("🎯") // 4 bytes
	var d StreamDecoder
	out := d.Decode(emoji[:1])
	out += d.Decode(emoji[1:3])
	out += d.Decode(emoji[3:])
	assert.Equal(t, "🎯", out)
	assert.Equal(t, "", d.Flush())
}

func TestDecoderEveryChunkEndsOnRuneBoundary(t *testing.T) {
	text := "Grüße 🎯 日本語 done"
	raw := []byte(text)

	// Feed the text one byte at a time: no intermediate output may contain
	// a torn rune, and the concatenation must equal the input.
	var d StreamDecoder
	var total strings.Builder
	for i := range raw {
		part := d.Decode(raw[i : i+1])
		require.True(t, utf8.ValidString(part), "chunk output %q not valid UTF-8", part)
		total.WriteString(part)
	}
	total.WriteString(d.Flush())
	assert.Equal(t, text, total.String())
}

func TestDecoderChunkCompletesBufferedRuneAndBuffersNewOne(t *testing.T) {
	// One chunk both completes a buffered partial sequence and ends with a
	// fresh partial sequence, so the decoder rewrites its buffer while the
	// output still refers to bytes in front of it.
	var d StreamDecoder
	assert.Equal(t, "", d.Decode([]byte{0xC3})) // first byte of "ß"
	// Completes "ß" and buffers the emoji lead byte in one call.
	assert.Equal(t, "ße ", d.Decode([]byte{0x9F, 'e', ' ', 0xF0}))
	assert.Equal(t, "🎯", d.Decode([]byte{0x9F, 0x8E, 0xAF}))

	// Same shape chained across three chunks.
	var d2 StreamDecoder
	assert.Equal(t, "", d2.Decode([]byte{0xE6, 0x97}))
	assert.Equal(t, "日", d2.Decode([]byte{0xA5, 0xE6, 0x9C}))
	assert.Equal(t, "本", d2.Decode([]byte{0xAC}))
	assert.Equal(t, "", d2.Flush())
}

func TestDecoderFlushReplacesDanglingSequence(t *testing.T) {
	var d StreamDecoder
	// Leading byte of a 3-byte sequence with only one continuation byte.
	assert.Equal(t, "ab", d.Decode([]byte{'a', 'b', 0xE6, 0x97}))
	assert.Equal(t, string(utf8.RuneError), d.Flush())
}

func TestDecoderRetainsAtMostThreeBytes(t *testing.T) {
	var d StreamDecoder
	d.Decode([]byte{0xF0, 0x9F, 0x8E}) // first 3 bytes of a 4-byte rune
	assert.Equal(t, "🎯", d.Decode([]byte{0xAF}))
}
