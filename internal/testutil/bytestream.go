package testutil

import "strings"

// ByteStream reads bytes sequentially from a byte slice.
//
// Fuzz tests derive every choice from it. When the stream is exhausted, all
// reads return zero values, so the same input always produces the same
// sequence of operations.
type ByteStream struct {
	bytes []byte
	pos   int
}

// NewByteStream creates a stream over the given bytes.
func NewByteStream(b []byte) *ByteStream {
	return &ByteStream{bytes: b}
}

// HasMore reports whether unread bytes remain.
func (s *ByteStream) HasMore() bool {
	return s.pos < len(s.bytes)
}

// NextByte returns the next byte, or 0 if exhausted.
func (s *ByteStream) NextByte() byte {
	if s.pos >= len(s.bytes) {
		return 0
	}

	v := s.bytes[s.pos]
	s.pos++

	return v
}

// NextInt returns a value in [0, maxVal) derived from the next byte.
func (s *ByteStream) NextInt(maxVal int) int {
	if maxVal <= 0 {
		return 0
	}

	return int(s.NextByte()) % maxVal
}

// NextBool returns a boolean derived from the next byte.
func (s *ByteStream) NextBool() bool {
	return s.NextByte()&1 == 1
}

// textAlphabet mixes plain letters with characters that need escaping in
// XML, whitespace that must survive a round trip, multi-byte runes, and two
// tokens no document can hold: a control character and an invalid byte.
var textAlphabet = []string{
	"a", "b", "c", "d", "e", "x", "y", "z", "X", "Y", "Z", "0", "1", "9",
	" ", "@", ".", "+", "-", "<", ">", "&", "\"", "'", "\t", "\n", "\r",
	"ä", "ö", "山", "\x01", "\xff",
}

// NextText returns a string of 0 to maxLen tokens from textAlphabet.
func (s *ByteStream) NextText(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	length := s.NextInt(maxLen + 1)

	var b strings.Builder
	for range length {
		b.WriteString(textAlphabet[s.NextInt(len(textAlphabet))])
	}

	return b.String()
}
