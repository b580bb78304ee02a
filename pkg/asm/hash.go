package asm

// TableSize is the number of slots in the instruction and symbol tables.
const TableSize = 1024

const hexDigits = "0123456789ABCDEF"

// HashToken maps an alphanumeric token to a table slot. Each character is
// lower-cased, weighted by the cube of its 1-based position and accumulated
// modulo TableSize.
func HashToken(token string) int {
	hash := 0
	for j := 0; j < len(token); j++ {
		pos := (j + 1) % TableSize
		weight := pos * pos * pos % TableSize
		hash = (hash + int(toLower(token[j]))*weight) % TableSize
	}
	return hash
}

// blankPlaceholder replaces placeholder bytes that would read as whitespace
// in the output stream.
const blankPlaceholder = '?'

// placeholder is the digit emitted for a token that is not in the symbol
// table: the slot number upper-cased as if it were a character and truncated
// to a byte. Single-character tokens therefore stand for themselves.
// Whitespace bytes become blankPlaceholder so they cannot pose as group
// separators or line ends.
func placeholder(slot int) byte {
	if slot >= 'a' && slot <= 'z' {
		slot -= 'a' - 'A'
	}
	b := byte(slot)
	if isSpace(b) {
		return blankPlaceholder
	}
	return b
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isCommentStart(c byte) bool {
	return c == '#' || c == '/'
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F')
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
