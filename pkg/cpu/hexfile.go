package cpu

import (
	"errors"
	"fmt"
	"strings"

	"fourbit/pkg/asm"
)

// ErrBadDigit reports a character in a hex stream that is not a hex digit,
// or a separator that is missing or out of place.
var ErrBadDigit = errors.New("invalid hex digit")

// ParseHex decodes assembler output into program nibbles. The text must be
// laid out exactly as the assembler writes it: digits in groups of four
// separated by single spaces, optionally followed by one newline. Any other
// character is an error, which is how unresolved forward references surface.
func ParseHex(text string) ([]byte, error) {
	text = strings.TrimSuffix(text, "\n")

	out := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if asm.NeedsSeparator(i) {
			if ch != ' ' || i == len(text)-1 {
				return nil, fmt.Errorf("%w %q at offset %d: expected group separator", ErrBadDigit, ch, i)
			}
			continue
		}

		v, ok := nibble(ch)
		if !ok {
			return nil, fmt.Errorf("%w %q at offset %d", ErrBadDigit, ch, i)
		}
		out = append(out, v)
	}
	return out, nil
}

func nibble(ch byte) (byte, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return ch - '0', true
	case ch >= 'A' && ch <= 'F':
		return ch - 'A' + 10, true
	case ch >= 'a' && ch <= 'f':
		return ch - 'a' + 10, true
	}
	return 0, false
}

// FormatHex lays nibbles out the way the assembler does, so ParseHex
// accepts the result.
func FormatHex(nibbles []byte) string {
	buf := make([]byte, 0, len(nibbles)+len(nibbles)/4)
	for _, v := range nibbles {
		if asm.NeedsSeparator(len(buf)) {
			buf = append(buf, ' ')
		}
		buf = append(buf, hexDigit(v))
	}
	return string(buf)
}

func hexDigit(v byte) byte {
	return "0123456789ABCDEF"[v&0xF]
}
