package asm

// NeedsSeparator reports whether a space goes in front of the next digit
// when the output currently holds length characters. Every fifth character
// is a separator, so digits come in groups of four.
func NeedsSeparator(length int) bool {
	return length%5 == 4
}

type encoder struct {
	buf  []byte
	addr int
}

// emit appends one digit and advances the address counter. It returns the
// address the digit was written at.
func (e *encoder) emit(digit byte) int {
	if NeedsSeparator(len(e.buf)) {
		e.buf = append(e.buf, ' ')
	}
	e.buf = append(e.buf, digit)
	at := e.addr
	e.addr++
	return at
}

// addressDigit is the current address counter as a single hex digit.
func (e *encoder) addressDigit() byte {
	return hexDigits[e.addr&0xF]
}

func (e *encoder) String() string {
	return string(e.buf)
}
