package asm

import (
	"strings"

	"fourbit/pkg/utils"
)

// Assembler holds the state of one translation: the shared instruction
// table, a private symbol table, the address counter and the output digits.
// An Assembler is not safe for concurrent use; separate Assemblers are
// independent.
type Assembler struct {
	instructions *instructionTable
	symbols      symbolTable
	enc          encoder
	state        scanState

	lineNo  int
	listing []ListingEntry
}

func NewAssembler() *Assembler {
	return &Assembler{
		instructions: defaultInstructions,
	}
}

// Assemble translates lines in a single pass and returns the grouped hex
// digit stream. It never fails: unknown mnemonics become labels and
// undefined operands become hash-derived digits.
func Assemble(lines []string) string {
	a := NewAssembler()
	for _, line := range lines {
		a.AssembleLine(line)
	}
	return a.Output()
}

// AssembleSource splits src into lines and assembles them.
func AssembleSource(src string) string {
	return Assemble(strings.Split(src, "\n"))
}

// AssembleLine feeds the next source line.
func (a *Assembler) AssembleLine(line string) {
	a.lineNo++
	a.scanLine(line)
}

// Output is the digit stream produced so far.
func (a *Assembler) Output() string {
	return a.enc.String()
}

// Address is the current value of the address counter.
func (a *Assembler) Address() int {
	return a.enc.addr
}

// Symbols returns the occupied symbol slots in slot order.
func (a *Assembler) Symbols() []Symbol {
	return a.symbols.list()
}

// Listing returns one entry per emitted digit.
func (a *Assembler) Listing() []ListingEntry {
	out := make([]ListingEntry, len(a.listing))
	copy(out, a.listing)
	return out
}

func (a *Assembler) emit(digit byte, tok string, kind EntryKind) {
	addr := a.enc.emit(digit)
	a.listing = append(a.listing, ListingEntry{
		Address: addr,
		Digit:   digit,
		Line:    a.lineNo,
		Token:   tok,
		Kind:    kind,
	})
	trace("emit", "line", a.lineNo, "addr", addr, "token", tok, "kind", kind, "digit", digitString(digit))
}

func trace(msg string, args ...any) {
	utils.Trace(msg, args...)
}
