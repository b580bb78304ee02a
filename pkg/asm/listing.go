package asm

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

type EntryKind int

const (
	EntryOpcode EntryKind = iota
	// EntryOperand is an operand found in the symbol table.
	EntryOperand
	// EntryLiteral is an operand not in the symbol table whose hash-derived
	// digit is a valid hex digit, e.g. "5" or "a".
	EntryLiteral
	// EntryUnresolved is an operand not in the symbol table whose
	// hash-derived digit is not a hex digit, typically a forward reference.
	EntryUnresolved
)

func (k EntryKind) String() string {
	switch k {
	case EntryOpcode:
		return "opcode"
	case EntryOperand:
		return "operand"
	case EntryLiteral:
		return "literal"
	case EntryUnresolved:
		return "unresolved"
	default:
		return fmt.Sprintf("EntryKind(%d)", int(k))
	}
}

// ListingEntry records where one output digit came from.
type ListingEntry struct {
	Address int
	Digit   byte
	Line    int
	Token   string
	Kind    EntryKind
}

// RenderListing writes entries as a table.
func RenderListing(w io.Writer, entries []ListingEntry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Listing")
	t.AppendHeader(table.Row{"Addr", "Digit", "Line", "Token", "Kind"})
	for _, e := range entries {
		t.AppendRow(table.Row{
			fmt.Sprintf("%02X", e.Address),
			digitString(e.Digit),
			e.Line,
			e.Token,
			e.Kind.String(),
		})
	}
	t.Render()
}

// RenderSymbols writes the symbol table.
func RenderSymbols(w io.Writer, symbols []Symbol) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Symbols")
	t.AppendHeader(table.Row{"Slot", "Name", "Value", "Kind"})
	for _, s := range symbols {
		t.AppendRow(table.Row{s.Slot, s.Name, digitString(s.Value), s.Kind.String()})
	}
	t.Render()
}

func digitString(b byte) string {
	if b > ' ' && b < 0x7F {
		return string(rune(b))
	}
	return fmt.Sprintf("\\x%02X", b)
}
