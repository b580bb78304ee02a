package asm

type SymbolKind int

const (
	// SymbolLabel is bound implicitly to the address counter.
	SymbolLabel SymbolKind = iota
	// SymbolConstant is bound by the set directive.
	SymbolConstant
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolLabel:
		return "label"
	case SymbolConstant:
		return "constant"
	default:
		return "unknown"
	}
}

// Symbol is one occupied slot of the symbol table. Colliding names share one
// entry: a label keeps the first name bound to its slot, while a constant
// replaces whatever was there before.
type Symbol struct {
	Slot  int
	Name  string
	Value byte
	Kind  SymbolKind
}

type symbolSlot struct {
	defined bool
	name    string
	value   byte
	kind    SymbolKind
}

type symbolTable [TableSize]symbolSlot

func (t *symbolTable) lookup(slot int) (byte, bool) {
	s := t[slot]
	return s.value, s.defined
}

// defineLabel binds slot only if it is still empty. It reports whether the
// table changed.
func (t *symbolTable) defineLabel(slot int, name string, value byte) bool {
	if t[slot].defined {
		return false
	}
	t[slot] = symbolSlot{defined: true, name: name, value: value, kind: SymbolLabel}
	return true
}

// defineConstant always overwrites.
func (t *symbolTable) defineConstant(slot int, name string, value byte) {
	t[slot] = symbolSlot{defined: true, name: name, value: value, kind: SymbolConstant}
}

// list returns the occupied slots in slot order.
func (t *symbolTable) list() []Symbol {
	var out []Symbol
	for i, s := range t {
		if !s.defined {
			continue
		}
		out = append(out, Symbol{Slot: i, Name: s.name, Value: s.value, Kind: s.kind})
	}
	return out
}
