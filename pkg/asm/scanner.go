package asm

type stateKind int

const (
	// seekingOpcode expects a mnemonic; anything else defines a label.
	seekingOpcode stateKind = iota
	// readingOperands emits one digit per operand token.
	readingOperands
	// readingConstant collects the name and value of a set directive.
	readingConstant
)

type scanState struct {
	kind      stateKind
	remaining int

	// Only used while kind == readingConstant.
	hasKey     bool
	pendingKey int
	pendingTok string
}

// nextToken skips to the next alphanumeric run at or after pos. ok is false
// when the line ends or a comment marker is reached first.
func nextToken(line string, pos int) (tok string, next int, ok bool) {
	for pos < len(line) && !isAlnum(line[pos]) && !isCommentStart(line[pos]) {
		pos++
	}
	if pos >= len(line) || isCommentStart(line[pos]) {
		return "", pos, false
	}

	start := pos
	for pos < len(line) && isAlnum(line[pos]) {
		pos++
	}
	return line[start:pos], pos, true
}

// scanLine runs the state machine over one source line. Scanner state does
// not carry across lines, and once an instruction has all of its operands
// the remainder of the line is ignored.
func (a *Assembler) scanLine(line string) {
	a.state = scanState{}

	pos := 0
	for {
		tok, next, ok := nextToken(line, pos)
		if !ok {
			return
		}
		pos = next

		if a.scanToken(tok) {
			return
		}
	}
}

// scanToken classifies one token and reports whether the current
// instruction is complete.
func (a *Assembler) scanToken(tok string) bool {
	slot := HashToken(tok)

	switch a.state.kind {
	case seekingOpcode:
		instr, ok := a.instructions.lookup(slot)
		if !ok {
			a.defineLabel(tok, slot)
			return false
		}
		return a.beginInstruction(tok, instr)

	case readingOperands:
		a.emitOperand(tok, slot)

	case readingConstant:
		a.collectConstant(tok, slot)
	}

	a.state.remaining--
	return a.state.remaining == 0
}

func (a *Assembler) beginInstruction(tok string, instr Instruction) bool {
	if instr.Directive {
		a.state = scanState{kind: readingConstant, remaining: instr.Operands}
		return instr.Operands == 0
	}

	a.emit(hexDigits[instr.Opcode], tok, EntryOpcode)
	a.state = scanState{kind: readingOperands, remaining: instr.Operands}
	return instr.Operands == 0
}

func (a *Assembler) defineLabel(tok string, slot int) {
	value := a.enc.addressDigit()
	if a.symbols.defineLabel(slot, tok, value) {
		trace("label defined", "line", a.lineNo, "name", tok, "slot", slot, "value", digitString(value))
		return
	}
	trace("label already defined", "line", a.lineNo, "name", tok, "slot", slot)
}

func (a *Assembler) emitOperand(tok string, slot int) {
	if value, ok := a.symbols.lookup(slot); ok {
		a.emit(value, tok, EntryOperand)
		return
	}

	digit := placeholder(slot)
	if isHexDigit(digit) {
		a.emit(digit, tok, EntryLiteral)
		return
	}
	trace("operand unresolved", "line", a.lineNo, "token", tok, "slot", slot)
	a.emit(digit, tok, EntryUnresolved)
}

func (a *Assembler) collectConstant(tok string, slot int) {
	if !a.state.hasKey {
		a.state.hasKey = true
		a.state.pendingKey = slot
		a.state.pendingTok = tok
		return
	}

	value := placeholder(slot)
	a.symbols.defineConstant(a.state.pendingKey, a.state.pendingTok, value)
	trace("constant defined",
		"line", a.lineNo,
		"name", a.state.pendingTok,
		"slot", a.state.pendingKey,
		"value", digitString(value))
}
