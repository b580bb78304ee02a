package asm

// Instruction describes one mnemonic of the 4-bit machine.
type Instruction struct {
	Mnemonic string
	// Opcode is the nibble emitted for the instruction. It equals the
	// instruction's index in Instructions.
	Opcode   byte
	Operands int

	// Directive marks pseudo-instructions that emit nothing.
	Directive bool
}

// Opcode values, in canonical order.
const (
	OpLIT byte = iota
	OpADDL
	OpSTORE
	OpNOT
	OpZERO
	OpSUBL
	OpLOAD
	OpGOTO
	OpADDM
	OpSUBM
	OpORL
	OpORM
	OpNEG
	OpINC
	OpDEC
	OpGOTOC
)

// Instructions is the canonical mnemonic list. The table is built in this
// order, so if two mnemonics ever shared a slot the later one would win.
var Instructions = []Instruction{
	{Mnemonic: "lit", Opcode: OpLIT, Operands: 1},
	{Mnemonic: "addl", Opcode: OpADDL, Operands: 1},
	{Mnemonic: "store", Opcode: OpSTORE, Operands: 1},
	{Mnemonic: "not", Opcode: OpNOT, Operands: 0},
	{Mnemonic: "zero", Opcode: OpZERO, Operands: 0},
	{Mnemonic: "subl", Opcode: OpSUBL, Operands: 1},
	{Mnemonic: "load", Opcode: OpLOAD, Operands: 1},
	{Mnemonic: "goto", Opcode: OpGOTO, Operands: 1},
	{Mnemonic: "addm", Opcode: OpADDM, Operands: 1},
	{Mnemonic: "subm", Opcode: OpSUBM, Operands: 1},
	{Mnemonic: "orl", Opcode: OpORL, Operands: 1},
	{Mnemonic: "orm", Opcode: OpORM, Operands: 1},
	{Mnemonic: "neg", Opcode: OpNEG, Operands: 0},
	{Mnemonic: "inc", Opcode: OpINC, Operands: 0},
	{Mnemonic: "dec", Opcode: OpDEC, Operands: 0},
	{Mnemonic: "gotoc", Opcode: OpGOTOC, Operands: 1},
	{Mnemonic: "set", Operands: 2, Directive: true},
}

// instructionTable maps a slot to an index in Instructions, or -1.
type instructionTable [TableSize]int

// defaultInstructions is built once and only read afterwards.
var defaultInstructions = buildInstructionTable(Instructions)

func buildInstructionTable(list []Instruction) *instructionTable {
	t := new(instructionTable)
	for i := range t {
		t[i] = -1
	}
	for i, instr := range list {
		t[HashToken(instr.Mnemonic)] = i
	}
	return t
}

func (t *instructionTable) lookup(slot int) (Instruction, bool) {
	idx := t[slot]
	if idx < 0 {
		return Instruction{}, false
	}
	return Instructions[idx], true
}

// LookupInstruction returns the instruction installed in slot, if any.
func LookupInstruction(slot int) (Instruction, bool) {
	if slot < 0 || slot >= TableSize {
		return Instruction{}, false
	}
	return defaultInstructions.lookup(slot)
}

// InstructionByOpcode returns the real instruction encoded by nibble op.
func InstructionByOpcode(op byte) (Instruction, bool) {
	if int(op) >= len(Instructions) || Instructions[op].Directive {
		return Instruction{}, false
	}
	return Instructions[op], true
}
