package cpu

import (
	"errors"
	"fmt"

	"fourbit/pkg/asm"
	"fourbit/pkg/utils"
)

// MemorySize is the number of data nibbles addressable by a 4-bit operand.
const MemorySize = 16

var (
	// ErrStepLimit is returned by Run when the step budget runs out before
	// the program falls off its end.
	ErrStepLimit = errors.New("step limit reached")
	// ErrTruncated means an instruction's operand nibble is missing.
	ErrTruncated = errors.New("instruction truncated")
)

// CPU is the 4-bit accumulator machine. The program is a sequence of
// nibbles addressed by position, the same addresses the assembler hands
// out to labels. Data memory is separate.
type CPU struct {
	Program []byte
	Memory  [MemorySize]byte

	A  byte
	C  bool
	PC int

	Halted bool
	Steps  int

	// Hook, if set, is called after every executed instruction.
	Hook StepHook
}

// StepHook observes execution.
type StepHook interface {
	AfterStep(ev StepEvent)
}

// StepEvent describes one executed instruction and the state after it.
type StepEvent struct {
	Step       int
	PC         int
	Opcode     byte
	Operand    byte
	HasOperand bool

	A      byte
	C      bool
	NextPC int
}

// Mnemonic is the name of the executed instruction.
func (ev StepEvent) Mnemonic() string {
	instr, ok := asm.InstructionByOpcode(ev.Opcode)
	if !ok {
		return "?"
	}
	return instr.Mnemonic
}

func NewCPU(program []byte) *CPU {
	c := &CPU{}
	c.Load(program)
	return c
}

// Load replaces the program and resets all state.
func (c *CPU) Load(program []byte) {
	c.Program = append([]byte(nil), program...)
	c.Reset()
}

// Reset clears registers and memory and rewinds to address 0.
func (c *CPU) Reset() {
	c.Memory = [MemorySize]byte{}
	c.A = 0
	c.C = false
	c.PC = 0
	c.Halted = false
	c.Steps = 0
}

func (c *CPU) add(a, b, carryIn byte) byte {
	sum := a + b + carryIn
	c.C = sum > 0xF
	return sum & 0xF
}

// Step executes one instruction. Running past the last nibble halts the
// machine without error.
func (c *CPU) Step() error {
	if c.Halted {
		return nil
	}
	if c.PC < 0 || c.PC >= len(c.Program) {
		c.Halted = true
		return nil
	}

	pc := c.PC
	op := c.Program[pc] & 0xF
	instr, _ := asm.InstructionByOpcode(op)
	next := pc + 1

	var x byte
	if instr.Operands > 0 {
		if next >= len(c.Program) {
			c.Halted = true
			return fmt.Errorf("%w: %s at %X", ErrTruncated, instr.Mnemonic, pc)
		}
		x = c.Program[next] & 0xF
		next++
	}

	switch op {
	case asm.OpLIT:
		c.A = x
	case asm.OpADDL:
		c.A = c.add(c.A, x, 0)
	case asm.OpSTORE:
		c.Memory[x] = c.A
	case asm.OpNOT:
		c.A = ^c.A & 0xF
	case asm.OpZERO:
		c.A = 0
	case asm.OpSUBL:
		c.A = c.add(c.A, ^x&0xF, 1)
	case asm.OpLOAD:
		c.A = c.Memory[x]
	case asm.OpGOTO:
		next = int(x)
	case asm.OpADDM:
		c.A = c.add(c.A, c.Memory[x], 0)
	case asm.OpSUBM:
		c.A = c.add(c.A, ^c.Memory[x]&0xF, 1)
	case asm.OpORL:
		c.A |= x
	case asm.OpORM:
		c.A |= c.Memory[x]
	case asm.OpNEG:
		c.A = c.add(^c.A&0xF, 0, 1)
	case asm.OpINC:
		c.A = c.add(c.A, 1, 0)
	case asm.OpDEC:
		c.A = c.add(c.A, 0xF, 0)
	case asm.OpGOTOC:
		// Taken when the last carry-out was low.
		if !c.C {
			next = int(x)
		}
	}

	c.PC = next
	c.Steps++

	ev := StepEvent{
		Step:       c.Steps,
		PC:         pc,
		Opcode:     op,
		Operand:    x,
		HasOperand: instr.Operands > 0,
		A:          c.A,
		C:          c.C,
		NextPC:     next,
	}
	utils.Trace("step",
		"step", ev.Step,
		"pc", pc,
		"op", instr.Mnemonic,
		"operand", x,
		"a", c.A,
		"c", c.C)
	if c.Hook != nil {
		c.Hook.AfterStep(ev)
	}

	return nil
}

// Run steps until the machine halts. maxSteps <= 0 means no limit.
func (c *CPU) Run(maxSteps int) error {
	for !c.Halted {
		if maxSteps > 0 && c.Steps >= maxSteps {
			return fmt.Errorf("%w after %d steps (pc=%X)", ErrStepLimit, c.Steps, c.PC)
		}
		if err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// String summarises the register state.
func (c *CPU) String() string {
	return fmt.Sprintf("PC=%02X A=%X C=%t steps=%d halted=%t", c.PC, c.A, c.C, c.Steps, c.Halted)
}

// MemoryString renders data memory as sixteen hex digits, cell 0 first.
func (c *CPU) MemoryString() string {
	buf := make([]byte, MemorySize)
	for i, v := range c.Memory {
		buf[i] = hexDigit(v)
	}
	return string(buf)
}
