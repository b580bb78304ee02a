package cpu

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// humanReadableState is the YAML snapshot of a CPU. Program and memory are
// stored as grouped hex digit strings so the file can be edited by hand.
type humanReadableState struct {
	Program string `yaml:"program"`
	Memory  string `yaml:"memory"`
	A       byte   `yaml:"a"`
	C       bool   `yaml:"c"`
	PC      int    `yaml:"pc"`
	Halted  bool   `yaml:"halted"`
	Steps   int    `yaml:"steps"`
}

// HibernateToBytes serialises the complete machine state.
func (c *CPU) HibernateToBytes() ([]byte, error) {
	state := humanReadableState{
		Program: FormatHex(c.Program),
		Memory:  FormatHex(c.Memory[:]),
		A:       c.A,
		C:       c.C,
		PC:      c.PC,
		Halted:  c.Halted,
		Steps:   c.Steps,
	}

	data, err := yaml.Marshal(&state)
	if err != nil {
		return nil, fmt.Errorf("marshal cpu state: %w", err)
	}
	return data, nil
}

// RestoreFromBytes replaces the CPU state with a snapshot produced by
// HibernateToBytes. The hook is left untouched.
func (c *CPU) RestoreFromBytes(data []byte) error {
	var state humanReadableState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("unmarshal cpu state: %w", err)
	}

	program, err := ParseHex(state.Program)
	if err != nil {
		return fmt.Errorf("program: %w", err)
	}
	memory, err := ParseHex(state.Memory)
	if err != nil {
		return fmt.Errorf("memory: %w", err)
	}
	if len(memory) > MemorySize {
		return fmt.Errorf("memory holds %d cells, want at most %d", len(memory), MemorySize)
	}
	if state.A > 0xF {
		return fmt.Errorf("accumulator %d out of range", state.A)
	}

	c.Program = program
	c.Memory = [MemorySize]byte{}
	copy(c.Memory[:], memory)
	c.A = state.A
	c.C = state.C
	c.PC = state.PC
	c.Halted = state.Halted
	c.Steps = state.Steps

	return nil
}

// HibernateToFile writes the snapshot to path.
func (c *CPU) HibernateToFile(path string) error {
	data, err := c.HibernateToBytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// RestoreFromFile loads a snapshot written by HibernateToFile.
func (c *CPU) RestoreFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return c.RestoreFromBytes(data)
}
