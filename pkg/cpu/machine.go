package cpu

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"

	"fourbit/pkg/utils"
)

// Machine runs a CPU as a ticking component: one instruction per cycle.
type Machine struct {
	*sim.TickingComponent

	cpu      *CPU
	maxSteps int
	err      error
}

// CPU exposes the wrapped processor state.
func (m *Machine) CPU() *CPU {
	return m.cpu
}

// Err is the error that stopped the machine, if any.
func (m *Machine) Err() error {
	return m.err
}

// Tick runs one instruction.
func (m *Machine) Tick() (madeProgress bool) {
	if m.cpu.Halted || m.err != nil {
		return false
	}

	if m.maxSteps > 0 && m.cpu.Steps >= m.maxSteps {
		m.err = fmt.Errorf("%w after %d steps (pc=%X)", ErrStepLimit, m.cpu.Steps, m.cpu.PC)
		return false
	}

	if err := m.cpu.Step(); err != nil {
		m.err = err
		return false
	}

	utils.Trace("Tick",
		"Name", m.Name(),
		"Time", float64(m.Engine.CurrentTime()),
		"PC", m.cpu.PC,
		"Halted", m.cpu.Halted)

	return !m.cpu.Halted
}

// Run schedules the first tick and drives the engine until the machine
// stops making progress.
func (m *Machine) Run() error {
	m.TickNow()
	m.Engine.Run()
	return m.err
}
