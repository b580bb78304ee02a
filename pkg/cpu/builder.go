package cpu

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Builder can create Machines.
type Builder struct {
	engine   sim.Engine
	freq     sim.Freq
	maxSteps int
	hook     StepHook
}

func NewBuilder() Builder {
	return Builder{
		freq:     1 * sim.GHz,
		maxSteps: 256,
	}
}

// WithEngine sets the engine. A serial engine is created when none is given.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the clock of the machine. One instruction runs per cycle.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithMaxSteps bounds execution. Zero or less means unbounded.
func (b Builder) WithMaxSteps(n int) Builder {
	b.maxSteps = n
	return b
}

func (b Builder) WithHook(hook StepHook) Builder {
	b.hook = hook
	return b
}

// Build creates a machine loaded with program.
func (b Builder) Build(name string, program []byte) *Machine {
	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	m := &Machine{
		cpu:      NewCPU(program),
		maxSteps: b.maxSteps,
	}
	m.cpu.Hook = b.hook
	m.TickingComponent = sim.NewTickingComponent(name, engine, b.freq, m)

	return m
}
