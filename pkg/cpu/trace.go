package cpu

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// TraceTable is a StepHook that collects executed instructions for display.
type TraceTable struct {
	Events []StepEvent
}

func (t *TraceTable) AfterStep(ev StepEvent) {
	t.Events = append(t.Events, ev)
}

// Render writes the collected events as a table.
func (t *TraceTable) Render(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetTitle("Execution trace")
	tw.AppendHeader(table.Row{"Step", "PC", "Instr", "Operand", "A", "C", "Next"})
	for _, ev := range t.Events {
		operand := ""
		if ev.HasOperand {
			operand = fmt.Sprintf("%X", ev.Operand)
		}
		carry := 0
		if ev.C {
			carry = 1
		}
		tw.AppendRow(table.Row{
			ev.Step,
			fmt.Sprintf("%02X", ev.PC),
			ev.Mnemonic(),
			operand,
			fmt.Sprintf("%X", ev.A),
			carry,
			fmt.Sprintf("%02X", ev.NextPC),
		})
	}
	tw.Render()
}
