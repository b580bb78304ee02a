package cpu

import (
	"bytes"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"fourbit/pkg/asm"
)

func mustParse(text string) []byte {
	program, err := ParseHex(text)
	Expect(err).NotTo(HaveOccurred())
	return program
}

var _ = Describe("Machine", func() {
	var (
		mockCtrl *gomock.Controller
		hook     *MockStepHook
		engine   sim.Engine
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		hook = NewMockStepHook(mockCtrl)
		engine = sim.NewSerialEngine()
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should report every instruction to the hook", func() {
		gomock.InOrder(
			hook.EXPECT().AfterStep(StepEvent{
				Step: 1, PC: 0, Opcode: asm.OpLIT, Operand: 5, HasOperand: true,
				A: 5, NextPC: 2,
			}),
			hook.EXPECT().AfterStep(StepEvent{
				Step: 2, PC: 2, Opcode: asm.OpINC,
				A: 6, NextPC: 3,
			}),
		)

		m := NewBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			WithHook(hook).
			Build("Machine", mustParse("05D"))

		Expect(m.Run()).To(Succeed())
		Expect(m.CPU().A).To(Equal(byte(6)))
		Expect(m.CPU().Halted).To(BeTrue())
	})

	It("should tick on the engine it was built with", func() {
		m := NewBuilder().WithEngine(engine).Build("Machine", mustParse("05D"))
		Expect(m.Engine).To(BeIdenticalTo(engine))

		Expect(m.Run()).To(Succeed())
		Expect(engine.CurrentTime()).To(BeNumerically(">", 0))
	})

	It("should create a serial engine when none is given", func() {
		m := NewBuilder().Build("Machine", mustParse("05D"))
		Expect(m.Engine).NotTo(BeNil())
		Expect(m.Run()).To(Succeed())
		Expect(m.CPU().A).To(Equal(byte(6)))
	})

	It("should run an assembled loop to completion", func() {
		program := mustParse(asm.Assemble([]string{
			"lit 3",
			"store 0",
			"loop: load 0",
			"dec",
			"store 0",
			"gotoc d",
			"goto loop",
			"lit 9",
		}))

		m := NewBuilder().WithEngine(engine).Build("Machine", program)

		Expect(m.Run()).To(Succeed())
		Expect(m.CPU().A).To(Equal(byte(9)))
		Expect(m.CPU().Steps).To(Equal(22))
		Expect(m.Err()).NotTo(HaveOccurred())
	})

	It("should stop at the step limit", func() {
		m := NewBuilder().
			WithEngine(engine).
			WithMaxSteps(10).
			Build("Machine", mustParse("70"))

		Expect(m.Run()).To(MatchError(ErrStepLimit))
		Expect(m.CPU().Steps).To(Equal(10))
	})

	It("should fail on a truncated instruction", func() {
		hook.EXPECT().AfterStep(gomock.Any()).Times(1)

		m := NewBuilder().
			WithHook(hook).
			Build("Machine", mustParse("37"))

		Expect(m.Run()).To(MatchError(ErrTruncated))
		Expect(m.CPU().Halted).To(BeTrue())
	})

	It("should render a trace table", func() {
		trace := &TraceTable{}
		m := NewBuilder().WithHook(trace).Build("Machine", mustParse("0520"))

		Expect(m.Run()).To(Succeed())
		Expect(trace.Events).To(HaveLen(2))
		Expect(trace.Events[1].Mnemonic()).To(Equal("store"))

		var buf bytes.Buffer
		trace.Render(&buf)
		Expect(buf.String()).To(ContainSubstring("Execution trace"))
		Expect(buf.String()).To(ContainSubstring("store"))
		Expect(m.CPU().Memory[0]).To(Equal(byte(5)))
	})
})
