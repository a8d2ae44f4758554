package lang_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hadydotai/handheld/lang"
)

var _ = Describe("Run", func() {
	It("should stop before repeating an instruction", func() {
		result, err := lang.Run(mustParse(bootCode))

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Terminated).To(BeFalse())
		Expect(result.Accumulator).To(Equal(5))
		Expect(result.Trace).To(HaveLen(9))
		Expect(result.Trace.Executed()).To(Equal([]int{0, 1, 2, 3, 4, 6, 7}))
	})

	It("should terminate when the pc reaches the end", func() {
		result, err := lang.Run(mustParse("acc +5"))

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Terminated).To(BeTrue())
		Expect(result.Accumulator).To(Equal(5))
		Expect(result.Trace).To(Equal(lang.Trace{true}))
	})

	It("should detect a jmp to itself on the first re-fetch", func() {
		result, err := lang.Run(mustParse("jmp +0"))

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Terminated).To(BeFalse())
		Expect(result.Accumulator).To(Equal(0))
		Expect(result.Trace).To(Equal(lang.Trace{true}))
	})

	It("should be deterministic and leave the program untouched", func() {
		program := mustParse(bootCode)
		original := program.Clone()

		first, err := lang.Run(program)
		Expect(err).NotTo(HaveOccurred())
		second, err := lang.Run(program)
		Expect(err).NotTo(HaveOccurred())

		Expect(second).To(Equal(first))
		Expect(program).To(Equal(original))
	})

	It("should hand out a fresh trace per run", func() {
		program := mustParse(bootCode)
		first, _ := lang.Run(program)
		first.Trace[5] = true

		second, _ := lang.Run(program)
		Expect(second.Trace[5]).To(BeFalse())
	})

	DescribeTable("should reject jumps out of range",
		func(source string, pc int) {
			_, err := lang.Run(mustParse(source))

			Expect(err).To(MatchError(lang.ErrMalformedProgram))
			Expect(err.(*lang.ConsoleError).Address).To(Equal(pc))
		},
		Entry("past the terminal address", "nop +0\njmp +5", 6),
		Entry("before the first instruction", "acc +1\njmp -2", -1),
	)

	It("should accept a jump straight to the terminal address", func() {
		result, err := lang.Run(mustParse("jmp +2\njmp +0"))

		Expect(err).NotTo(HaveOccurred())
		Expect(result.Terminated).To(BeTrue())
		Expect(result.Trace).To(Equal(lang.Trace{true, false}))
	})
})

var _ = Describe("Machine", func() {
	var (
		machine *lang.Machine
	)

	BeforeEach(func() {
		machine = lang.NewMachine(mustParse(bootCode))
	})

	It("should execute one instruction per step", func() {
		state, err := machine.Step()
		Expect(err).NotTo(HaveOccurred())
		Expect(state).To(Equal(lang.StateRunning))
		Expect(machine.State().PC).To(Equal(1))

		_, err = machine.Step()
		Expect(err).NotTo(HaveOccurred())
		Expect(machine.State().PC).To(Equal(2))
		Expect(machine.State().Accumulator).To(Equal(1))

		_, err = machine.Step()
		Expect(err).NotTo(HaveOccurred())
		Expect(machine.State().PC).To(Equal(6))
	})

	It("should stay stopped once a loop is detected", func() {
		state, err := machine.Continue()
		Expect(err).NotTo(HaveOccurred())
		Expect(state).To(Equal(lang.StateLooped))
		Expect(machine.State().PC).To(Equal(1))

		state, err = machine.Step()
		Expect(err).NotTo(HaveOccurred())
		Expect(state).To(Equal(lang.StateLooped))
		Expect(machine.Result().Accumulator).To(Equal(5))
	})

	It("should pause at breakpoints and resume past them", func() {
		machine.SetBreakpoint(7, true)
		Expect(machine.HasBreakpoint(7)).To(BeTrue())

		state, err := machine.Continue()
		Expect(err).NotTo(HaveOccurred())
		Expect(state).To(Equal(lang.StateRunning))
		Expect(machine.State().PC).To(Equal(7))
		Expect(machine.State().Accumulator).To(Equal(2))

		state, err = machine.Continue()
		Expect(err).NotTo(HaveOccurred())
		Expect(state).To(Equal(lang.StateLooped))

		machine.SetBreakpoint(7, false)
		Expect(machine.HasBreakpoint(7)).To(BeFalse())
	})

	It("should step back to the previous state", func() {
		Expect(machine.StepBack()).To(BeFalse())

		_, _ = machine.Step()
		_, _ = machine.Step()
		Expect(machine.StepBack()).To(BeTrue())

		state := machine.State()
		Expect(state.PC).To(Equal(1))
		Expect(state.Accumulator).To(Equal(0))
		Expect(state.Trace.Executed()).To(Equal([]int{0}))
	})

	It("should reset and load a new program keeping breakpoints", func() {
		machine.SetBreakpoint(3, true)
		_, _ = machine.Continue()

		flipped, err := machine.Program().Flip(7)
		Expect(err).NotTo(HaveOccurred())
		machine.Load(flipped)

		Expect(machine.State().PC).To(Equal(0))
		Expect(machine.State().Trace.Executed()).To(BeEmpty())
		Expect(machine.HasBreakpoint(3)).To(BeTrue())

		machine.SetBreakpoint(3, false)
		state, err := machine.Continue()
		Expect(err).NotTo(HaveOccurred())
		Expect(state).To(Equal(lang.StateTerminated))
		Expect(machine.Result()).To(Equal(lang.RunResult{
			Accumulator: 8,
			Terminated:  true,
			Trace:       lang.Trace{true, true, true, false, false, false, true, true, true},
		}))
	})
})
