package lang_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"hadydotai/handheld/lang"
)

var _ = Describe("Parse", func() {
	It("should assemble one instruction per line", func() {
		program := mustParse(bootCode)

		Expect(program).To(HaveLen(9))
		Expect(program[0]).To(Equal(lang.Instruction{Op: lang.OpNop, Argument: 0}))
		Expect(program[2]).To(Equal(lang.Instruction{Op: lang.OpJmp, Argument: 4}))
		Expect(program[5]).To(Equal(lang.Instruction{Op: lang.OpAcc, Argument: -99}))
	})

	It("should skip blank lines, indentation and comments", func() {
		program := mustParse(`
			# boot sequence
			nop +0
			acc 7   # unsigned argument

			jmp -1
		`)

		Expect(program).To(Equal(lang.Program{
			{Op: lang.OpNop, Argument: 0},
			{Op: lang.OpAcc, Argument: 7},
			{Op: lang.OpJmp, Argument: -1},
		}))
	})

	It("should round-trip through String", func() {
		program := mustParse(bootCode)
		Expect(program.String()).To(Equal(bootCode))
	})

	It("should reject unknown opcodes with a position", func() {
		_, err := lang.Parse("bad.asm", "nop +0\nmul +2\n")

		Expect(err).To(MatchError(lang.ErrSyntax))
		var cerr *lang.ConsoleError
		Expect(errors.As(err, &cerr)).To(BeTrue())
		Expect(cerr.Pos.Line).To(Equal(2))
		Expect(err.Error()).To(ContainSubstring("bad.asm:2"))
	})

	It("should reject a missing argument", func() {
		_, err := lang.Parse("bad.asm", "nop\nacc +1\n")
		Expect(err).To(MatchError(lang.ErrSyntax))
	})

	It("should reject arguments that overflow", func() {
		_, err := lang.Parse("bad.asm", "acc +99999999999999999999999\n")
		Expect(err).To(MatchError(lang.ErrSyntax))
		Expect(err.Error()).To(ContainSubstring("out of range"))
	})

	It("should reject an empty program", func() {
		_, err := lang.Parse("empty.asm", "\n# nothing here\n")
		Expect(err).To(MatchError(lang.ErrSyntax))
	})
})

var _ = Describe("Opcode", func() {
	It("should parse known mnemonics", func() {
		for _, name := range []string{"nop", "acc", "jmp"} {
			op, ok := lang.ParseOpcode(name)
			Expect(ok).To(BeTrue())
			Expect(op.String()).To(Equal(name))
		}
		_, ok := lang.ParseOpcode("hlt")
		Expect(ok).To(BeFalse())
	})

	It("should only consider nop and jmp flippable", func() {
		Expect(lang.OpNop.Flippable()).To(BeTrue())
		Expect(lang.OpJmp.Flippable()).To(BeTrue())
		Expect(lang.OpAcc.Flippable()).To(BeFalse())
	})
})
