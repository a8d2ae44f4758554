package lang

import (
	"fmt"
	"strings"
)

type Opcode byte

const (
	OpNop Opcode = iota
	OpAcc
	OpJmp
)

var opcodeNames = [...]string{"nop", "acc", "jmp"}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) {
		return opcodeNames[op]
	}
	return "unknown"
}

// ParseOpcode maps a mnemonic to its opcode.
func ParseOpcode(name string) (Opcode, bool) {
	for i, n := range opcodeNames {
		if n == name {
			return Opcode(i), true
		}
	}
	return 0, false
}

// Flippable reports whether the opcode can be the corrupted instruction,
// which only holds for nop and jmp.
func (op Opcode) Flippable() bool {
	return op == OpNop || op == OpJmp
}

type Instruction struct {
	Op       Opcode
	Argument int
}

func (i Instruction) String() string {
	return fmt.Sprintf("%s %+d", i.Op, i.Argument)
}

// Target is where the instruction would land if it were executed as a jmp.
func (i Instruction) Target(addr int) int {
	return addr + i.Argument
}

// Program is an assembled instruction sequence. Addresses are indices into it
// and len(p) is the terminal address.
type Program []Instruction

func (p Program) Clone() Program {
	clone := make(Program, len(p))
	copy(clone, p)
	return clone
}

// Flip returns a copy of the program with the nop/jmp at addr swapped. The
// receiver is left untouched.
func (p Program) Flip(addr int) (Program, error) {
	if addr < 0 || addr >= len(p) {
		return nil, newAddressError(ErrorMalformedProgram, addr,
			fmt.Sprintf("cannot flip address %d in a program of length %d", addr, len(p)))
	}

	flipped := p.Clone()
	switch flipped[addr].Op {
	case OpNop:
		flipped[addr].Op = OpJmp
	case OpJmp:
		flipped[addr].Op = OpNop
	default:
		return nil, newAddressError(ErrorNotFlippable, addr,
			fmt.Sprintf("%q at %d is not a nop or jmp", flipped[addr], addr))
	}
	return flipped, nil
}

func (p Program) String() string {
	var b strings.Builder
	for _, instr := range p {
		b.WriteString(instr.String())
		b.WriteByte('\n')
	}
	return b.String()
}
