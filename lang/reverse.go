package lang

// ReverseIndex maps a target address to the nop/jmp addresses whose jump
// would land there. Sources are stored in ascending address order.
type ReverseIndex map[int][]int

// BuildReverseIndex turns every nop and jmp into a "come from" edge. A nop
// uses its argument as if it were a jmp, since flipping it would make it one.
func BuildReverseIndex(program Program) ReverseIndex {
	index := make(ReverseIndex, len(program))
	for addr, instr := range program {
		if !instr.Op.Flippable() {
			continue
		}
		target := instr.Target(addr)
		index[target] = append(index[target], addr)
	}
	return index
}

func (idx ReverseIndex) Sources(target int) []int {
	return idx[target]
}

// SourcesWith filters the sources of target down to those holding op.
func (idx ReverseIndex) SourcesWith(program Program, target int, op Opcode) []int {
	var sources []int
	for _, src := range idx[target] {
		if program[src].Op == op {
			sources = append(sources, src)
		}
	}
	return sources
}
