package lang

import (
	"fmt"

	"hadydotai/handheld/logging"
)

type fixSearch struct {
	program Program
	trace   Trace
	index   ReverseIndex
	visited map[int]bool
}

// LocateFix finds the nop or jmp whose flip makes program terminate, given
// the trace of a run that looped. It walks backwards from the terminal
// address over the reverse control-flow graph. When several jmps can lead to
// the cursor each one is explored in ascending order and the first fix found
// wins.
func LocateFix(program Program, trace Trace) (int, error) {
	if len(trace) != len(program) {
		return -1, newAddressError(ErrorMalformedProgram, len(trace),
			fmt.Sprintf("trace covers %d instructions, program has %d", len(trace), len(program)))
	}

	s := &fixSearch{
		program: program,
		trace:   trace,
		index:   BuildReverseIndex(program),
		visited: make(map[int]bool),
	}

	stack := []int{len(program)}
	for len(stack) > 0 {
		start := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		logging.Log(logging.LogLevelDebug, "Begin trace", "start", start)
		fix, branches, err := s.walk(start)
		if err != nil {
			return -1, err
		}
		if fix >= 0 {
			logging.Log(logging.LogLevelDebug, "Found fix", "address", fix, "instruction", program[fix].String())
			return fix, nil
		}
		for i := len(branches) - 1; i >= 0; i-- {
			stack = append(stack, branches[i])
		}
	}

	return -1, newAddressError(ErrorNoSingleFix, len(program),
		"none of the backward paths from the terminal address can be fixed by a single flip")
}

// walk follows one backward path. It returns either a fix address, the jmp
// sources to branch on, or neither when the path is a dead end.
func (s *fixSearch) walk(pc int) (int, []int, error) {
	for pc > 0 {
		if s.visited[pc] {
			logging.Log(logging.LogLevelDebug, "Already explored, path terminates", "pc", pc)
			return -1, nil, nil
		}
		s.visited[pc] = true

		if logging.DebugEnabled() {
			logging.Log(logging.LogLevelDebug, "Checking", "pc", pc, "previous", s.program[pc-1].String())
		}

		// an executed nop that would lead here becomes a jmp
		for _, src := range s.index.Sources(pc) {
			if s.program[src].Op == OpNop && s.trace[src] {
				logging.Log(logging.LogLevelDebug, "Executed nop leads here", "pc", pc, "source", src)
				return src, nil, nil
			}
		}

		prev := pc - 1
		if s.program[prev].Op != OpJmp {
			pc = prev
			continue
		}

		if s.trace[prev] {
			logging.Log(logging.LogLevelDebug, "Previous jmp was executed", "pc", pc, "source", prev)
			return prev, nil, nil
		}

		// an unexecuted jmp in front of pc means control can only arrive by jumping here
		jumps := s.index.SourcesWith(s.program, pc, OpJmp)
		switch len(jumps) {
		case 0:
			logging.Log(logging.LogLevelDebug, "No jmp leads here, path terminates", "pc", pc)
			return -1, nil, nil
		case 1:
			logging.Log(logging.LogLevelDebug, "Single jmp leads here", "pc", pc, "source", jumps[0])
			pc = jumps[0]
		default:
			logging.Log(logging.LogLevelDebug, "Multiple jmps lead here, branching", "pc", pc, "sources", jumps)
			return -1, jumps, nil
		}
	}

	return -1, nil, newAddressError(ErrorNoSingleFix, 0, "trace moved out of the valid address range")
}
