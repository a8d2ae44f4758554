package lang

import (
	"fmt"
)

type State int

const (
	StateRunning State = iota
	StateTerminated
	StateLooped
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	case StateLooped:
		return "looped"
	default:
		return "unknown"
	}
}

// Trace records, per address, whether the instruction was fetched during a run.
type Trace []bool

func (t Trace) Clone() Trace {
	clone := make(Trace, len(t))
	copy(clone, t)
	return clone
}

// Executed lists the addresses that were fetched, ascending.
func (t Trace) Executed() []int {
	var addrs []int
	for addr, hit := range t {
		if hit {
			addrs = append(addrs, addr)
		}
	}
	return addrs
}

type RunResult struct {
	Accumulator int
	Terminated  bool
	Trace       Trace
}

// Snapshot is the machine state between two instructions.
type Snapshot struct {
	PC          int
	Accumulator int
	Trace       Trace
	State       State
}

func (s *Snapshot) Clone() *Snapshot {
	return &Snapshot{
		PC:          s.PC,
		Accumulator: s.Accumulator,
		Trace:       s.Trace.Clone(),
		State:       s.State,
	}
}

// Machine executes a program one instruction at a time. It stops for good
// once the pc reaches the terminal address or an instruction is about to be
// fetched a second time.
type Machine struct {
	program     Program
	current     *Snapshot
	history     []*Snapshot
	keepHistory bool
	breakpoints map[int]bool
}

func NewMachine(program Program) *Machine {
	m := &Machine{
		program:     program,
		keepHistory: true,
		breakpoints: make(map[int]bool),
	}
	m.Reset()
	return m
}

func (m *Machine) Reset() {
	m.current = &Snapshot{
		Trace: make(Trace, len(m.program)),
		State: StateRunning,
	}
	m.history = m.history[:0]
}

// Load swaps in a new program and resets. Breakpoints are kept.
func (m *Machine) Load(program Program) {
	m.program = program
	m.Reset()
}

func (m *Machine) Program() Program {
	return m.program
}

func (m *Machine) State() *Snapshot {
	return m.current.Clone()
}

func (m *Machine) SetBreakpoint(addr int, enabled bool) {
	if !enabled {
		delete(m.breakpoints, addr)
		return
	}
	m.breakpoints[addr] = true
}

func (m *Machine) HasBreakpoint(addr int) bool {
	return m.breakpoints[addr]
}

// Step fetches and executes a single instruction.
func (m *Machine) Step() (State, error) {
	cur := m.current
	if cur.State != StateRunning {
		return cur.State, nil
	}

	if cur.PC == len(m.program) {
		cur.State = StateTerminated
		return cur.State, nil
	}
	if cur.PC < 0 || cur.PC > len(m.program) {
		return cur.State, newAddressError(ErrorMalformedProgram, cur.PC,
			fmt.Sprintf("program counter %d is outside [0, %d]", cur.PC, len(m.program)))
	}
	if cur.Trace[cur.PC] {
		cur.State = StateLooped
		return cur.State, nil
	}

	if m.keepHistory {
		m.history = append(m.history, cur.Clone())
	}

	instr := m.program[cur.PC]
	cur.Trace[cur.PC] = true
	switch instr.Op {
	case OpNop:
		cur.PC++
	case OpAcc:
		cur.Accumulator += instr.Argument
		cur.PC++
	case OpJmp:
		cur.PC += instr.Argument
	default:
		return cur.State, newAddressError(ErrorMalformedProgram, cur.PC,
			fmt.Sprintf("unknown opcode %d", instr.Op))
	}
	return cur.State, nil
}

// Continue steps until the machine stops or lands on a breakpoint. At least
// one instruction is executed so continuing from a breakpoint makes progress.
func (m *Machine) Continue() (State, error) {
	for {
		state, err := m.Step()
		if err != nil || state != StateRunning {
			return state, err
		}
		if m.breakpoints[m.current.PC] {
			return state, nil
		}
	}
}

// StepBack undoes the last executed instruction.
func (m *Machine) StepBack() bool {
	if len(m.history) == 0 {
		return false
	}
	m.current = m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return true
}

func (m *Machine) Result() RunResult {
	return RunResult{
		Accumulator: m.current.Accumulator,
		Terminated:  m.current.State == StateTerminated,
		Trace:       m.current.Trace.Clone(),
	}
}

// Run executes program from address 0 until it terminates or loops. Every
// instruction is fetched at most once, so Run always returns within
// len(program)+1 steps.
func Run(program Program) (RunResult, error) {
	m := NewMachine(program)
	m.keepHistory = false
	for {
		state, err := m.Step()
		if err != nil {
			return m.Result(), err
		}
		if state != StateRunning {
			return m.Result(), nil
		}
	}
}
