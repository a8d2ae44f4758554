package lang

import (
	"fmt"

	"hadydotai/handheld/logging"
)

type RepairReport struct {
	Before     RunResult
	Fixed      bool
	FixAddress int
	// Replaced is the instruction at FixAddress before the flip.
	Replaced Instruction
	Program  Program
	After    RunResult
}

// Repair runs program, and if it loops, locates and flips the corrupted
// instruction and runs the repaired copy. The input program is not modified.
func Repair(program Program) (*RepairReport, error) {
	before, err := Run(program)
	if err != nil {
		return nil, err
	}

	report := &RepairReport{
		Before:     before,
		FixAddress: -1,
		Program:    program,
		After:      before,
	}
	if before.Terminated {
		logging.Log(logging.LogLevelInfo, "Program terminates, nothing to repair", "accumulator", before.Accumulator)
		return report, nil
	}

	logging.Log(logging.LogLevelInfo, "Program loops", "accumulator", before.Accumulator,
		"executed", len(before.Trace.Executed()))

	addr, err := LocateFix(program, before.Trace)
	if err != nil {
		return nil, err
	}

	fixed, err := program.Flip(addr)
	if err != nil {
		return nil, err
	}

	after, err := Run(fixed)
	if err != nil {
		return nil, err
	}
	if !after.Terminated {
		return nil, newAddressError(ErrorNoSingleFix, addr,
			fmt.Sprintf("flipping %q at %d still loops", program[addr], addr))
	}

	report.Fixed = true
	report.FixAddress = addr
	report.Replaced = program[addr]
	report.Program = fixed
	report.After = after
	return report, nil
}
