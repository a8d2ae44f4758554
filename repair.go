package main

import (
	"fmt"

	"hadydotai/handheld/lang"
)

type RepairCommand struct {
	Args struct {
		File string `positional-arg-name:"FILE" required:"yes"`
	} `positional-args:"yes"`
}

var repairCommand RepairCommand

func (cmd *RepairCommand) Execute(args []string) error {
	program, err := loadProgram(cmd.Args.File)
	if err != nil {
		return err
	}

	report, err := lang.Repair(program)
	if err != nil {
		return fmt.Errorf("failed to repair %s: %w", cmd.Args.File, err)
	}

	if !report.Fixed {
		fmt.Fprintln(stdout, "Program terminates, nothing to fix")
		fmt.Fprintf(stdout, "Final accumulator value: %d\n", report.After.Accumulator)
		return nil
	}

	fmt.Fprintf(stdout, "Final accumulator value before fixing: %d\n", report.Before.Accumulator)
	fmt.Fprintf(stdout, "Fixed code by changing instruction at %d (%s -> %s)\n",
		report.FixAddress, report.Replaced, report.Program[report.FixAddress])
	fmt.Fprintf(stdout, "Fixed code terminated: %t\n", report.After.Terminated)
	fmt.Fprintf(stdout, "Final accumulator value: %d\n", report.After.Accumulator)
	return nil
}

func init() {
	flagsparser.AddCommand(
		"repair",
		"Find and flip the corrupted nop/jmp",
		"Runs the program, and if it loops, locates the single nop or jmp whose flip makes it terminate, then runs the repaired program",
		&repairCommand,
	)
}
