package main

import (
	"fmt"

	"hadydotai/handheld/lang"
	"hadydotai/handheld/logging"

	"github.com/alecthomas/repr"
)

type RunCommand struct {
	Dump bool `short:"d" long:"dump" description:"Dump the assembled program before running it"`
	Args struct {
		File string `positional-arg-name:"FILE" required:"yes"`
	} `positional-args:"yes"`
}

var runCommand RunCommand

func (cmd *RunCommand) Execute(args []string) error {
	program, err := loadProgram(cmd.Args.File)
	if err != nil {
		return err
	}

	if cmd.Dump {
		fmt.Fprintln(stdout, repr.String(program, repr.Indent("  ")))
	}

	logging.Log(logging.LogLevelDebug, "Running program")
	result, err := lang.Run(program)
	if err != nil {
		return fmt.Errorf("failed to run %s: %w", cmd.Args.File, err)
	}

	fmt.Fprintf(stdout, "Terminated: %t\n", result.Terminated)
	fmt.Fprintf(stdout, "Accumulator: %d\n", result.Accumulator)
	return nil
}

func init() {
	flagsparser.AddCommand(
		"run",
		"Run a program once",
		"Runs the program from address 0 until it either runs past its last instruction or is about to repeat one",
		&runCommand,
	)
}
