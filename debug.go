package main

import (
	"hadydotai/handheld/lang"
	"hadydotai/handheld/logging"
)

type DebugCommand struct {
	Breakpoints []int `short:"b" long:"break" description:"Set a breakpoint at an address before starting (repeatable)"`
	Args        struct {
		File string `positional-arg-name:"FILE" required:"yes"`
	} `positional-args:"yes"`
}

var debugCommand DebugCommand

func (cmd *DebugCommand) Execute(args []string) error {
	program, err := loadProgram(cmd.Args.File)
	if err != nil {
		return err
	}

	machine := lang.NewMachine(program)
	for _, addr := range cmd.Breakpoints {
		machine.SetBreakpoint(addr, true)
	}

	repl, err := NewREPL(machine)
	if err != nil {
		return err
	}
	logging.Log(logging.LogLevelDebug, "Starting debugger", "file", cmd.Args.File)
	repl.Start()
	return nil
}

func init() {
	flagsparser.AddCommand(
		"debug",
		"Step through a program interactively",
		"Opens a step debugger over the program with breakpoints, stepping back and fix lookup",
		&debugCommand,
	)
}
