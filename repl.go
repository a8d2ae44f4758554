package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"hadydotai/handheld/lang"

	"github.com/alecthomas/repr"
	"github.com/chzyer/readline"
)

type REPL struct {
	machine *lang.Machine
	rl      *readline.Instance
	out     io.Writer
}

func NewREPL(machine *lang.Machine) (*REPL, error) {
	rlConfig := &readline.Config{
		Prompt:          "\033[32m⟩\033[0m ",
		HistoryFile:     "/tmp/.handheld_debugger_history",
		HistoryLimit:    1000,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	}

	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to start debugger prompt: %w", err)
	}

	return &REPL{
		machine: machine,
		rl:      rl,
		out:     rl.Stdout(),
	}, nil
}

var completer = readline.NewPrefixCompleter(
	readline.PcItem("step"), readline.PcItem("back"),
	readline.PcItem("continue"),
	readline.PcItem("break"), readline.PcItem("clear"),
	readline.PcItem("pc"), readline.PcItem("acc"),
	readline.PcItem("trace"), readline.PcItem("list"),
	readline.PcItem("state"),
	readline.PcItem("fix"), readline.PcItem("flip"),
	readline.PcItem("restart"),
	readline.PcItem("help"), readline.PcItem("quit"),
)

func (r *REPL) printHelp() {
	help := `
Available Commands:
  step, s, n       Execute next instruction
  back, b          Step back to previous state
  continue, c      Continue until a breakpoint, termination or loop
  break <addr>     Set breakpoint at address
  clear <addr>     Remove breakpoint at address
  pc               Show current program counter
  acc              Show accumulator
  trace            Show executed addresses
  list             Display the program
  state            Dump the full machine state
  fix              Locate the nop/jmp whose flip makes the program terminate
  flip <addr>      Swap nop/jmp at address and restart
  restart, r       Restart program execution
  help, h          Show this help message
  quit, q          Exit debugger
`
	fmt.Fprintln(r.out, help)
}

func (r *REPL) Start() {
	defer r.rl.Close()

	fmt.Fprintln(r.out, "\033[1;36mHandheld Debugger\033[0m")
	fmt.Fprintln(r.out, "Type 'help' or 'h' for available commands")
	fmt.Fprintln(r.out)

	for {
		line, err := r.rl.Readline()
		if err != nil { // io.EOF, readline.ErrInterrupt
			break
		}

		if !r.exec(strings.Fields(strings.TrimSpace(line))) {
			return
		}
	}
}

// exec runs one debugger command and reports whether the session continues.
func (r *REPL) exec(args []string) bool {
	if len(args) == 0 {
		return true
	}

	switch args[0] {
	case "help", "h":
		r.printHelp()

	case "step", "s", "n":
		state, err := r.machine.Step()
		r.report(state, err)

	case "back", "b":
		if !r.machine.StepBack() {
			fmt.Fprintln(r.out, "Already at the start")
		}
		r.printState()

	case "continue", "c":
		state, err := r.machine.Continue()
		r.report(state, err)

	case "break", "clear":
		if len(args) < 2 {
			fmt.Fprintf(r.out, "Usage: %s <addr>\n", args[0])
			return true
		}
		addr, err := strconv.Atoi(args[1])
		if err != nil || addr < 0 || addr >= len(r.machine.Program()) {
			fmt.Fprintf(r.out, "Invalid address: %s\n", args[1])
			return true
		}
		r.machine.SetBreakpoint(addr, args[0] == "break")
		if args[0] == "break" {
			fmt.Fprintf(r.out, "Breakpoint set at %d\n", addr)
		} else {
			fmt.Fprintf(r.out, "Breakpoint cleared at %d\n", addr)
		}

	case "pc":
		r.printState()

	case "acc":
		fmt.Fprintf(r.out, "Accumulator: %d\n", r.machine.State().Accumulator)

	case "trace":
		fmt.Fprintf(r.out, "Executed: %v\n", r.machine.State().Trace.Executed())

	case "list":
		r.list()

	case "state":
		fmt.Fprintln(r.out, repr.String(r.machine.State(), repr.Indent("  ")))

	case "fix":
		r.fix()

	case "flip":
		if len(args) < 2 {
			fmt.Fprintln(r.out, "Usage: flip <addr>")
			return true
		}
		addr, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintf(r.out, "Invalid address: %s\n", args[1])
			return true
		}
		flipped, err := r.machine.Program().Flip(addr)
		if err != nil {
			fmt.Fprintf(r.out, "\033[31m%v\033[0m\n", err)
			return true
		}
		r.machine.Load(flipped)
		fmt.Fprintf(r.out, "Flipped %d to %s, program restarted\n", addr, flipped[addr])

	case "restart", "r":
		r.machine.Reset()
		fmt.Fprintln(r.out, "Program restarted")

	case "quit", "q":
		fmt.Fprintln(r.out, "\033[32mGoodbye!\033[0m")
		return false

	default:
		fmt.Fprintf(r.out, "\033[31mUnknown command: %s\033[0m\n", args[0])
	}
	return true
}

func (r *REPL) report(state lang.State, err error) {
	if err != nil {
		fmt.Fprintf(r.out, "\033[31mExecution error: %v\033[0m\n", err)
		return
	}
	switch state {
	case lang.StateTerminated:
		fmt.Fprintf(r.out, "\033[32mProgram terminated\033[0m, accumulator %d\n", r.machine.State().Accumulator)
	case lang.StateLooped:
		fmt.Fprintf(r.out, "\033[31mLoop detected at %d\033[0m, accumulator %d\n",
			r.machine.State().PC, r.machine.State().Accumulator)
	default:
		if r.machine.HasBreakpoint(r.machine.State().PC) {
			fmt.Fprintf(r.out, "\033[31mBreakpoint\033[0m at %d\n", r.machine.State().PC)
		}
		r.printState()
	}
}

func (r *REPL) printState() {
	state := r.machine.State()
	program := r.machine.Program()
	if state.PC < 0 || state.PC >= len(program) {
		fmt.Fprintf(r.out, "\033[1;35mPC: %d\033[0m (past the program), \033[1;32mAccumulator:\033[0m %d\n",
			state.PC, state.Accumulator)
		return
	}
	fmt.Fprintf(r.out, "\033[1;35mPC: %d\033[0m (\033[1;33m%s\033[0m), \033[1;32mAccumulator:\033[0m %d\n",
		state.PC, program[state.PC], state.Accumulator)
}

func (r *REPL) list() {
	state := r.machine.State()
	width := len(strconv.Itoa(len(r.machine.Program())))
	for addr, instr := range r.machine.Program() {
		marker := " "
		if addr == state.PC {
			marker = ">"
		}
		bp := "│"
		if r.machine.HasBreakpoint(addr) {
			bp = "●"
		}
		executed := " "
		if state.Trace[addr] {
			executed = "*"
		}
		fmt.Fprintf(r.out, "%s%*d %s%s %s\n", marker, width, addr, bp, executed, instr)
	}
}

func (r *REPL) fix() {
	program := r.machine.Program()
	result, err := lang.Run(program)
	if err != nil {
		fmt.Fprintf(r.out, "\033[31m%v\033[0m\n", err)
		return
	}
	if result.Terminated {
		fmt.Fprintln(r.out, "Program already terminates")
		return
	}
	addr, err := lang.LocateFix(program, result.Trace)
	if err != nil {
		fmt.Fprintf(r.out, "\033[31m%v\033[0m\n", err)
		return
	}
	fmt.Fprintf(r.out, "Flip %d (%s) to make the program terminate\n", addr, program[addr])
}
