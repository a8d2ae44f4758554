package lang

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"hadydotai/handheld/logging"
)

type sourceFile struct {
	Lines []*sourceLine `@@*`
}

type sourceLine struct {
	Pos      lexer.Position
	Opcode   string `@Opcode`
	Argument string `@Int`
}

var (
	asmLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "comment", Pattern: `#[^\n]*`},
		{Name: "whitespace", Pattern: `\s+`},
		{Name: "Opcode", Pattern: `\b(nop|acc|jmp)\b`},
		{Name: "Int", Pattern: `[-+]?\d+`},
		{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	})

	asmParser = participle.MustBuild[sourceFile](
		participle.Lexer(asmLexer),
		participle.Elide("whitespace", "comment"),
	)
)

// Parse assembles program text, one "opcode argument" pair per line.
func Parse(filename string, source string) (Program, error) {
	file, err := asmParser.ParseString(filename, source)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, NewSyntaxError(perr.Position(), source, "", perr.Message(),
				"instructions are written as `nop|acc|jmp <signed integer>`")
		}
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if len(file.Lines) == 0 {
		return nil, NewSyntaxError(lexer.Position{Filename: filename}, source, "",
			"program has no instructions", "")
	}

	program := make(Program, 0, len(file.Lines))
	for _, line := range file.Lines {
		op, ok := ParseOpcode(line.Opcode)
		if !ok {
			// the lexer only emits known mnemonics, so this means the two tables disagree
			return nil, NewSyntaxError(line.Pos, source, line.Opcode,
				fmt.Sprintf("invalid opcode %q", line.Opcode), "")
		}
		arg, err := strconv.Atoi(line.Argument)
		if err != nil {
			argPos := line.Pos
			argPos.Column += len(line.Opcode) + 1
			return nil, NewSyntaxError(argPos, source, line.Argument,
				fmt.Sprintf("argument %s is out of range", line.Argument), "")
		}
		program = append(program, Instruction{Op: op, Argument: arg})
	}

	logging.Log(logging.LogLevelDebug, "Assembled program", "file", filename, "instructions", len(program))
	return program, nil
}
