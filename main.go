package main

import (
	"fmt"
	"io"
	"os"

	"hadydotai/handheld/lang"
	"hadydotai/handheld/logging"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	LogLevel logging.LogLevel `short:"l" long:"loglevel" description:"Set the level of logging" choice:"none" choice:"info" choice:"debug" default:"info"`
}

var (
	opts        Options
	flagsparser = flags.NewParser(&opts, flags.Default)

	// stdout receives command results, logs go to stderr.
	stdout io.Writer = os.Stdout
)

func main() {
	flagsparser.CommandHandler = func(command flags.Commander, args []string) error {
		logging.Setup(opts.LogLevel)
		err := command.Execute(args)
		logging.LogErr(err, "Command failed")
		return err
	}

	if _, err := flagsparser.Parse(); err != nil {
		switch flagsErr := err.(type) {
		case *flags.Error:
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
			os.Exit(1)
		default:
			os.Exit(1)
		}
	}
}

func loadProgram(filename string) (lang.Program, error) {
	source, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read program file %s: %w", filename, err)
	}

	program, err := lang.Parse(filename, string(source))
	if err != nil {
		return nil, err
	}
	logging.Log(logging.LogLevelInfo, "Loaded program", "file", filename, "instructions", len(program))
	return program, nil
}
