// Package cmd wires the corelox core (vm package) up to a command-line
// driver: REPL vs. file execution, verbosity flags, and the process
// exit-code contract. None of this is part of the core itself — the
// driver is an external collaborator per the language's own spec, free to
// evolve independently of Scanner/Compiler/VM.
package cmd

import (
	"fmt"
	"os"

	e "github.com/loxbytes/corelox/errors"
	"github.com/loxbytes/corelox/vm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	easy "github.com/t-tomalak/logrus-easy-formatter"
)

// Exit codes per the driver contract: 0 success, 64 usage, 65 compile
// error, 70 runtime error, 74 file read failure.
const (
	exitOK           = 0
	exitUsage        = 64
	exitCompileError = 65
	exitRuntimeError = 70
	exitIOError      = 74
)

func App() (app *cobra.Command) {
	app = &cobra.Command{
		Use:   "corelox [path]",
		Short: "Launch the `corelox` expression interpreter",
		Args:  cobra.ArbitraryArgs,
	}

	app.Flags().SortFlags = true
	defaultVerbosityStr := "INFO"
	verbosity := app.Flags().StringP("verbosity", "v", defaultVerbosityStr, "Logging verbosity")

	app.Run = func(_ *cobra.Command, args []string) {
		verbosityLvl, err := logrus.ParseLevel(*verbosity)
		if err != nil {
			verbosityLvl, _ = logrus.ParseLevel(defaultVerbosityStr)
		}
		logrus.SetLevel(verbosityLvl)
		logrus.SetFormatter(&easy.Formatter{LogFormat: "//DBG// %msg%\n"})

		os.Exit(appMain(args))
	}
	return
}

func appMain(args []string) int {
	if len(args) > 1 {
		fmt.Fprintln(os.Stderr, "Usage: corelox [path]")
		return exitUsage
	}

	v := vm.NewVM()

	if len(args) == 0 {
		if err := v.REPL(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitIOError
		}
		return exitOK
	}

	return runFile(v, args[0])
}

func runFile(v *vm.VM, path string) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitIOError
	}

	if _, err := v.Interpret(string(src)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if _, isRuntime := err.(*e.RuntimeError); isRuntime {
			return exitRuntimeError
		}
		return exitCompileError
	}
	return exitOK
}
