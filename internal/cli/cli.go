// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/katalvlaran/friendrank/internal/logging"
)

// UsageCode is the exit code for command-line mistakes.
const UsageCode = 2

// ExitError is an error that carries a process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: UsageCode, Message: fmt.Sprintf(format, args...)}
}

// Commands lists the accepted command names in help order.
var Commands = []string{"rank", "recommend", "connect", "generate", "serve"}

// Globals are the options accepted before the command name. Empty strings
// mean "use the configuration file or its defaults".
type Globals struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
}

// Invocation is a parsed top-level command line.
type Invocation struct {
	Globals
	Command string
	Args    []string
}

// Parse splits args into global options, the command and its arguments.
// It returns shouldExit=true after printing help.
func Parse(args []string, output io.Writer) (*Invocation, bool, error) {
	fs := flag.NewFlagSet("friendrank", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprint(output, `
friendrank - PageRank scores and friend suggestions for a friendship graph.

Usage:
  friendrank [options] <command> [command options]

Commands:
  rank       score every node of an edge list and print the table
  recommend  suggest new friends for one node
  connect    add a friendship to a stored graph and rescore it
  generate   write a synthetic edge list
  serve      run the HTTP API

Options:
`)
		fs.PrintDefaults()
	}

	var inv Invocation
	fs.StringVar(&inv.ConfigPath, "config", "", "Path to an HCL configuration file.")
	fs.StringVar(&inv.LogLevel, "log-level", "", "Logging level: debug, info, warn or error (overrides the config file).")
	fs.StringVar(&inv.LogFormat, "log-format", "", "Log output format: json or text (overrides the config file).")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err)
	}

	if inv.LogLevel != "" && !logging.ValidLevel(inv.LogLevel) {
		return nil, false, usageError("invalid log-level %q: must be one of %s", inv.LogLevel, strings.Join(logging.Levels, ", "))
	}
	if inv.LogFormat != "" && !logging.ValidFormat(inv.LogFormat) {
		return nil, false, usageError("invalid log-format %q: must be one of %s", inv.LogFormat, strings.Join(logging.Formats, ", "))
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return nil, true, nil
	}
	inv.Command = fs.Arg(0)
	inv.Args = fs.Args()[1:]
	if !isCommand(inv.Command) {
		return nil, false, usageError("unknown command %q: must be one of %s", inv.Command, strings.Join(Commands, ", "))
	}

	return &inv, false, nil
}

func isCommand(name string) bool {
	for _, c := range Commands {
		if c == name {
			return true
		}
	}

	return false
}

// newFlagSet returns a command flag set that reports to output.
func newFlagSet(name, synopsis string, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "\nUsage:\n  friendrank %s %s\n\nOptions:\n", name, synopsis)
		fs.PrintDefaults()
	}

	return fs
}

// parseFlags runs fs over args and rejects stray positional arguments.
func parseFlags(fs *flag.FlagSet, args []string) (shouldExit bool, err error) {
	if err = fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}
		return false, usageError("%s: %s", fs.Name(), err)
	}
	if fs.NArg() > 0 {
		return false, usageError("%s: unexpected argument %q", fs.Name(), fs.Arg(0))
	}

	return false, nil
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	return set
}
