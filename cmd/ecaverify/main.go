// Command ecaverify is the CLI driver for the ECA decision procedure:
// check a quantified formula for validity, convert between the
// serialized automaton formats of spec.md §6, and render an automaton
// as a Graphviz graph.
//
// Built on github.com/spf13/cobra, grounded in the domain-stack survey
// of _examples/jinterlante1206-AleutianLocal (the only retrieved repo
// carrying a CLI framework); the teacher's own cmd/labyrinth/main.go
// parses os.Args by hand, which does not scale to three subcommands
// each with their own flags.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	os.Exit(run())
}

// run executes the root command against the real process args and
// standard streams.
func run() int {
	return runArgs(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// runArgs builds a fresh root command wired to the given streams, runs
// it with args, and maps its outcome to a process exit code. Kept
// separate from run so tests can drive the CLI in-process without
// calling os.Exit.
func runArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := newRootCommand()
	root.SilenceErrors = true
	root.SilenceUsage = true
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	return exitCodeFor(err, stderr)
}

// exitCodeFor maps a cobra Execute error to a process exit code: an
// *exitError's code verbatim, 2 for any other error (spec.md §6's
// "<0 on a parse error", translated to the smallest POSIX usage-error
// code), 0 on success.
func exitCodeFor(err error, stderr io.Writer) int {
	var exit *exitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exit):
		return exit.code
	default:
		fmt.Fprintln(stderr, err)
		return 2
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "ecaverify",
		Short: "Decide validity of quantified elementary-cellular-automaton formulas",
	}
	root.AddCommand(newCheckCommand())
	root.AddCommand(newConvertCommand())
	root.AddCommand(newDotCommand())
	return root
}
