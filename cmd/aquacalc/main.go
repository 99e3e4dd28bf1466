// Command aquacalc runs the dashboard calculators and the project filter offline.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"path"

	"github.com/google/subcommands"
)

func commands(out io.Writer) []subcommands.Command {
	return []subcommands.Command{
		&loanCmd{out: out},
		&insuranceCmd{out: out},
		&investCmd{out: out},
		&projectsCmd{out: out},
	}
}

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range commands(os.Stdout) {
		commander.Register(c, "calculators")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
