package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "remove positions from the portfolio" }
func (*removeCmd) Usage() string {
	return `ptk remove <symbol> [<symbol>...]

  Removes every row carrying one of the given symbols.
`
}
func (c *removeCmd) SetFlags(f *flag.FlagSet) {}

func (c *removeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Println("at least one symbol expected")
		return subcommands.ExitUsageError
	}

	engine := openEngine()
	n, err := engine.Remove(f.Args()...)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("removed %d position(s)\n", n)
	return subcommands.ExitSuccess
}
