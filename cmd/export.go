package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct{}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export holdings to a CSV file" }
func (*exportCmd) Usage() string {
	return `ptk export <file.csv>

  Writes the holdings table as CSV with the store's logical columns.
`
}
func (c *exportCmd) SetFlags(f *flag.FlagSet) {}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Println("exactly one output file expected")
		return subcommands.ExitUsageError
	}

	file, err := os.Create(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	defer file.Close()

	engine := openEngine()
	if err := engine.ExportCSV(file); err != nil {
		return fail(err)
	}
	fmt.Printf("exported %d position(s) to %s\n", engine.Table().Len(), f.Arg(0))
	return subcommands.ExitSuccess
}
