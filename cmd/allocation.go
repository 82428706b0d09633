package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/jsutter/folio/renderer"
)

type allocationCmd struct{}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "display the sector allocation breakdown" }
func (*allocationCmd) Usage() string {
	return `ptk allocation

  Groups holdings by sector and displays each sector's value and its share of
  the portfolio total.
`
}
func (c *allocationCmd) SetFlags(f *flag.FlagSet) {}

func (c *allocationCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	engine := openEngine()
	printMarkdown(renderer.AllocationMarkdown(engine.Allocation()))
	return subcommands.ExitSuccess
}
