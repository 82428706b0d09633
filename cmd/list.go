package cmd

import (
	"context"
	"flag"

	"github.com/google/subcommands"
	"github.com/jsutter/folio/renderer"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "display the holdings table" }
func (*listCmd) Usage() string {
	return `ptk list

  Displays all holdings with their last known prices and values.
`
}
func (c *listCmd) SetFlags(f *flag.FlagSet) {}

func (c *listCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	engine := openEngine()
	printMarkdown(renderer.HoldingsMarkdown(engine.Table()))
	return subcommands.ExitSuccess
}
