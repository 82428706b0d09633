package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/subcommands"
	"github.com/jsutter/folio"
	"github.com/jsutter/folio/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	update bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "one-shot report: holdings, allocation and composition" }
func (*summaryCmd) Usage() string {
	return `ptk summary [-u]

  Displays the full portfolio report: the holdings table, the sector
  allocation, the total value and the stock/ETF composition.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.update, "u", false, "refresh prices before reporting")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	engine := openEngine()

	if c.update {
		report, err := engine.Refresh(ctx, folio.RefreshOptions{Timeout: 10 * time.Second})
		if err != nil {
			return fail(err)
		}
		if report.Failed > 0 {
			fmt.Printf("warning: no price for %d holding(s)\n", report.Failed)
		}
	}

	printMarkdown(renderer.SummaryMarkdown(engine.Table()))
	return subcommands.ExitSuccess
}
