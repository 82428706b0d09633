package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/jsutter/folio"
)

// refreshCmd holds the flags for the 'refresh' subcommand.
type refreshCmd struct {
	jobs         int
	timeout      time.Duration
	ifMarketOpen bool
}

func (*refreshCmd) Name() string     { return "refresh" }
func (*refreshCmd) Synopsis() string { return "update all holdings with current prices" }
func (*refreshCmd) Usage() string {
	return `ptk refresh [-jobs <n>] [-timeout <d>] [-if-market-open]

  Fetches a fresh price for every holding. Symbols that cannot be priced keep
  their previous price and timestamp; the rest are updated and saved.
`
}

func (c *refreshCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.jobs, "jobs", 4, "How many price fetches run concurrently.")
	f.DurationVar(&c.timeout, "timeout", 10*time.Second, "Per-symbol fetch timeout.")
	f.BoolVar(&c.ifMarketOpen, "if-market-open", false, "Only refresh during regular trading hours (see -market-tz).")
}

func (c *refreshCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ifMarketOpen {
		loc, err := marketLocation()
		if err != nil {
			return fail(err)
		}
		if !folio.InMarketHours(time.Now(), loc) {
			fmt.Println("market is closed, skipping refresh")
			return subcommands.ExitSuccess
		}
	}

	engine := openEngine()
	report, err := engine.Refresh(ctx, folio.RefreshOptions{Jobs: c.jobs, Timeout: c.timeout})
	if err != nil {
		return fail(err)
	}

	fmt.Printf("updated %d holding(s), %d failed\n", report.Updated, report.Failed)
	if report.Failed > 0 {
		fmt.Printf("no price for: %s\n", strings.Join(report.FailedSymbols, ", "))
	}
	return subcommands.ExitSuccess
}
