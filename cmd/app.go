// Package cmd implements the CLI application to manage a stock portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/jsutter/folio"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "holdings")
	c.Register(&removeCmd{}, "holdings")
	c.Register(&listCmd{}, "holdings")
	c.Register(&importCmd{}, "holdings")
	c.Register(&exportCmd{}, "holdings")

	c.Register(&refreshCmd{}, "prices")

	c.Register(&allocationCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
}

// CommandNames lists every registered subcommand, for shell completion.
func CommandNames() []string {
	return []string{"add", "remove", "list", "import", "export", "refresh", "allocation", "summary"}
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var portfolioFile = flag.String("portfolio-file", "portfolio_data.json", "Path to the portfolio holdings file (JSON records format)")
var marketTZ = flag.String("market-tz", "", "IANA timezone of the exchange for market-hours gating (defaults to the local clock, like the original tracker)")

// openEngine loads the holdings file into an engine wired to the quote provider.
func openEngine() *folio.Engine {
	return folio.NewEngine(folio.NewStore(*portfolioFile), folio.NewYahooProvider())
}

// marketLocation resolves the -market-tz flag, local time when unset.
func marketLocation() (*time.Location, error) {
	if *marketTZ == "" {
		return time.Local, nil
	}
	return time.LoadLocation(*marketTZ)
}

// fail prints an error the way every subcommand reports failures.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitFailure
}
