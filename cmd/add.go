package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"
	"github.com/jsutter/folio"
)

// addCmd holds the flags for the 'add' subcommand.
type addCmd struct {
	shares      string
	onDuplicate string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "resolve a symbol and add it to the portfolio" }
func (*addCmd) Usage() string {
	return `ptk add -shares <quantity> [-on-duplicate <replace|duplicate|cancel>] <symbol>

  Looks up the symbol (name, sector, current price) and adds the position.
  When the symbol is already held, -on-duplicate decides what happens;
  without it the command refuses to guess and fails.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.shares, "shares", "", "Number of shares, fractional allowed.")
	f.StringVar(&c.onDuplicate, "on-duplicate", "", "Policy when the symbol is already held: replace, duplicate or cancel.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Println("exactly one symbol expected")
		return subcommands.ExitUsageError
	}
	symbol := f.Arg(0)

	shares, err := folio.ParseQuantity(c.shares)
	if err != nil {
		fmt.Printf("invalid -shares %q: %v\n", c.shares, err)
		return subcommands.ExitUsageError
	}

	policy, err := parsePolicy(c.onDuplicate)
	if err != nil {
		fmt.Println(err)
		return subcommands.ExitUsageError
	}

	engine := openEngine()

	h, err := engine.Resolve(ctx, symbol, shares)
	if err != nil {
		return fail(err)
	}

	outcome, err := engine.AddOrMerge(h, policy)
	if err != nil {
		return fail(err)
	}
	fmt.Printf("%s %s: %s shares of %q (%s) at %s, value %s\n",
		h.Symbol, outcome, h.Shares, h.Company, h.Sector, h.Price, h.Value)
	return subcommands.ExitSuccess
}

func parsePolicy(s string) (folio.MergePolicy, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case "replace":
		return folio.MergeReplace, nil
	case "duplicate":
		return folio.MergeDuplicate, nil
	case "cancel":
		return folio.MergeCancel, nil
	}
	return 0, fmt.Errorf("invalid -on-duplicate %q: want replace, duplicate or cancel", s)
}
