package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/subcommands"
	"github.com/jsutter/folio"
)

// importCmd holds the flags for the 'import' subcommand.
type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "bulk-import holdings from a CSV or xlsx file" }
func (*importCmd) Usage() string {
	return `ptk import <file.csv|file.xlsx>

  Imports holdings from a CSV file or an xlsx workbook (first sheet). Symbol
  and Shares columns are required. When Company and Sector columns are present
  rows are appended as-is; otherwise each symbol is resolved through the quote
  provider, and rows that cannot be resolved are kept with a zero price for a
  later refresh.
`
}
func (c *importCmd) SetFlags(f *flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Println("exactly one import file expected")
		return subcommands.ExitUsageError
	}

	file, err := os.Open(f.Arg(0))
	if err != nil {
		return fail(err)
	}
	defer file.Close()

	engine := openEngine()
	var report folio.ImportReport
	switch strings.ToLower(filepath.Ext(f.Arg(0))) {
	case ".xlsx":
		report, err = engine.ImportXLSX(ctx, file)
	default:
		report, err = engine.ImportCSV(ctx, file)
	}
	if err != nil {
		return fail(err)
	}

	fmt.Printf("imported %d position(s)", report.Imported)
	if !report.FullInfo {
		fmt.Printf(", resolved %d", report.Resolved)
	}
	fmt.Println()
	for _, re := range report.RowErrors {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", re)
	}
	return subcommands.ExitSuccess
}
