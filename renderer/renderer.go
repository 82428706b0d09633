// Package renderer formats engine results as markdown for terminal display.
package renderer

import (
	"fmt"
	"strings"

	"github.com/jsutter/folio"
)

// HoldingsMarkdown renders the holdings table with a total line.
func HoldingsMarkdown(t *folio.Table) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings\n\n")
	if t.Len() == 0 {
		fmt.Fprintln(&b, "No holdings.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Company | Sector | Shares | Current Price | Total Value | Last Updated |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|:---|")
	for _, h := range t.Holdings() {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			h.Symbol,
			h.Company,
			h.Sector,
			h.Shares,
			h.Price,
			h.Value,
			lastUpdated(h),
		)
	}
	fmt.Fprintf(&b, "\nTotal Value: %s | Securities: %d\n", t.TotalValue(), t.Len())
	return b.String()
}

// AllocationMarkdown renders the sector breakdown.
func AllocationMarkdown(allocations []folio.SectorAllocation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Sector Allocation\n\n")
	if len(allocations) == 0 {
		fmt.Fprintln(&b, "No holdings.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Sector | Value | Allocation |")
	fmt.Fprintln(&b, "|:---|---:|---:|")
	for _, a := range allocations {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", a.Sector, a.Value, a.Part)
	}
	return b.String()
}

// SummaryMarkdown renders the full one-shot report: holdings, allocation and
// a composition count of plain stocks versus ETF-bucketed rows.
func SummaryMarkdown(t *folio.Table) string {
	var b strings.Builder
	b.WriteString(HoldingsMarkdown(t))
	b.WriteString("\n")
	b.WriteString(AllocationMarkdown(folio.ComputeSectorAllocation(t)))

	stocks, etfs := 0, 0
	for _, h := range t.Holdings() {
		if strings.Contains(h.Sector, "ETF") {
			etfs++
		} else {
			stocks++
		}
	}
	fmt.Fprintf(&b, "\n## Composition\n\n")
	fmt.Fprintf(&b, "- Stocks: %d\n", stocks)
	fmt.Fprintf(&b, "- ETFs: %d\n", etfs)
	return b.String()
}

func lastUpdated(h folio.Holding) string {
	if h.LastUpdated.IsZero() {
		return "Never"
	}
	return h.LastUpdated.Format("2006-01-02 15:04:05")
}
