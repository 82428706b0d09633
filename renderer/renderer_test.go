package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/jsutter/folio"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func sampleTable(t *testing.T) *folio.Table {
	t.Helper()
	at := time.Date(2025, time.August, 26, 10, 30, 0, 0, time.Local)
	table := folio.NewTable()
	for _, h := range []folio.Holding{
		folio.NewHolding("AAPL", "Apple", "Information Technology", folio.Q(7.0), folio.USD(150.0), at),
		folio.NewHolding("VTI", "Vanguard Total Stock Market Index Fund ETF", "Index ETF", folio.Q(13.0), folio.USD(280.0), at),
		folio.NewHolding("BA", "Boeing", "Industrials", folio.Q(3.0), folio.USD(180.0), time.Time{}),
	} {
		if _, err := table.AddOrMerge(h, 0); err != nil {
			t.Fatal(err)
		}
	}
	return table
}

// headings parses the markdown and collects the heading texts, so tests check
// document structure rather than raw string offsets.
func headings(t *testing.T, md string) []string {
	t.Helper()
	source := []byte(md)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var got []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			var sb strings.Builder
			for i := 0; i < h.Lines().Len(); i++ {
				line := h.Lines().At(i)
				sb.Write(line.Value(source))
			}
			got = append(got, sb.String())
		}
		return ast.WalkContinue, nil
	})
	return got
}

func TestHoldingsMarkdown(t *testing.T) {
	md := HoldingsMarkdown(sampleTable(t))

	if got := headings(t, md); len(got) != 1 || got[0] != "Holdings" {
		t.Errorf("headings = %v, want [Holdings]", got)
	}
	for _, want := range []string{"| AAPL |", "| VTI |", "| BA |", "$1,050.00", "Never", "Securities: 3"} {
		if !strings.Contains(md, want) {
			t.Errorf("holdings markdown is missing %q:\n%s", want, md)
		}
	}
}

func TestHoldingsMarkdown_Empty(t *testing.T) {
	md := HoldingsMarkdown(folio.NewTable())
	if !strings.Contains(md, "No holdings.") {
		t.Errorf("empty table should render a placeholder:\n%s", md)
	}
}

func TestAllocationMarkdown(t *testing.T) {
	table := sampleTable(t)
	md := AllocationMarkdown(folio.ComputeSectorAllocation(table))

	if got := headings(t, md); len(got) != 1 || got[0] != "Sector Allocation" {
		t.Errorf("headings = %v, want [Sector Allocation]", got)
	}
	// rows come out sorted by share, largest first
	idx := strings.Index(md, "Index ETF")
	tech := strings.Index(md, "Information Technology")
	ind := strings.Index(md, "Industrials")
	if idx == -1 || tech == -1 || ind == -1 || !(idx < tech && tech < ind) {
		t.Errorf("allocation rows not sorted by percentage descending:\n%s", md)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	md := SummaryMarkdown(sampleTable(t))

	got := headings(t, md)
	want := []string{"Holdings", "Sector Allocation", "Composition"}
	if len(got) != len(want) {
		t.Fatalf("headings = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("heading %d = %q, want %q", i, got[i], want[i])
		}
	}
	if !strings.Contains(md, "Stocks: 2") || !strings.Contains(md, "ETFs: 1") {
		t.Errorf("composition counts wrong:\n%s", md)
	}
}
