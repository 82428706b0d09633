package folio

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// SectorAllocation is one row of the sector breakdown: the summed value of all
// holdings in one sector and its share of the portfolio total. It is derived
// on demand and never persisted.
type SectorAllocation struct {
	Sector string
	Value  Money
	Part   Percent
}

// ComputeSectorAllocation groups the table's rows by sector, sums their values
// and computes each sector's percentage of the total, rounded to two decimals.
// When the portfolio total is zero every percentage is zero. The result is
// sorted by percentage descending, ties broken by sector name ascending, so
// the output is deterministic. An empty table yields an empty slice.
func ComputeSectorAllocation(t *Table) []SectorAllocation {
	if t.Len() == 0 {
		return nil
	}

	sums := make(map[string]Money)
	order := make([]string, 0)
	for _, h := range t.holdings {
		if _, ok := sums[h.Sector]; !ok {
			order = append(order, h.Sector)
		}
		sums[h.Sector] = sums[h.Sector].Add(h.Value)
	}

	total := t.TotalValue()
	hundred := decimal.NewFromInt(100)

	out := make([]SectorAllocation, 0, len(order))
	for _, sector := range order {
		v := sums[sector]
		var part Percent
		if total.IsPositive() {
			part = Percent(v.Decimal().Mul(hundred).Div(total.Decimal()).Round(2).InexactFloat64())
		}
		out = append(out, SectorAllocation{Sector: sector, Value: v, Part: part})
	}

	slices.SortFunc(out, func(a, b SectorAllocation) int {
		if a.Part != b.Part {
			if a.Part > b.Part {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Sector, b.Sector)
	})
	return out
}
