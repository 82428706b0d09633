package folio

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"
)

func TestRefreshPrices(t *testing.T) {
	table := NewTable()
	table.append(aapl()) // 7 shares, never priced

	provider := &fakeProvider{prices: map[string]float64{"AAPL": 150.0}}
	report := RefreshPrices(context.Background(), table, provider, RefreshOptions{})

	if report.Updated != 1 || report.Failed != 0 {
		t.Fatalf("report = %+v, want 1 updated, 0 failed", report)
	}
	got := *table.Get("AAPL")
	if !got.Price.Equal(USD(150.0)) {
		t.Errorf("Price = %s, want $150.00", got.Price)
	}
	if !got.Value.Equal(USD(1050.0)) {
		t.Errorf("Value = %s, want $1,050.00", got.Value)
	}
	if got.LastUpdated.IsZero() {
		t.Errorf("LastUpdated not stamped")
	}
}

func TestRefreshPrices_PartialFailure(t *testing.T) {
	stale := time.Date(2025, time.August, 1, 10, 0, 0, 0, time.Local)
	table := NewTable()
	table.append(NewHolding("AAPL", "Apple", "Tech", Q(7.0), USD(140.0), stale))
	table.append(NewHolding("GONE", "Delisted Corp", "Unknown", Q(5.0), USD(2.5), stale))
	table.append(NewHolding("DOWN", "Flaky Corp", "Unknown", Q(1.0), USD(10.0), stale))

	provider := &fakeProvider{
		prices: map[string]float64{"AAPL": 150.0},
		errs:   map[string]error{"DOWN": errors.New("timeout")},
	}
	report := RefreshPrices(context.Background(), table, provider, RefreshOptions{})

	if report.Updated != 1 || report.Failed != 2 {
		t.Fatalf("report = %+v, want 1 updated, 2 failed", report)
	}
	slices.Sort(report.FailedSymbols)
	if !slices.Equal(report.FailedSymbols, []string{"DOWN", "GONE"}) {
		t.Errorf("FailedSymbols = %v, want [DOWN GONE]", report.FailedSymbols)
	}

	// failed rows are stale-but-present, not blanked
	for _, symbol := range []string{"GONE", "DOWN"} {
		got := *table.Get(symbol)
		if !got.LastUpdated.Equal(stale) {
			t.Errorf("%s timestamp changed on failure", symbol)
		}
		if !got.Value.Equal(got.Price.Mul(got.Shares)) {
			t.Errorf("%s value invariant broken: %s != %s", symbol, got.Value, got.Price.Mul(got.Shares))
		}
	}
	if got := *table.Get("GONE"); !got.Price.Equal(USD(2.5)) {
		t.Errorf("GONE price changed on failure: %s", got.Price)
	}

	// structure is untouched
	if got := table.Symbols(); !slices.Equal(got, []string{"AAPL", "GONE", "DOWN"}) {
		t.Errorf("Symbols() = %v, want order preserved", got)
	}
}

func TestRefreshPrices_EmptyTable(t *testing.T) {
	report := RefreshPrices(context.Background(), NewTable(), &fakeProvider{}, RefreshOptions{})
	if report.Updated != 0 || report.Failed != 0 {
		t.Errorf("report = %+v, want all zero", report)
	}
}

func TestRefreshPrices_Concurrent(t *testing.T) {
	table := NewTable()
	prices := make(map[string]float64)
	symbols := []string{"AAPL", "NVDA", "CSX", "OXY", "SCHW", "CMG", "SBUX", "TSM"}
	for i, s := range symbols {
		table.append(NewHolding(s, s, "Sector", Q(1.0), USD(0.0), time.Time{}))
		prices[s] = float64(10 * (i + 1))
	}

	report := RefreshPrices(context.Background(), table, &fakeProvider{prices: prices}, RefreshOptions{Jobs: 3})
	if report.Updated != len(symbols) {
		t.Fatalf("Updated = %d, want %d", report.Updated, len(symbols))
	}
	for i, s := range symbols {
		got := *table.Get(s)
		want := USD(float64(10 * (i + 1)))
		if !got.Price.Equal(want) || !got.Value.Equal(want) {
			t.Errorf("%s = %s/%s, want %s for both", s, got.Price, got.Value, want)
		}
	}
}
