package folio

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestEngine(t *testing.T, provider Provider) (*Engine, *Store) {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "portfolio_data.json"))
	return NewEngine(store, provider), store
}

func TestEngine_WriteThrough(t *testing.T) {
	provider := &fakeProvider{prices: map[string]float64{"AAPL": 150.0}}
	engine, store := newTestEngine(t, provider)

	h := NewHolding("AAPL", "Apple", "Information Technology", Q(7.0), USD(150.0), time.Now())
	if _, err := engine.AddOrMerge(h, 0); err != nil {
		t.Fatalf("AddOrMerge() error = %v", err)
	}

	// the disk copy is the source of truth as soon as the operation returns
	if got := store.Load(); got.Len() != 1 || !got.Has("AAPL") {
		t.Errorf("store not written through after add: %v", got.Symbols())
	}

	if _, err := engine.Remove("AAPL"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if got := store.Load(); got.Len() != 0 {
		t.Errorf("store not written through after remove: %v", got.Symbols())
	}
}

func TestEngine_RefreshPersists(t *testing.T) {
	provider := &fakeProvider{prices: map[string]float64{"AAPL": 150.0}}
	engine, store := newTestEngine(t, provider)

	if _, err := engine.AddOrMerge(NewHolding("AAPL", "Apple", "Tech", Q(7.0), USD(0.0), time.Time{}), 0); err != nil {
		t.Fatal(err)
	}
	report, err := engine.Refresh(context.Background(), RefreshOptions{})
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if report.Updated != 1 {
		t.Fatalf("Updated = %d, want 1", report.Updated)
	}

	got := store.Load().Get("AAPL")
	if !got.Value.Equal(USD(1050.0)) {
		t.Errorf("persisted Value = %s, want $1,050.00", got.Value)
	}
}

func TestEngine_CancelDoesNotSave(t *testing.T) {
	engine, store := newTestEngine(t, &fakeProvider{})
	if _, err := engine.AddOrMerge(aapl(), 0); err != nil {
		t.Fatal(err)
	}

	update := NewHolding("AAPL", "Apple", "Tech", Q(99.0), USD(1.0), time.Now())
	outcome, err := engine.AddOrMerge(update, MergeCancel)
	if err != nil || outcome != Cancelled {
		t.Fatalf("outcome = %v, err = %v, want Cancelled", outcome, err)
	}
	if got := store.Load().Get("AAPL"); !got.Shares.Equal(Q(7.0)) {
		t.Errorf("cancelled merge reached the store: shares = %s", got.Shares)
	}
}

func TestEngine_LoadsExistingTable(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "portfolio_data.json"))
	first := NewEngine(store, &fakeProvider{})
	if _, err := first.AddOrMerge(aapl(), 0); err != nil {
		t.Fatal(err)
	}

	second := NewEngine(store, &fakeProvider{})
	if !second.Table().Has("AAPL") {
		t.Errorf("a new engine over the same store should see prior holdings")
	}
}

func TestInMarketHours(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"weekday mid-session", time.Date(2025, time.August, 26, 12, 0, 0, 0, ny), true}, // Tuesday
		{"open bell", time.Date(2025, time.August, 26, 9, 30, 0, 0, ny), true},
		{"just before open", time.Date(2025, time.August, 26, 9, 29, 0, 0, ny), false},
		{"close bell", time.Date(2025, time.August, 26, 16, 0, 0, 0, ny), false},
		{"saturday", time.Date(2025, time.August, 23, 12, 0, 0, 0, ny), false},
		{"sunday", time.Date(2025, time.August, 24, 12, 0, 0, 0, ny), false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := InMarketHours(tc.t, ny); got != tc.want {
				t.Errorf("InMarketHours(%v) = %v, want %v", tc.t, got, tc.want)
			}
		})
	}

	// the reference location matters: 12:00 UTC is 08:00 in New York
	utcNoon := time.Date(2025, time.August, 26, 12, 0, 0, 0, time.UTC)
	if InMarketHours(utcNoon, ny) {
		t.Errorf("12:00 UTC should be before the New York open")
	}
	if !InMarketHours(utcNoon, time.UTC) {
		t.Errorf("12:00 UTC is mid-session when UTC is the reference zone")
	}
}
