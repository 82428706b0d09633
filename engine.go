package folio

import (
	"context"
	"io"
	"time"
)

// Engine owns the canonical holdings table and coordinates the provider and
// the store. Every mutating operation writes the table through to the store
// before returning, so the on-disk file is the source of truth the moment an
// operation completes. A save failure is returned to the caller but leaves
// the in-memory table intact: only the persist is missed, never the data.
//
// There is exactly one engine per holdings file; callers pass it around
// explicitly rather than reaching for a shared instance.
type Engine struct {
	table    *Table
	store    *Store
	provider Provider
}

// NewEngine loads the holdings table from the store and wires the provider.
func NewEngine(store *Store, provider Provider) *Engine {
	return &Engine{
		table:    store.Load(),
		store:    store,
		provider: provider,
	}
}

// Table exposes the engine's holdings table for reading and derived reports.
func (e *Engine) Table() *Table { return e.table }

// Resolve fetches price and classification for a symbol, ready for AddOrMerge.
func (e *Engine) Resolve(ctx context.Context, symbol string, shares Quantity) (Holding, error) {
	return Resolve(ctx, symbol, shares, e.provider)
}

// AddOrMerge adds a fully-resolved holding under the caller's merge policy
// and persists the table unless the outcome was a no-op.
func (e *Engine) AddOrMerge(h Holding, policy MergePolicy) (MergeOutcome, error) {
	outcome, err := e.table.AddOrMerge(h, policy)
	if err != nil || outcome == Cancelled {
		return outcome, err
	}
	return outcome, e.store.Save(e.table)
}

// Remove deletes the rows for the given symbols and persists the table when
// anything was actually removed.
func (e *Engine) Remove(symbols ...string) (int, error) {
	n := e.table.Remove(symbols...)
	if n == 0 {
		return 0, nil
	}
	return n, e.store.Save(e.table)
}

// Refresh re-prices every row from the provider and persists the table.
// The save happens after all fetches completed, never concurrently with them.
func (e *Engine) Refresh(ctx context.Context, opts RefreshOptions) (RefreshReport, error) {
	report := RefreshPrices(ctx, e.table, e.provider, opts)
	if report.Updated == 0 {
		return report, nil
	}
	return report, e.store.Save(e.table)
}

// ImportCSV bulk-imports holdings from a CSV stream and persists the table.
func (e *Engine) ImportCSV(ctx context.Context, r io.Reader) (ImportReport, error) {
	return e.saveImported(ImportCSV(ctx, r, e.table, e.provider))
}

// ImportXLSX bulk-imports holdings from an xlsx workbook and persists the table.
func (e *Engine) ImportXLSX(ctx context.Context, r io.Reader) (ImportReport, error) {
	return e.saveImported(ImportXLSX(ctx, r, e.table, e.provider))
}

func (e *Engine) saveImported(report ImportReport, err error) (ImportReport, error) {
	if err != nil || report.Imported == 0 {
		return report, err
	}
	return report, e.store.Save(e.table)
}

// ExportCSV writes the current holdings in the export format.
func (e *Engine) ExportCSV(w io.Writer) error {
	return ExportCSV(w, e.table)
}

// Allocation computes the current sector breakdown.
func (e *Engine) Allocation() []SectorAllocation {
	return ComputeSectorAllocation(e.table)
}

// Save persists the current table explicitly.
func (e *Engine) Save() error { return e.store.Save(e.table) }

// InMarketHours reports whether t falls within regular US equity trading
// hours, Monday to Friday 09:30 to 16:00, evaluated in the supplied reference
// location. It ignores market holidays. The engine never calls this itself:
// time gating is a policy the caller applies before invoking Refresh.
func InMarketHours(t time.Time, loc *time.Location) bool {
	t = t.In(loc)
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	minutes := t.Hour()*60 + t.Minute()
	return minutes >= 9*60+30 && minutes < 16*60
}
