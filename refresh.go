package folio

import (
	"context"
	"log"
	"sync"
	"time"
)

// RefreshReport counts the per-symbol outcomes of a price refresh.
type RefreshReport struct {
	Updated       int
	Failed        int
	FailedSymbols []string
}

// RefreshOptions tunes a refresh run.
type RefreshOptions struct {
	// Jobs bounds how many provider calls run at once. Zero or negative means 4.
	Jobs int
	// Timeout bounds each provider call. Zero means 10s.
	Timeout time.Duration
}

const (
	defaultRefreshJobs    = 4
	defaultRefreshTimeout = 10 * time.Second
)

// RefreshPrices fetches a fresh price for every row of the table.
//
// Each symbol is fetched independently: a failure (absent price, provider
// error, timeout) leaves that row's price, value and timestamp untouched and
// does not stop the other symbols. A stale row is preferred over a blank one.
// On success the row's price, value and timestamp are updated together, as a
// unit. Row count, symbol set and ordering never change.
//
// Fetches fan out over a bounded number of goroutines; every worker writes
// only to its own row, so rows are never torn. RefreshPrices returns after
// all workers finished, so the table is safe to persist when it returns.
func RefreshPrices(ctx context.Context, t *Table, p Provider, opts RefreshOptions) RefreshReport {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = defaultRefreshJobs
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultRefreshTimeout
	}

	var (
		mu     sync.Mutex
		report RefreshReport
		wg     sync.WaitGroup
		sem    = make(chan struct{}, jobs)
	)

	for _, row := range t.holdings {
		wg.Add(1)
		sem <- struct{}{}
		go func(row *Holding) {
			defer wg.Done()
			defer func() { <-sem }()

			callCtx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			price, ok, err := p.GetPrice(callCtx, row.Symbol)
			if err != nil || !ok {
				if err != nil {
					log.Printf("refresh: no price for %q: %v", row.Symbol, err)
				} else {
					log.Printf("refresh: no price available for %q", row.Symbol)
				}
				mu.Lock()
				report.Failed++
				report.FailedSymbols = append(report.FailedSymbols, row.Symbol)
				mu.Unlock()
				return
			}

			row.reprice(price, time.Now())
			mu.Lock()
			report.Updated++
			mu.Unlock()
		}(row)
	}
	wg.Wait()
	return report
}
