package folio

import (
	"context"
	"time"
)

// fakeProvider serves canned prices and metadata for tests. A symbol in errs
// simulates a transient provider failure; a symbol absent from both maps
// simulates "no data available".
type fakeProvider struct {
	prices map[string]float64
	meta   map[string]Metadata
	errs   map[string]error
}

func (f *fakeProvider) GetPrice(_ context.Context, symbol string) (Money, bool, error) {
	if err := f.errs[symbol]; err != nil {
		return Money{}, false, err
	}
	p, ok := f.prices[symbol]
	if !ok {
		return Money{}, false, nil
	}
	return USD(p), true, nil
}

func (f *fakeProvider) GetMetadata(_ context.Context, symbol string) (Metadata, bool, error) {
	if err := f.errs[symbol]; err != nil {
		return Metadata{}, false, err
	}
	m, ok := f.meta[symbol]
	return m, ok, nil
}

// aapl is a convenient well-formed holding used across tests.
func aapl() Holding {
	return NewHolding("AAPL", "Apple", "Information Technology", Q(7.0), USD(0.0), time.Time{})
}
