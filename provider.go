package folio

import "context"

// Metadata holds the descriptive fields a quote provider knows about a symbol.
type Metadata struct {
	QuoteType string // e.g. "EQUITY", "ETF", "MUTUALFUND", "INDEX"
	ShortName string
	Sector    string
}

// Provider is the market-data capability the engine depends on.
//
// Both methods report "absent" with ok=false when the symbol is unknown or the
// provider has no usable data for it; a network or lookup failure is returned
// as an error. Neither case may corrupt the caller's table: callers treat
// absence and errors identically, leaving their rows unchanged.
type Provider interface {
	GetPrice(ctx context.Context, symbol string) (price Money, ok bool, err error)
	GetMetadata(ctx context.Context, symbol string) (meta Metadata, ok bool, err error)
}
