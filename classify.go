package folio

import (
	"context"
	"strings"
)

// SecurityKind is the coarse classification of a symbol.
type SecurityKind int

const (
	Stock SecurityKind = iota
	ETF
	MutualFund
	Index
)

func (k SecurityKind) String() string {
	switch k {
	case ETF:
		return "ETF"
	case MutualFund:
		return "Mutual Fund"
	case Index:
		return "Index"
	}
	return "Stock"
}

// ClassifySecurity determines the kind of a symbol, best effort.
//
// The provider's quote-type field is consulted first; trailing-letter
// conventions on the symbol ("...F" leans ETF, "...X" leans fund) are only a
// fallback when metadata is absent. Anything else, including a provider
// failure, classifies as Stock. This is a heuristic, not a guarantee.
func ClassifySecurity(ctx context.Context, symbol string, p Provider) SecurityKind {
	meta, ok, err := p.GetMetadata(ctx, symbol)
	if err != nil || !ok {
		return kindOfSymbol(symbol)
	}
	return kindOf(symbol, meta.QuoteType)
}

// kindOf classifies from already-fetched metadata: quote type when it names a
// known kind, symbol suffix otherwise.
func kindOf(symbol, quoteType string) SecurityKind {
	if k, matched := kindOfQuoteType(quoteType); matched {
		return k
	}
	return kindOfSymbol(symbol)
}

func kindOfQuoteType(quoteType string) (SecurityKind, bool) {
	qt := strings.ToLower(quoteType)
	switch {
	case strings.Contains(qt, "etf"):
		return ETF, true
	case strings.Contains(qt, "mutualfund"):
		return MutualFund, true
	case strings.Contains(qt, "index"):
		return Index, true
	}
	return Stock, false
}

func kindOfSymbol(symbol string) SecurityKind {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	switch {
	case strings.HasSuffix(s, "F"):
		return ETF
	case strings.HasSuffix(s, "X"):
		return MutualFund
	}
	return Stock
}

// sectorRule maps name keywords to a synthetic sector bucket. Rules are tried
// in order and the first match wins; there is no scoring or multi-label.
type sectorRule struct {
	terms  []string
	sector string
}

// etfSectorRules is the fixed priority order for bucketing ETFs by short name.
var etfSectorRules = []sectorRule{
	{[]string{"bond", "treasury", "income"}, "Bond ETF"},
	{[]string{"nasdaq", "tech", "technology"}, "Technology ETF"},
	{[]string{"s&p", "sp500", "500", "total market"}, "Index ETF"},
	{[]string{"health", "healthcare"}, "Healthcare ETF"},
	{[]string{"energy", "oil", "gas"}, "Energy ETF"},
	{[]string{"financial", "bank"}, "Financial ETF"},
	{[]string{"dividend", "yield"}, "Dividend ETF"},
	{[]string{"growth"}, "Growth ETF"},
	{[]string{"value"}, "Value ETF"},
	{[]string{"bitcoin", "crypto"}, "Crypto ETF"},
}

// fundSectorRules buckets mutual funds by short name, same first-match rule.
var fundSectorRules = []sectorRule{
	{[]string{"bond", "income"}, "Bond Fund"},
	{[]string{"growth"}, "Growth Fund"},
	{[]string{"value"}, "Value Fund"},
	{[]string{"index"}, "Index Fund"},
}

func matchSector(name string, rules []sectorRule, fallback string) string {
	name = strings.ToLower(name)
	for _, rule := range rules {
		for _, term := range rule.terms {
			if strings.Contains(name, term) {
				return rule.sector
			}
		}
	}
	return fallback
}

// ClassifyETFSector buckets an ETF by keywords in its short name.
// Best effort: an unrecognized name gets the generic "ETF" bucket.
func ClassifyETFSector(shortName string) string {
	return matchSector(shortName, etfSectorRules, "ETF")
}

// ClassifyFundSector buckets a mutual fund by keywords in its short name.
func ClassifyFundSector(shortName string) string {
	return matchSector(shortName, fundSectorRules, "Mutual Fund")
}
