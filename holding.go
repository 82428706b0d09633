package folio

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Holding represents a single owned position.
//
// Value is always derived from Price and Shares; it is never set independently.
// Any code path that changes Shares or Price must go through reprice or
// NewHolding so the invariant holds.
type Holding struct {
	Symbol      string
	Company     string
	Sector      string
	Shares      Quantity
	Price       Money
	Value       Money
	LastUpdated time.Time // zero means "never priced"
}

// NewHolding builds a holding with its value computed from price and shares.
func NewHolding(symbol, company, sector string, shares Quantity, price Money, at time.Time) Holding {
	return Holding{
		Symbol:      strings.ToUpper(strings.TrimSpace(symbol)),
		Company:     company,
		Sector:      sector,
		Shares:      shares,
		Price:       price,
		Value:       price.Mul(shares),
		LastUpdated: at,
	}
}

// reprice updates the price, value and timestamp as a single unit.
func (h *Holding) reprice(price Money, at time.Time) {
	h.Price = price
	h.Value = price.Mul(h.Shares)
	h.LastUpdated = at
}

// Validate checks that the holding is well formed: a symbol, positive shares,
// and a non-negative price.
func (h Holding) Validate() error {
	if strings.TrimSpace(h.Symbol) == "" {
		return fmt.Errorf("holding has no symbol")
	}
	if !h.Shares.IsPositive() {
		return fmt.Errorf("holding %q: shares must be positive, got %s", h.Symbol, h.Shares)
	}
	if h.Price.IsNegative() {
		return fmt.Errorf("holding %q: price cannot be negative, got %s", h.Symbol, h.Price)
	}
	return nil
}

// MergePolicy is the caller-supplied decision for what to do when adding a
// holding whose symbol is already in the table. There is no default: the
// caller (UI, CLI flag, test) must pick one explicitly.
type MergePolicy int

const (
	policyUnset MergePolicy = iota
	// MergeReplace updates the existing row's shares, price, value and timestamp.
	MergeReplace
	// MergeDuplicate appends a second row with the same symbol. This is an
	// explicit user override of the symbol uniqueness rule.
	MergeDuplicate
	// MergeCancel leaves the table untouched.
	MergeCancel
)

// MergeOutcome reports what AddOrMerge actually did.
type MergeOutcome int

const (
	// Rejected is the zero outcome: the holding failed validation or the
	// symbol was already held without an explicit policy. Nothing changed.
	Rejected MergeOutcome = iota
	Added
	Replaced
	Duplicated
	// Cancelled means the caller asked for MergeCancel and got it.
	Cancelled
)

func (o MergeOutcome) String() string {
	switch o {
	case Rejected:
		return "rejected"
	case Added:
		return "added"
	case Replaced:
		return "replaced"
	case Duplicated:
		return "added as duplicate"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Table is an ordered collection of holdings, indexed by symbol.
// Symbols are unique unless the caller explicitly merges with MergeDuplicate.
type Table struct {
	holdings []*Holding
	index    map[string]*Holding // first row per symbol
}

func NewTable() *Table {
	return &Table{index: make(map[string]*Holding)}
}

func (t *Table) Len() int { return len(t.holdings) }

func (t *Table) Has(symbol string) bool {
	_, ok := t.index[symbol]
	return ok
}

// Get returns the first holding for the symbol, or nil.
func (t *Table) Get(symbol string) *Holding { return t.index[symbol] }

// Holdings returns a copy of all rows in table order.
func (t *Table) Holdings() []Holding {
	out := make([]Holding, 0, len(t.holdings))
	for _, h := range t.holdings {
		out = append(out, *h)
	}
	return out
}

// Symbols returns all symbols in table order, duplicates included.
func (t *Table) Symbols() []string {
	out := make([]string, 0, len(t.holdings))
	for _, h := range t.holdings {
		out = append(out, h.Symbol)
	}
	return out
}

// append adds a row without consulting the index uniqueness rule.
func (t *Table) append(h Holding) {
	row := &h
	t.holdings = append(t.holdings, row)
	if _, ok := t.index[h.Symbol]; !ok {
		t.index[h.Symbol] = row
	}
}

// AddOrMerge adds a fully-resolved holding to the table. If the symbol is not
// present the holding is appended and the policy is not consulted. If it is
// present, the supplied policy decides: replace the existing row, append a
// duplicate row, or do nothing. A zero policy on a present symbol is an error
// so the decision can never be made implicitly.
func (t *Table) AddOrMerge(h Holding, policy MergePolicy) (MergeOutcome, error) {
	h.Symbol = strings.ToUpper(strings.TrimSpace(h.Symbol))
	if err := h.Validate(); err != nil {
		return Rejected, err
	}
	h.Value = h.Price.Mul(h.Shares)

	existing, ok := t.index[h.Symbol]
	if !ok {
		t.append(h)
		return Added, nil
	}

	switch policy {
	case MergeReplace:
		existing.Shares = h.Shares
		existing.reprice(h.Price, h.LastUpdated)
		return Replaced, nil
	case MergeDuplicate:
		t.append(h)
		return Duplicated, nil
	case MergeCancel:
		return Cancelled, nil
	default:
		return Rejected, fmt.Errorf("symbol %q is already held: an explicit merge policy is required", h.Symbol)
	}
}

// Remove deletes every row carrying one of the given symbols and returns the
// number of rows removed.
func (t *Table) Remove(symbols ...string) int {
	drop := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		drop[strings.ToUpper(strings.TrimSpace(s))] = true
	}
	before := len(t.holdings)
	t.holdings = slices.DeleteFunc(t.holdings, func(h *Holding) bool { return drop[h.Symbol] })
	for s := range drop {
		delete(t.index, s)
	}
	return before - len(t.holdings)
}

// TotalValue sums the value of all rows.
func (t *Table) TotalValue() Money {
	total := USD(0)
	for _, h := range t.holdings {
		total = total.Add(h.Value)
	}
	return total
}
