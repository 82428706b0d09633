package folio

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// this file contains functions to handle the bulk import/export format.
// The format is a tabular file (CSV or xlsx) with a header row; Symbol and
// Shares are required, Company and Sector are optional and toggle the
// resolution path.

// RowError identifies a single bad row in a bulk import.
type RowError struct {
	Row    int // 1-based data row number, header excluded
	Column string
	Err    error
}

func (e RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d, column %q: %v", e.Row, e.Column, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// ImportReport summarizes a bulk import.
type ImportReport struct {
	// Imported counts rows appended to the table.
	Imported int
	// Resolved counts rows whose price and classification were fetched.
	Resolved int
	// Failed counts rows kept with a zero price because resolution failed,
	// plus rows skipped for validation errors.
	Failed int
	// FullInfo reports which branch ran: true when Company and Sector came
	// from the file, false when they were resolved through the provider.
	FullInfo  bool
	RowErrors []RowError
}

// ImportCSV reads holdings from a CSV stream and appends them to the table.
//
// Symbol and Shares columns are required; their absence is an error. When the
// file also carries Company and Sector, rows are appended as-is. Otherwise
// each row is resolved through the provider exactly like a manual add; a row
// whose symbol cannot be resolved is kept with a zero price and empty sector
// and counted as failed rather than blocking the other rows.
//
// Imported rows are concatenated onto the table without deduplication against
// existing symbols; duplicates after a bulk import are left for the user to
// reconcile.
func ImportCSV(ctx context.Context, r io.Reader, t *Table, p Provider) (ImportReport, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	return importRows(ctx, cr.Read, t, p)
}

// ImportXLSX reads holdings from the first sheet of an xlsx workbook. The
// sheet follows the same column contract as ImportCSV: a header row, Symbol
// and Shares required, Company and Sector toggling the resolution path.
func ImportXLSX(ctx context.Context, r io.Reader, t *Table, p Provider) (ImportReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ImportReport{}, fmt.Errorf("cannot open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportReport{}, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportReport{}, fmt.Errorf("cannot read sheet %q: %w", sheets[0], err)
	}

	i := 0
	next := func() ([]string, error) {
		if i >= len(rows) {
			return nil, io.EOF
		}
		row := rows[i]
		i++
		return row, nil
	}
	return importRows(ctx, next, t, p)
}

// importRows runs the shared import pipeline over a row source. next returns
// io.EOF when the source is exhausted; the first row is the header.
func importRows(ctx context.Context, next func() ([]string, error), t *Table, p Provider) (ImportReport, error) {
	header, err := next()
	if err != nil {
		return ImportReport{}, fmt.Errorf("cannot read import header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Symbol", "Shares"} {
		if _, ok := col[required]; !ok {
			return ImportReport{}, fmt.Errorf("import file is missing required column %q", required)
		}
	}

	_, hasCompany := col["Company"]
	_, hasSector := col["Sector"]
	report := ImportReport{FullInfo: hasCompany && hasSector}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	for row := 1; ; row++ {
		record, err := next()
		if err == io.EOF {
			break
		}
		if err != nil {
			report.Failed++
			report.RowErrors = append(report.RowErrors, RowError{Row: row, Column: "", Err: err})
			continue
		}

		symbol := strings.ToUpper(field(record, "Symbol"))
		if symbol == "" {
			report.Failed++
			report.RowErrors = append(report.RowErrors, RowError{Row: row, Column: "Symbol", Err: fmt.Errorf("empty symbol")})
			continue
		}
		shares, err := ParseQuantity(field(record, "Shares"))
		if err != nil || !shares.IsPositive() {
			if err == nil {
				err = fmt.Errorf("shares must be positive, got %s", shares)
			}
			report.Failed++
			report.RowErrors = append(report.RowErrors, RowError{Row: row, Column: "Shares", Err: err})
			continue
		}

		if report.FullInfo {
			price := USD(0)
			if raw := field(record, "Current Price"); raw != "" {
				if m, err := ParseMoney(raw, DefaultCurrency); err == nil {
					price = m
				}
			}
			t.append(NewHolding(symbol, field(record, "Company"), field(record, "Sector"), shares, price, time.Time{}))
			report.Imported++
			continue
		}

		h, err := Resolve(ctx, symbol, shares, p)
		if err != nil {
			log.Printf("import: cannot resolve %q: %v", symbol, err)
			report.Failed++
			report.RowErrors = append(report.RowErrors, RowError{Row: row, Column: "Symbol", Err: err})
			// keep the row anyway, zero-priced, so the user can refresh later.
			h = NewHolding(symbol, "", "", shares, USD(0), time.Time{})
		} else {
			report.Resolved++
		}
		t.append(h)
		report.Imported++
	}

	return report, nil
}

// Resolve turns a bare symbol and share count into a fully-resolved holding:
// company name and sector from provider metadata (bucketed by security kind),
// and a current price. An unknown symbol is an error; a known symbol with no
// price resolves with a zero price.
func Resolve(ctx context.Context, symbol string, shares Quantity, p Provider) (Holding, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	meta, ok, err := p.GetMetadata(ctx, symbol)
	if err != nil {
		return Holding{}, fmt.Errorf("cannot look up %q: %w", symbol, err)
	}
	if !ok {
		return Holding{}, fmt.Errorf("no information found for %q", symbol)
	}

	company := meta.ShortName
	if company == "" {
		company = "Unknown"
	}

	var sector string
	switch kindOf(symbol, meta.QuoteType) {
	case ETF:
		sector = ClassifyETFSector(meta.ShortName)
	case MutualFund:
		sector = ClassifyFundSector(meta.ShortName)
	default:
		sector = meta.Sector
		if sector == "" {
			sector = "Unknown"
		}
	}

	price := USD(0)
	at := time.Time{}
	if got, ok, err := p.GetPrice(ctx, symbol); err == nil && ok {
		price = got
		at = time.Now()
	} else if err != nil {
		log.Printf("resolve: no price for %q: %v", symbol, err)
	}

	return NewHolding(symbol, company, sector, shares, price, at), nil
}

// ExportCSV writes the table's rows in the logical store columns, for
// external consumption. The output imports back through ImportCSV on the
// full-info path.
func ExportCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Symbol", "Company", "Sector", "Shares", "Current Price", "Total Value", "Last Updated"}); err != nil {
		return err
	}
	for _, h := range t.holdings {
		record := []string{
			h.Symbol,
			h.Company,
			h.Sector,
			h.Shares.String(),
			h.Price.Decimal().String(),
			h.Value.Decimal().Round(2).String(),
			formatUpdated(h.LastUpdated),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
