package folio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// timeLayout is the on-disk timestamp format. It is part of the file contract.
const timeLayout = "2006-01-02 15:04:05"

// The holdings file is a JSON array of records, one object per holding, in
// table order. The field names and their casing are part of the on-disk
// contract and must not change:
//
//	[{"Symbol":"AAPL","Company":"Apple","Sector":"Information Technology",
//	  "Shares":7,"Current Price":150.0,"Total Value":1050.0,
//	  "Last Updated":"2025-08-26 10:30:00"}]

// Store persists a holdings table to a single file.
type Store struct {
	path string
}

func NewStore(path string) *Store { return &Store{path: path} }

func (s *Store) Path() string { return s.path }

// jholding is the record shape used for decoding. Encoding goes through
// jsonObjectWriter to keep field order stable.
type jholding struct {
	Symbol      string          `json:"Symbol"`
	Company     string          `json:"Company"`
	Sector      string          `json:"Sector"`
	Shares      decimal.Decimal `json:"Shares"`
	Price       decimal.Decimal `json:"Current Price"`
	Value       decimal.Decimal `json:"Total Value"`
	LastUpdated string          `json:"Last Updated"`
}

// Load reads the holdings table from disk. A missing, empty or unreadable
// file degrades to an empty table: the error is logged, never returned, so a
// fresh install and a corrupt file both start the caller from a blank state.
func (s *Store) Load() *Table {
	t := NewTable()

	content, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return t
	}
	if err != nil {
		log.Printf("cannot read holdings file %q, starting empty: %v", s.path, err)
		return t
	}
	if len(content) == 0 {
		return t
	}

	var records []jholding
	if err := json.Unmarshal(content, &records); err != nil {
		log.Printf("cannot parse holdings file %q, starting empty: %v", s.path, err)
		return t
	}

	for _, r := range records {
		h := Holding{
			Symbol:  r.Symbol,
			Company: r.Company,
			Sector:  r.Sector,
			Shares:  Quantity{value: r.Shares},
			Price:   Money{value: r.Price, cur: DefaultCurrency},
		}
		// the stored value is ignored: it is always recomputable.
		h.Value = h.Price.Mul(h.Shares)
		if r.LastUpdated != "" {
			if at, err := time.ParseInLocation(timeLayout, r.LastUpdated, time.Local); err == nil {
				h.LastUpdated = at
			}
		}
		t.append(h)
	}
	return t
}

// Save writes the table to disk, replacing the previous file atomically:
// the records are written to a temporary file in the same directory, then
// renamed over the target, so a crash mid-write cannot corrupt a valid file.
func (s *Store) Save(t *Table) error {
	dir := filepath.Dir(s.path)
	f, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("cannot create temp holdings file in %q: %w", dir, err)
	}
	tmp := f.Name()

	if err := encodeTable(f, t); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("cannot write holdings file %q: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cannot write holdings file %q: %w", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("cannot replace holdings file %q: %w", s.path, err)
	}
	return nil
}

// encodeTable writes the table as a JSON records array with canonical field order.
func encodeTable(w io.Writer, t *Table) error {
	if _, err := io.WriteString(w, "["); err != nil {
		return err
	}
	for i, h := range t.holdings {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		var obj jsonObjectWriter
		obj.Append("Symbol", h.Symbol)
		obj.Append("Company", h.Company)
		obj.Append("Sector", h.Sector)
		obj.Append("Shares", h.Shares)
		obj.Append("Current Price", h.Price.Decimal())
		obj.Append("Total Value", h.Value.Decimal().Round(2))
		obj.Append("Last Updated", formatUpdated(h.LastUpdated))
		b, err := obj.MarshalJSON()
		if err != nil {
			return err
		}
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "]")
	return err
}

// formatUpdated renders a timestamp in the on-disk layout, empty for "never".
func formatUpdated(at time.Time) string {
	if at.IsZero() {
		return ""
	}
	return at.Format(timeLayout)
}
