package interchange

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/apperrors"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/validation"
	"github.com/shopspring/decimal"
)

// Column order of exported files.
var (
	SymbolColumns    = []string{"ticker", "ratio"}
	OperationColumns = []string{"id", "ticker", "type", "qty", "date", "mep", "amount"}
	AssetColumns     = []string{"id", "name", "value"}
)

var (
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// row is one decoded CSV line keyed by lower-cased header.
type row struct {
	line   int
	fields map[string]string
}

// get returns a trimmed field with any spreadsheet formula guard removed.
func (r row) get(key string) string {
	return validation.StripFormulaGuard(strings.TrimSpace(r.fields[key]))
}

// readRows reads a CSV file with a header line. required names the
// column that must be present.
func readRows(rd io.Reader, required string) ([]row, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, apperrors.ErrEmptyImport
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	found := false
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		h = strings.ToLower(strings.Trim(strings.TrimSpace(h), `"`))
		header[i] = h
		if h == required {
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: missing %q column", apperrors.ErrInvalidCSVHeaders, required)
	}

	var rows []row
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		if len(record) < len(header) {
			continue
		}

		line, _ := cr.FieldPos(0)
		r := row{line: line, fields: make(map[string]string, len(header))}
		for i, h := range header {
			r.fields[h] = record[i]
		}
		rows = append(rows, r)
	}

	if len(rows) == 0 {
		return nil, apperrors.ErrEmptyImport
	}
	return rows, nil
}

// parseInt reads the leading integer of s, so "3.7" is 3. Anything
// unparsable is 0.
func parseInt(s string) int64 {
	m := leadingInt.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	d, err := decimal.NewFromString(m)
	if err != nil || !d.IsInteger() {
		return 0
	}
	return d.IntPart()
}

// parseDecimal reads the leading number of s. Anything unparsable is 0.
func parseDecimal(s string) decimal.Decimal {
	m := leadingFloat.FindString(strings.TrimSpace(s))
	if m == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func malformed(c model.Collection, r row, field, reason string) error {
	return &apperrors.MalformedRecordError{Collection: string(c), Line: r.line, Field: field, Reason: reason}
}

// DecodeSymbols reads a symbols file. Tickers are upper-cased; a later
// line for the same ticker wins.
func DecodeSymbols(rd io.Reader) ([]model.Symbol, error) {
	rows, err := readRows(rd, "ticker")
	if err != nil {
		return nil, err
	}

	var errs []error
	index := make(map[string]int, len(rows))
	symbols := make([]model.Symbol, 0, len(rows))
	for _, r := range rows {
		s := model.Symbol{
			Ticker: validation.NormalizeTicker(r.get("ticker")),
			Ratio:  parseDecimal(r.get("ratio")),
		}
		if err := validation.ValidateTicker(s.Ticker); err != nil {
			errs = append(errs, malformed(model.CollectionSymbols, r, "ticker", err.Error()))
			continue
		}
		if i, ok := index[s.Ticker]; ok {
			symbols[i] = s
			continue
		}
		index[s.Ticker] = len(symbols)
		symbols = append(symbols, s)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return symbols, nil
}

// DecodeOperations reads an operations file. A missing type is BUY, a
// missing date is today, and a missing or zero id is left as 0 for the
// caller to assign.
func DecodeOperations(rd io.Reader, today string) ([]model.Operation, error) {
	rows, err := readRows(rd, "ticker")
	if err != nil {
		return nil, err
	}

	var errs []error
	ops := make([]model.Operation, 0, len(rows))
	for _, r := range rows {
		op, err := decodeOperation(r, today)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		ops = append(ops, op)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return ops, nil
}

func decodeOperation(r row, today string) (model.Operation, error) {
	c := model.CollectionOperations

	op := model.Operation{
		ID:     parseInt(r.get("id")),
		Ticker: validation.NormalizeTicker(r.get("ticker")),
		Qty:    parseInt(r.get("qty")),
		Date:   r.get("date"),
		MEP:    parseDecimal(r.get("mep")),
		Amount: parseDecimal(r.get("amount")),
	}
	if op.ID < 0 {
		op.ID = 0
	}
	if op.Date == "" {
		op.Date = today
	}

	if err := validation.ValidateTicker(op.Ticker); err != nil {
		return op, malformed(c, r, "ticker", err.Error())
	}

	op.Type = model.OperationBuy
	if raw := r.get("type"); raw != "" {
		t, err := model.ParseOperationType(raw)
		if err != nil {
			return op, malformed(c, r, "type", err.Error())
		}
		op.Type = t
	}

	switch {
	case op.Qty < 0:
		return op, malformed(c, r, "qty", "must not be negative")
	case op.Amount.IsNegative():
		return op, malformed(c, r, "amount", "must not be negative")
	case op.MEP.IsNegative():
		return op, malformed(c, r, "mep", "must not be negative")
	}
	return op, nil
}

// DecodeAssets reads an assets file. Names are stripped of markup.
func DecodeAssets(rd io.Reader) ([]model.Asset, error) {
	rows, err := readRows(rd, "name")
	if err != nil {
		return nil, err
	}

	var errs []error
	assets := make([]model.Asset, 0, len(rows))
	for _, r := range rows {
		a := model.Asset{
			ID:    parseInt(r.get("id")),
			Name:  validation.SanitizeText(r.get("name")),
			Value: parseDecimal(r.get("value")),
		}
		if a.ID < 0 {
			a.ID = 0
		}
		if a.Name == "" {
			errs = append(errs, malformed(model.CollectionAssets, r, "name", "name is required"))
			continue
		}
		assets = append(assets, a)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return assets, nil
}

// Decode reads one collection's file into the matching field of a Snapshot.
func Decode(rd io.Reader, c model.Collection, today string) (model.Snapshot, error) {
	var snap model.Snapshot
	var err error
	switch c {
	case model.CollectionSymbols:
		snap.Symbols, err = DecodeSymbols(rd)
	case model.CollectionOperations:
		snap.Operations, err = DecodeOperations(rd, today)
	case model.CollectionAssets:
		snap.Assets, err = DecodeAssets(rd)
	default:
		err = fmt.Errorf("%w: %s", apperrors.ErrUnknownCollection, c)
	}
	return snap, err
}

// Encode writes one collection of snap as CSV with a header line.
func Encode(w io.Writer, snap model.Snapshot, c model.Collection) error {
	cw := csv.NewWriter(w)

	var records [][]string
	switch c {
	case model.CollectionSymbols:
		records = append(records, SymbolColumns)
		for _, s := range snap.Symbols {
			records = append(records, []string{
				validation.SanitizeForFormulaInjection(s.Ticker),
				s.Ratio.String(),
			})
		}
	case model.CollectionOperations:
		records = append(records, OperationColumns)
		for _, op := range snap.Operations {
			records = append(records, []string{
				fmt.Sprint(op.ID),
				validation.SanitizeForFormulaInjection(op.Ticker),
				string(op.Type),
				fmt.Sprint(op.Qty),
				op.Date,
				op.MEP.String(),
				op.Amount.String(),
			})
		}
	case model.CollectionAssets:
		records = append(records, AssetColumns)
		for _, a := range snap.Assets {
			records = append(records, []string{
				fmt.Sprint(a.ID),
				validation.SanitizeForFormulaInjection(a.Name),
				a.Value.String(),
			})
		}
	default:
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownCollection, c)
	}

	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write %s CSV: %w", c, err)
	}
	return nil
}

// Count returns the number of records snap holds for c.
func Count(snap model.Snapshot, c model.Collection) int {
	switch c {
	case model.CollectionSymbols:
		return len(snap.Symbols)
	case model.CollectionOperations:
		return len(snap.Operations)
	case model.CollectionAssets:
		return len(snap.Assets)
	}
	return 0
}
