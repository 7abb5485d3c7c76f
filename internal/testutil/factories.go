package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"
	"testing"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/model"
	"github.com/ndewijer/Portfolio-Pro-Backend/internal/repository"
	"github.com/shopspring/decimal"
)

var nextID atomic.Int64

// MakeID returns a positive ID unique within the test binary.
func MakeID() int64 {
	return 1_700_000_000_000 + nextID.Add(1)
}

// OperationBuilder provides a fluent interface for creating test operations.
//
// Example usage:
//
//	// A purchase with defaults
//	op := testutil.NewOperation().Build(t, db)
//
//	// Customized sale
//	op := testutil.NewOperation().
//	    WithTicker("GGAL").
//	    Sell(5).
//	    WithAmount("5000", "1000").
//	    Build(t, db)
type OperationBuilder struct {
	op model.Operation
}

// NewOperation creates an OperationBuilder for a 10-unit AAPL purchase.
func NewOperation() *OperationBuilder {
	return &OperationBuilder{op: model.Operation{
		ID:     MakeID(),
		Ticker: "AAPL",
		Type:   model.OperationBuy,
		Qty:    10,
		Date:   "2024-01-15",
		MEP:    decimal.NewFromInt(1000),
		Amount: decimal.NewFromInt(10000),
	}}
}

// WithID sets a custom ID.
func (b *OperationBuilder) WithID(id int64) *OperationBuilder {
	b.op.ID = id
	return b
}

// WithTicker sets the ticker.
func (b *OperationBuilder) WithTicker(ticker string) *OperationBuilder {
	b.op.Ticker = ticker
	return b
}

// Buy makes the operation a purchase of qty units.
func (b *OperationBuilder) Buy(qty int64) *OperationBuilder {
	b.op.Type = model.OperationBuy
	b.op.Qty = qty
	return b
}

// Sell makes the operation a sale of qty units.
func (b *OperationBuilder) Sell(qty int64) *OperationBuilder {
	b.op.Type = model.OperationSell
	b.op.Qty = qty
	return b
}

// WithDate sets the ISO date.
func (b *OperationBuilder) WithDate(date string) *OperationBuilder {
	b.op.Date = date
	return b
}

// WithAmount sets the native amount and exchange rate from decimal strings.
func (b *OperationBuilder) WithAmount(amount, mep string) *OperationBuilder {
	b.op.Amount = decimal.RequireFromString(amount)
	b.op.MEP = decimal.RequireFromString(mep)
	return b
}

// Value returns the operation without persisting it.
func (b *OperationBuilder) Value() model.Operation {
	return b.op
}

// Build creates the operation in the database and returns it.
func (b *OperationBuilder) Build(t *testing.T, db *sql.DB) model.Operation {
	t.Helper()

	if err := repository.NewOperationRepository(db).UpsertOperation(context.Background(), b.op); err != nil {
		t.Fatalf("Failed to create test operation: %v", err)
	}
	return b.op
}

// CreateSymbol lists ticker with the given target ratio.
//
// Example usage:
//
//	testutil.CreateSymbol(t, db, "AAPL", "60")
func CreateSymbol(t *testing.T, db *sql.DB, ticker, ratio string) model.Symbol {
	t.Helper()

	s := model.Symbol{Ticker: ticker, Ratio: decimal.RequireFromString(ratio)}
	if err := repository.NewSymbolRepository(db).InsertSymbol(context.Background(), s); err != nil {
		t.Fatalf("Failed to create test symbol: %v", err)
	}
	return s
}

// CreateAsset stores a non-portfolio asset worth value USD.
func CreateAsset(t *testing.T, db *sql.DB, name, value string) model.Asset {
	t.Helper()

	a := model.Asset{ID: MakeID(), Name: name, Value: decimal.RequireFromString(value)}
	if err := repository.NewAssetRepository(db).InsertAsset(context.Background(), a); err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}
	return a
}

// SeedScenario loads the reference ledger used across report tests: AAPL
// bought twice and partially sold, an unlisted MSFT purchase, AAPL and GGAL
// listed at 60/40, and a 5000 USD property.
func SeedScenario(t *testing.T, db *sql.DB) {
	t.Helper()

	NewOperation().WithTicker("AAPL").Buy(10).WithDate("2023-03-01").WithAmount("10000", "1000").Build(t, db)
	NewOperation().WithTicker("AAPL").Buy(5).WithDate("2024-02-01").WithAmount("6000", "1200").Build(t, db)
	NewOperation().WithTicker("AAPL").Sell(3).WithDate("2024-02-10").WithAmount("4500", "1500").Build(t, db)
	NewOperation().WithTicker("MSFT").Buy(2).WithDate("2024-05-20").WithAmount("2000", "1000").Build(t, db)
	CreateSymbol(t, db, "AAPL", "60")
	CreateSymbol(t, db, "GGAL", "40")
	CreateAsset(t, db, "House", "5000")
}
