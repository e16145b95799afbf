package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProfitEntry is one row of the profit ledger. A business event "record
// profit for client X" produces one primary entry (Profit != 0, Bonus == 0)
// for X plus up to three secondary entries (Profit == 0, Bonus != 0) for
// ancestor Pioneers, so bonus income stays attributable per receiver.
type ProfitEntry struct {
	ID          string
	ClientID    string
	Profit      decimal.Decimal
	ClientShare decimal.Decimal
	OwnerShare  decimal.Decimal
	Bonus       decimal.Decimal
	Date        time.Time
	CreatedAt   time.Time
}

// ShareSummary aggregates the ledger for dashboard reporting.
type ShareSummary struct {
	TotalProfit      decimal.Decimal
	TotalClientShare decimal.Decimal
	TotalOwnerShare  decimal.Decimal
	TotalBonus       decimal.Decimal
}

type ProfitRepository interface {
	CreateProfitEntry(ctx context.Context, entry *ProfitEntry) error
	ListProfitEntriesByClientID(ctx context.Context, clientID string) ([]*ProfitEntry, error)
	SumBonusByClientID(ctx context.Context, clientID string) (decimal.Decimal, error)
	SummarizeShares(ctx context.Context) (*ShareSummary, error)
}
