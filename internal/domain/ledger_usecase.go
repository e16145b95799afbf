package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// BonusPayout reports one referral bonus applied while recording a profit.
type BonusPayout struct {
	Level     int             `json:"level"`
	PioneerID string          `json:"pioneer_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// ProfitDistribution is the outcome of RecordProfit. The invariant
// ClientShare + OwnerShare + sum(Bonuses) == recorded amount holds exactly.
type ProfitDistribution struct {
	EntryID     string          `json:"entry_id"`
	ClientID    string          `json:"client_id"`
	Amount      decimal.Decimal `json:"amount"`
	ClientShare decimal.Decimal `json:"client_share"`
	OwnerShare  decimal.Decimal `json:"owner_share"`
	Bonuses     []BonusPayout   `json:"bonuses"`
}

type RecordProfitInput struct {
	ClientID string
	Amount   decimal.Decimal
	Date     time.Time
}

type RequestWithdrawalInput struct {
	ClientID string
	Amount   decimal.Decimal
	Method   string
	Details  string
}

type TransitionWithdrawalInput struct {
	WithdrawalID string
	NewStatus    WithdrawalStatus
	Actor        string
	Note         string
}

type LedgerUsecase interface {
	RecordProfit(ctx context.Context, input RecordProfitInput) (*ProfitDistribution, error)
	RequestWithdrawal(ctx context.Context, input RequestWithdrawalInput) (string, error)
	TransitionWithdrawal(ctx context.Context, input TransitionWithdrawalInput) error
	GetProfitHistory(ctx context.Context, clientID string) ([]*ProfitEntry, error)
	GetWithdrawalHistory(ctx context.Context, clientID string) ([]*Withdrawal, error)
	ListWithdrawalsByStatus(ctx context.Context, status WithdrawalStatus) ([]*Withdrawal, error)
}
