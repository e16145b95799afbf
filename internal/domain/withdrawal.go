package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "Pending"
	WithdrawalApproved WithdrawalStatus = "Approved"
	WithdrawalRejected WithdrawalStatus = "Rejected"
	WithdrawalPaid     WithdrawalStatus = "Paid"
)

// legalWithdrawalTransitions is the full transition table. Statuses move
// strictly forward; everything not listed here is rejected, including a
// repeat of an already-applied transition.
var legalWithdrawalTransitions = map[WithdrawalStatus][]WithdrawalStatus{
	WithdrawalPending:  {WithdrawalApproved, WithdrawalRejected},
	WithdrawalApproved: {WithdrawalPaid},
}

func IsLegalWithdrawalTransition(from, to WithdrawalStatus) bool {
	for _, next := range legalWithdrawalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Withdrawal struct {
	ID            string
	ClientID      string
	Amount        decimal.Decimal
	Method        string
	Details       string
	Status        WithdrawalStatus
	Note          string
	RequestedAt   time.Time
	ProcessedAt   *time.Time
	ProcessedBy   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type WithdrawalRepository interface {
	CreateWithdrawal(ctx context.Context, withdrawal *Withdrawal) error
	UpdateWithdrawal(ctx context.Context, withdrawal *Withdrawal) error
	GetWithdrawalByID(ctx context.Context, withdrawalID string) (*Withdrawal, error)
	// GetWithdrawalByIDForUpdate locks the row inside the surrounding
	// transaction so a retried transition sees the already-applied status.
	GetWithdrawalByIDForUpdate(ctx context.Context, withdrawalID string) (*Withdrawal, error)
	ListWithdrawalsByClientID(ctx context.Context, clientID string) ([]*Withdrawal, error)
	ListWithdrawalsByStatus(ctx context.Context, status WithdrawalStatus) ([]*Withdrawal, error)
	SumWithdrawalsByStatus(ctx context.Context, status WithdrawalStatus) (decimal.Decimal, error)
}
