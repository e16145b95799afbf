package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// BonusShare is one step of a bonus plan: the Pioneer ancestor receiving a
// cut of the recorded profit and the rate applied to the profit amount
// itself (rates do not compound level to level).
type BonusShare struct {
	Level     int
	PioneerID string
	Rate      decimal.Decimal
}

// DownlineNode is one node of a client's downline tree.
type DownlineNode struct {
	ClientID string          `json:"client_id"`
	Name     string          `json:"name"`
	Tier     ClientTier      `json:"tier"`
	Children []*DownlineNode `json:"children"`
}

type ReferralUsecase interface {
	BonusPlan(ctx context.Context, clientID string) ([]BonusShare, error)
	DownlineTree(ctx context.Context, clientID string) (*DownlineNode, error)
	DownlineCount(ctx context.Context, clientID string) (int, error)
	ReferralEarnings(ctx context.Context, clientID string) (decimal.Decimal, error)
}
