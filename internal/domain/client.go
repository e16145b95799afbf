package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ClientTier string

const (
	TierRegular ClientTier = "Regular"
	TierPioneer ClientTier = "Pioneer"
)

// Client is the central back-office record. ReferrerID points at the client
// who recruited this one; it is a plain parent pointer in the store, so the
// resolver must not assume the chain is acyclic.
type Client struct {
	ID                  string
	Name                string
	Tier                ClientTier
	Accounts            string
	MobileNumber        string
	Address             string
	StartBalance        decimal.Decimal
	CurrentEquity       decimal.Decimal
	WithdrawableBalance decimal.Decimal
	ReferrerID          string
	ReferralCode        string
	Expiry              *time.Time
	Notes               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (c *Client) IsPioneer() bool {
	return c.Tier == TierPioneer
}

// BalanceSummary aggregates cached balances across all clients.
type BalanceSummary struct {
	TotalEquity       decimal.Decimal
	TotalWithdrawable decimal.Decimal
}

type ClientRepository interface {
	CreateClient(ctx context.Context, client *Client) error
	UpdateClient(ctx context.Context, client *Client) error
	GetClientByID(ctx context.Context, clientID string) (*Client, error)
	// GetClientByIDForUpdate locks the client row for the rest of the
	// surrounding transaction. Outside a transaction it behaves like
	// GetClientByID.
	GetClientByIDForUpdate(ctx context.Context, clientID string) (*Client, error)
	GetClientByReferralCode(ctx context.Context, code string) (*Client, error)
	ListClients(ctx context.Context) ([]*Client, error)
	ListClientsByReferrerID(ctx context.Context, referrerID string) ([]*Client, error)
	ListReferralCodesByPrefix(ctx context.Context, prefix string) ([]string, error)
	AddClientBalances(ctx context.Context, clientID string, equityDelta, withdrawableDelta decimal.Decimal) error
	UpdateClientExpiry(ctx context.Context, clientID string, expiry time.Time) error
	CountClients(ctx context.Context) (int64, error)
	SumClientBalances(ctx context.Context) (*BalanceSummary, error)
}
