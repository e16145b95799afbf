package domain

import "context"

// Store bundles the repositories that participate in ledger transactions.
// Inside TxManager.WithinTx every repository is bound to the same database
// transaction.
type Store interface {
	Clients() ClientRepository
	Profits() ProfitRepository
	Withdrawals() WithdrawalRepository
	Licenses() LicenseRepository
}

// TxManager runs fn atomically: either every write made through the passed
// store commits, or none do. Business operations that touch several rows
// (profit distribution, withdrawal payout) must go through it.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(store Store) error) error
}
