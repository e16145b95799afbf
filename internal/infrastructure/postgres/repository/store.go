package repository

import (
	"context"

	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"gorm.io/gorm"
)

// PGStore bundles the repositories over one *gorm.DB handle. Inside
// PGTxManager.WithinTx the handle is the transaction, so every repository
// obtained from the passed store shares it.
type PGStore struct {
	db *gorm.DB
}

func NewPGStore(db *gorm.DB) *PGStore {
	return &PGStore{db: db}
}

func (s *PGStore) Clients() domain.ClientRepository {
	return NewDefaultClientRepository(s.db)
}

func (s *PGStore) Profits() domain.ProfitRepository {
	return NewDefaultProfitRepository(s.db)
}

func (s *PGStore) Withdrawals() domain.WithdrawalRepository {
	return NewDefaultWithdrawalRepository(s.db)
}

func (s *PGStore) Licenses() domain.LicenseRepository {
	return NewDefaultLicenseRepository(s.db)
}

type PGTxManager struct {
	db *gorm.DB
}

func NewPGTxManager(db *gorm.DB) *PGTxManager {
	return &PGTxManager{db: db}
}

func (m *PGTxManager) WithinTx(ctx context.Context, fn func(store domain.Store) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewPGStore(tx))
	})
}
