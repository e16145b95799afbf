package repository

import (
	"context"

	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/postgres/mappers"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DefaultProfitRepository struct {
	DB *gorm.DB
}

func NewDefaultProfitRepository(db *gorm.DB) *DefaultProfitRepository {
	return &DefaultProfitRepository{DB: db}
}

func (r *DefaultProfitRepository) CreateProfitEntry(ctx context.Context, entry *domain.ProfitEntry) error {
	return r.DB.WithContext(ctx).Create(mappers.ToGORMProfitEntry(entry)).Error
}

func (r *DefaultProfitRepository) ListProfitEntriesByClientID(ctx context.Context, clientID string) ([]*domain.ProfitEntry, error) {
	var entryModels []models.ProfitEntryModel
	if err := r.DB.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date DESC, created_at DESC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	entries := make([]*domain.ProfitEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = mappers.ToDomainProfitEntry(&entryModels[i])
	}
	return entries, nil
}

func (r *DefaultProfitRepository) SumBonusByClientID(ctx context.Context, clientID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.DB.WithContext(ctx).Model(&models.ProfitEntryModel{}).
		Where("client_id = ?", clientID).
		Select("COALESCE(SUM(bonus), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *DefaultProfitRepository) SummarizeShares(ctx context.Context) (*domain.ShareSummary, error) {
	var row struct {
		TotalProfit      decimal.Decimal
		TotalClientShare decimal.Decimal
		TotalOwnerShare  decimal.Decimal
		TotalBonus       decimal.Decimal
	}
	err := r.DB.WithContext(ctx).Model(&models.ProfitEntryModel{}).
		Select(`COALESCE(SUM(profit), 0) AS total_profit,
			COALESCE(SUM(client_share), 0) AS total_client_share,
			COALESCE(SUM(owner_share), 0) AS total_owner_share,
			COALESCE(SUM(bonus), 0) AS total_bonus`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &domain.ShareSummary{
		TotalProfit:      row.TotalProfit,
		TotalClientShare: row.TotalClientShare,
		TotalOwnerShare:  row.TotalOwnerShare,
		TotalBonus:       row.TotalBonus,
	}, nil
}
