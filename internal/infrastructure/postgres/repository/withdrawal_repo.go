package repository

import (
	"context"
	"errors"
	"time"

	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/postgres/mappers"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/postgres/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultWithdrawalRepository struct {
	DB *gorm.DB
}

func NewDefaultWithdrawalRepository(db *gorm.DB) *DefaultWithdrawalRepository {
	return &DefaultWithdrawalRepository{DB: db}
}

func (r *DefaultWithdrawalRepository) CreateWithdrawal(ctx context.Context, withdrawal *domain.Withdrawal) error {
	return r.DB.WithContext(ctx).Create(mappers.ToGORMWithdrawal(withdrawal)).Error
}

func (r *DefaultWithdrawalRepository) UpdateWithdrawal(ctx context.Context, withdrawal *domain.Withdrawal) error {
	model := mappers.ToGORMWithdrawal(withdrawal)
	return r.DB.WithContext(ctx).Model(&models.WithdrawalModel{}).
		Where("id = ?", withdrawal.ID).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"note":         model.Note,
			"processed_at": model.ProcessedAt,
			"processed_by": model.ProcessedBy,
			"updated_at":   time.Now(),
		}).Error
}

func (r *DefaultWithdrawalRepository) GetWithdrawalByID(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error) {
	var model models.WithdrawalModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", withdrawalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, err
	}
	return mappers.ToDomainWithdrawal(&model), nil
}

func (r *DefaultWithdrawalRepository) GetWithdrawalByIDForUpdate(ctx context.Context, withdrawalID string) (*domain.Withdrawal, error) {
	var model models.WithdrawalModel
	if err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", withdrawalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWithdrawalNotFound
		}
		return nil, err
	}
	return mappers.ToDomainWithdrawal(&model), nil
}

func (r *DefaultWithdrawalRepository) ListWithdrawalsByClientID(ctx context.Context, clientID string) ([]*domain.Withdrawal, error) {
	var withdrawalModels []models.WithdrawalModel
	if err := r.DB.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("requested_at DESC").
		Find(&withdrawalModels).Error; err != nil {
		return nil, err
	}
	return toDomainWithdrawals(withdrawalModels), nil
}

func (r *DefaultWithdrawalRepository) ListWithdrawalsByStatus(ctx context.Context, status domain.WithdrawalStatus) ([]*domain.Withdrawal, error) {
	var withdrawalModels []models.WithdrawalModel
	if err := r.DB.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("requested_at DESC").
		Find(&withdrawalModels).Error; err != nil {
		return nil, err
	}
	return toDomainWithdrawals(withdrawalModels), nil
}

func (r *DefaultWithdrawalRepository) SumWithdrawalsByStatus(ctx context.Context, status domain.WithdrawalStatus) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.DB.WithContext(ctx).Model(&models.WithdrawalModel{}).
		Where("status = ?", string(status)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func toDomainWithdrawals(withdrawalModels []models.WithdrawalModel) []*domain.Withdrawal {
	withdrawals := make([]*domain.Withdrawal, len(withdrawalModels))
	for i := range withdrawalModels {
		withdrawals[i] = mappers.ToDomainWithdrawal(&withdrawalModels[i])
	}
	return withdrawals
}
