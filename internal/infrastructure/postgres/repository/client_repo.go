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

type DefaultClientRepository struct {
	DB *gorm.DB
}

func NewDefaultClientRepository(db *gorm.DB) *DefaultClientRepository {
	return &DefaultClientRepository{DB: db}
}

func (r *DefaultClientRepository) CreateClient(ctx context.Context, client *domain.Client) error {
	return r.DB.WithContext(ctx).Create(mappers.ToGORMClient(client)).Error
}

func (r *DefaultClientRepository) UpdateClient(ctx context.Context, client *domain.Client) error {
	model := mappers.ToGORMClient(client)
	return r.DB.WithContext(ctx).Model(&models.ClientModel{ID: client.ID}).
		Updates(map[string]interface{}{
			"name":          model.Name,
			"tier":          model.Tier,
			"accounts":      model.Accounts,
			"mobile_number": model.MobileNumber,
			"address":       model.Address,
			"referrer_id":   model.ReferrerID,
			"referral_code": model.ReferralCode,
			"expiry":        model.Expiry,
			"notes":         model.Notes,
			"updated_at":    time.Now(),
		}).Error
}

func (r *DefaultClientRepository) GetClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	var model models.ClientModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return mappers.ToDomainClient(&model), nil
}

func (r *DefaultClientRepository) GetClientByIDForUpdate(ctx context.Context, clientID string) (*domain.Client, error) {
	var model models.ClientModel
	if err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return mappers.ToDomainClient(&model), nil
}

func (r *DefaultClientRepository) GetClientByReferralCode(ctx context.Context, code string) (*domain.Client, error) {
	var model models.ClientModel
	if err := r.DB.WithContext(ctx).First(&model, "referral_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClientNotFound
		}
		return nil, err
	}
	return mappers.ToDomainClient(&model), nil
}

func (r *DefaultClientRepository) ListClients(ctx context.Context) ([]*domain.Client, error) {
	var clientModels []models.ClientModel
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&clientModels).Error; err != nil {
		return nil, err
	}
	clients := make([]*domain.Client, len(clientModels))
	for i := range clientModels {
		clients[i] = mappers.ToDomainClient(&clientModels[i])
	}
	return clients, nil
}

func (r *DefaultClientRepository) ListClientsByReferrerID(ctx context.Context, referrerID string) ([]*domain.Client, error) {
	var clientModels []models.ClientModel
	if err := r.DB.WithContext(ctx).
		Where("referrer_id = ?", referrerID).
		Order("created_at ASC").
		Find(&clientModels).Error; err != nil {
		return nil, err
	}
	clients := make([]*domain.Client, len(clientModels))
	for i := range clientModels {
		clients[i] = mappers.ToDomainClient(&clientModels[i])
	}
	return clients, nil
}

func (r *DefaultClientRepository) ListReferralCodesByPrefix(ctx context.Context, prefix string) ([]string, error) {
	var codes []string
	if err := r.DB.WithContext(ctx).Model(&models.ClientModel{}).
		Where("referral_code LIKE ?", prefix+"%").
		Pluck("referral_code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *DefaultClientRepository) AddClientBalances(ctx context.Context, clientID string, equityDelta, withdrawableDelta decimal.Decimal) error {
	result := r.DB.WithContext(ctx).Model(&models.ClientModel{}).
		Where("id = ?", clientID).
		Updates(map[string]interface{}{
			"current_equity":       gorm.Expr("current_equity + ?", equityDelta),
			"withdrawable_balance": gorm.Expr("withdrawable_balance + ?", withdrawableDelta),
			"updated_at":           time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *DefaultClientRepository) UpdateClientExpiry(ctx context.Context, clientID string, expiry time.Time) error {
	result := r.DB.WithContext(ctx).Model(&models.ClientModel{}).
		Where("id = ?", clientID).
		Updates(map[string]interface{}{
			"expiry":     expiry,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *DefaultClientRepository) SumClientBalances(ctx context.Context) (*domain.BalanceSummary, error) {
	var row struct {
		TotalEquity       decimal.Decimal
		TotalWithdrawable decimal.Decimal
	}
	err := r.DB.WithContext(ctx).Model(&models.ClientModel{}).
		Select(`COALESCE(SUM(current_equity), 0) AS total_equity,
			COALESCE(SUM(withdrawable_balance), 0) AS total_withdrawable`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &domain.BalanceSummary{
		TotalEquity:       row.TotalEquity,
		TotalWithdrawable: row.TotalWithdrawable,
	}, nil
}

func (r *DefaultClientRepository) CountClients(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.ClientModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
