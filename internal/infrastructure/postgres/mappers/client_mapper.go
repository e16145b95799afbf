package mappers

import (
	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/postgres/models"
)

func ToGORMClient(client *domain.Client) *models.ClientModel {
	return &models.ClientModel{
		ID:                  client.ID,
		Name:                client.Name,
		Tier:                string(client.Tier),
		Accounts:            client.Accounts,
		MobileNumber:        client.MobileNumber,
		Address:             client.Address,
		StartBalance:        client.StartBalance,
		CurrentEquity:       client.CurrentEquity,
		WithdrawableBalance: client.WithdrawableBalance,
		ReferrerID:          client.ReferrerID,
		ReferralCode:        client.ReferralCode,
		Expiry:              client.Expiry,
		Notes:               client.Notes,
		CreatedAt:           client.CreatedAt,
		UpdatedAt:           client.UpdatedAt,
	}
}

func ToDomainClient(model *models.ClientModel) *domain.Client {
	return &domain.Client{
		ID:                  model.ID,
		Name:                model.Name,
		Tier:                domain.ClientTier(model.Tier),
		Accounts:            model.Accounts,
		MobileNumber:        model.MobileNumber,
		Address:             model.Address,
		StartBalance:        model.StartBalance,
		CurrentEquity:       model.CurrentEquity,
		WithdrawableBalance: model.WithdrawableBalance,
		ReferrerID:          model.ReferrerID,
		ReferralCode:        model.ReferralCode,
		Expiry:              model.Expiry,
		Notes:               model.Notes,
		CreatedAt:           model.CreatedAt,
		UpdatedAt:           model.UpdatedAt,
	}
}
