package mappers

import (
	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/postgres/models"
)

func ToGORMWithdrawal(withdrawal *domain.Withdrawal) *models.WithdrawalModel {
	return &models.WithdrawalModel{
		ID:          withdrawal.ID,
		ClientID:    withdrawal.ClientID,
		Amount:      withdrawal.Amount,
		Method:      withdrawal.Method,
		Details:     withdrawal.Details,
		Status:      string(withdrawal.Status),
		Note:        withdrawal.Note,
		RequestedAt: withdrawal.RequestedAt,
		ProcessedAt: withdrawal.ProcessedAt,
		ProcessedBy: withdrawal.ProcessedBy,
		CreatedAt:   withdrawal.CreatedAt,
		UpdatedAt:   withdrawal.UpdatedAt,
	}
}

func ToDomainWithdrawal(model *models.WithdrawalModel) *domain.Withdrawal {
	return &domain.Withdrawal{
		ID:          model.ID,
		ClientID:    model.ClientID,
		Amount:      model.Amount,
		Method:      model.Method,
		Details:     model.Details,
		Status:      domain.WithdrawalStatus(model.Status),
		Note:        model.Note,
		RequestedAt: model.RequestedAt,
		ProcessedAt: model.ProcessedAt,
		ProcessedBy: model.ProcessedBy,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
