package mappers

import (
	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/postgres/models"
)

func ToGORMProfitEntry(entry *domain.ProfitEntry) *models.ProfitEntryModel {
	return &models.ProfitEntryModel{
		ID:          entry.ID,
		ClientID:    entry.ClientID,
		Profit:      entry.Profit,
		ClientShare: entry.ClientShare,
		OwnerShare:  entry.OwnerShare,
		Bonus:       entry.Bonus,
		Date:        entry.Date,
		CreatedAt:   entry.CreatedAt,
	}
}

func ToDomainProfitEntry(model *models.ProfitEntryModel) *domain.ProfitEntry {
	return &domain.ProfitEntry{
		ID:          model.ID,
		ClientID:    model.ClientID,
		Profit:      model.Profit,
		ClientShare: model.ClientShare,
		OwnerShare:  model.OwnerShare,
		Bonus:       model.Bonus,
		Date:        model.Date,
		CreatedAt:   model.CreatedAt,
	}
}
