package mappers

import (
	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/postgres/models"
)

func ToGORMLicense(license *domain.License) *models.LicenseModel {
	return &models.LicenseModel{
		ID:        license.ID,
		ClientID:  license.ClientID,
		Key:       license.Key,
		EncData:   license.EncData,
		Version:   license.Version,
		AllowLive: license.AllowLive,
		IssuedAt:  license.IssuedAt,
		Expiry:    license.Expiry,
		CreatedAt: license.CreatedAt,
	}
}

func ToDomainLicense(model *models.LicenseModel) *domain.License {
	return &domain.License{
		ID:        model.ID,
		ClientID:  model.ClientID,
		Key:       model.Key,
		EncData:   model.EncData,
		Version:   model.Version,
		AllowLive: model.AllowLive,
		IssuedAt:  model.IssuedAt,
		Expiry:    model.Expiry,
		CreatedAt: model.CreatedAt,
	}
}
