package repository

import (
	"context"

	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/postgres/mappers"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultLicenseRepository struct {
	DB *gorm.DB
}

func NewDefaultLicenseRepository(db *gorm.DB) *DefaultLicenseRepository {
	return &DefaultLicenseRepository{DB: db}
}

func (r *DefaultLicenseRepository) CreateLicense(ctx context.Context, license *domain.License) error {
	return r.DB.WithContext(ctx).Create(mappers.ToGORMLicense(license)).Error
}

func (r *DefaultLicenseRepository) ListLicensesByClientID(ctx context.Context, clientID string) ([]*domain.License, error) {
	var licenseModels []models.LicenseModel
	if err := r.DB.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("issued_at DESC").
		Find(&licenseModels).Error; err != nil {
		return nil, err
	}
	licenses := make([]*domain.License, len(licenseModels))
	for i := range licenseModels {
		licenses[i] = mappers.ToDomainLicense(&licenseModels[i])
	}
	return licenses, nil
}

func (r *DefaultLicenseRepository) CountLicenses(ctx context.Context) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.LicenseModel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
