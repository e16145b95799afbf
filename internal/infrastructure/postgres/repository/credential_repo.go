package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/kmfx/kmfx-backoffice-service/internal/domain"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultCredentialRepository struct {
	DB *gorm.DB
}

func NewDefaultCredentialRepository(db *gorm.DB) *DefaultCredentialRepository {
	return &DefaultCredentialRepository{DB: db}
}

func (r *DefaultCredentialRepository) UpsertCredential(ctx context.Context, credential *domain.PortalCredential) error {
	model := models.PortalCredentialModel{
		ClientID:     credential.ClientID,
		Username:     credential.Username,
		PasswordHash: credential.PasswordHash,
	}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "client_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"username", "password_hash", "updated_at"}),
		}).
		Create(&model).Error
}

func (r *DefaultCredentialRepository) GetCredentialByUsername(ctx context.Context, username string) (*domain.PortalCredential, error) {
	var model models.PortalCredentialModel
	if err := r.DB.WithContext(ctx).First(&model, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("credential for %q not found", username)
		}
		return nil, err
	}
	return &domain.PortalCredential{
		ClientID:     model.ClientID,
		Username:     model.Username,
		PasswordHash: model.PasswordHash,
	}, nil
}
