package postgres

import (
	"log"

	"github.com/kmfx/kmfx-backoffice-service/internal/config"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/logger"
	"github.com/kmfx/kmfx-backoffice-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.BackofficeConfig) *gorm.DB {
	dsn := cfg.BackofficeDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.ClientModel{},
		&models.ProfitEntryModel{},
		&models.WithdrawalModel{},
		&models.LicenseModel{},
		&models.PortalCredentialModel{},
		&logger.AuditEntry{},
	)

	return db
}
