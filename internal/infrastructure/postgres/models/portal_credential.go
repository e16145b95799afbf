package models

import "time"

type PortalCredentialModel struct {
	ClientID     string `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (PortalCredentialModel) TableName() string {
	return "portal_credentials"
}
