package models

import "time"

type LicenseModel struct {
	ID        string `gorm:"primaryKey"`
	ClientID  string `gorm:"index;not null"`
	Key       string `gorm:"column:key;not null"`
	EncData   string
	Version   string
	AllowLive bool      `gorm:"not null;default:true"`
	IssuedAt  time.Time `gorm:"not null"`
	Expiry    time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (LicenseModel) TableName() string {
	return "client_licenses"
}
