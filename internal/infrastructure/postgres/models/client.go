package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ClientModel struct {
	ID                  string `gorm:"primaryKey"`
	Name                string `gorm:"not null"`
	Tier                string `gorm:"not null;default:'Regular'"`
	Accounts            string
	MobileNumber        string
	Address             string
	StartBalance        decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	CurrentEquity       decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	WithdrawableBalance decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	ReferrerID          string          `gorm:"index"`
	ReferralCode        string          `gorm:"uniqueIndex"`
	Expiry              *time.Time
	Notes               string
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
}

func (ClientModel) TableName() string {
	return "clients"
}
