package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalModel struct {
	ID          string          `gorm:"primaryKey"`
	ClientID    string          `gorm:"index;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(18,2);not null"`
	Method      string
	Details     string
	Status      string `gorm:"index;not null;default:'Pending'"`
	Note        string
	RequestedAt time.Time `gorm:"not null"`
	ProcessedAt *time.Time
	ProcessedBy string
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (WithdrawalModel) TableName() string {
	return "withdrawals"
}
