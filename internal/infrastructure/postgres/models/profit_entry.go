package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProfitEntryModel struct {
	ID          string          `gorm:"primaryKey"`
	ClientID    string          `gorm:"index;not null"`
	Profit      decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	ClientShare decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	OwnerShare  decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Bonus       decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Date        time.Time       `gorm:"index;not null"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
}

func (ProfitEntryModel) TableName() string {
	return "profit_entries"
}
