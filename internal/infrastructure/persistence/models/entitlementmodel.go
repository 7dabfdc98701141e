package models

import (
	"time"

	"gorm.io/datatypes"
)

// EntitlementModel is the per-user plan and token balance row.
type EntitlementModel struct {
	ID                uint           `gorm:"primaryKey"`
	UserID            string         `gorm:"uniqueIndex:uk_entitlements_user_id;size:64;not null"`
	Plan              string         `gorm:"size:16;not null;default:'Free'"`
	Status            string         `gorm:"size:16;not null;default:'active'"`
	Tokens            int            `gorm:"not null;default:0"`
	LastRefresh       datatypes.Date `gorm:"not null"`
	BonusGranted      bool           `gorm:"not null;default:false"`
	PaymentOrderID    *string        `gorm:"size:64;index"`
	PaymentID         *string        `gorm:"size:64"`
	AmountPaid        int64          `gorm:"not null;default:0"`
	SubscriptionStart *time.Time
	SubscriptionEnd   *time.Time
	Version           int `gorm:"not null;default:1"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (EntitlementModel) TableName() string {
	return "entitlements"
}
