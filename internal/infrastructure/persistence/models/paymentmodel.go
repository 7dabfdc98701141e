package models

import (
	"time"

	"gorm.io/datatypes"
)

type PaymentModel struct {
	ID            uint    `gorm:"primaryKey"`
	OrderID       string  `gorm:"uniqueIndex:uk_payments_order_id;size:64;not null"`
	PaymentID     *string `gorm:"size:64;index"`
	UserID        string  `gorm:"index;size:64;not null"`
	Plan          string  `gorm:"size:16;not null"`
	Amount        int64   `gorm:"not null"`
	Currency      string  `gorm:"size:3;not null;default:'INR'"`
	Receipt       string  `gorm:"size:64"`
	Method        string  `gorm:"size:32"`
	Status        string  `gorm:"size:16;not null;index"`
	FailureReason string  `gorm:"size:255"`
	Metadata      datatypes.JSON
	CapturedAt    *time.Time
	Version       int `gorm:"not null;default:1"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PaymentModel) TableName() string {
	return "payments"
}
