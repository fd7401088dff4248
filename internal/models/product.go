package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry in the store. Image holds the filename of
// the product photo inside the products storage directory.
type Product struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	Image       string          `json:"image" gorm:"type:varchar(255);not null"`
	Title       string          `json:"title" gorm:"type:varchar(255);not null"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	Stock       decimal.Decimal `json:"stock" gorm:"type:decimal(20,2);not null;default:0"`
	CreatedAt   time.Time       `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
