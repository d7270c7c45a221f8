package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartEntry persists one cart line. Position keeps display order stable.
type CartEntry struct {
	Name      string          `gorm:"column:name;primaryKey"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(14,4);not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Image     *string         `gorm:"column:image"`
	Position  int64           `gorm:"column:position;not null;index"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (CartEntry) TableName() string {
	return "cart_entries"
}
