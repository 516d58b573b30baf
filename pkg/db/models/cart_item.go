package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/palengkeph/palengke-backend/pkg/types"
)

// CartItem persists item-level snapshots tied to a CartRecord. Position keeps
// the order items were added in, which the rendered order mirrors.
type CartItem struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID         uuid.UUID        `gorm:"column:cart_id;type:uuid;not null"`
	MerchantID     uuid.UUID        `gorm:"column:merchant_id;type:uuid;not null"`
	MerchantName   string           `gorm:"column:merchant_name;not null"`
	Name           string           `gorm:"column:name;not null"`
	UnitPrice      decimal.Decimal  `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity       int              `gorm:"column:quantity;not null"`
	Customizations types.StringList `gorm:"column:customizations;type:jsonb;serializer:json"`
	LineTotal      decimal.Decimal  `gorm:"column:line_total;type:numeric(12,2);not null"`
	Position       int              `gorm:"column:position;not null;default:0"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
