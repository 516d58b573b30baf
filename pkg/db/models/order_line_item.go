package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/palengkeph/palengke-backend/pkg/types"
)

// OrderLineItem captures the snapshot of each item within a placed order.
type OrderLineItem struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID        `gorm:"column:order_id;type:uuid;not null;index"`
	MerchantID     uuid.UUID        `gorm:"column:merchant_id;type:uuid;not null"`
	Name           string           `gorm:"column:name;not null"`
	UnitPrice      decimal.Decimal  `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity       int              `gorm:"column:quantity;not null"`
	Customizations types.StringList `gorm:"column:customizations;type:jsonb;serializer:json"`
	LineTotal      decimal.Decimal  `gorm:"column:line_total;type:numeric(12,2);not null"`
	Position       int              `gorm:"column:position;not null;default:0"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
}
