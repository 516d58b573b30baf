package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/palengkeph/palengke-backend/pkg/enums"
	"github.com/palengkeph/palengke-backend/pkg/types"
)

// CartRecord captures a customer-scoped cart snapshot. Destination is stored
// alongside the cart because quotes are computed against the pair.
type CartRecord struct {
	ID            uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerRef   string             `gorm:"column:customer_ref;not null;index"`
	Status        enums.CartStatus   `gorm:"column:status;type:cart_status;not null;default:'active'"`
	Destination   *types.Destination `gorm:"column:destination;type:jsonb;serializer:json"`
	CustomerName  *string            `gorm:"column:customer_name"`
	CustomerPhone *string            `gorm:"column:customer_phone"`
	Notes         *string            `gorm:"column:notes"`
	Subtotal      decimal.Decimal    `gorm:"column:subtotal;type:numeric(12,2);not null;default:0"`
	ConvertedAt   *time.Time         `gorm:"column:converted_at"`
	Items         []CartItem         `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (CartRecord) TableName() string {
	return "carts"
}
