package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderMerchant captures the per-merchant slice of a placed order, including
// the delivery quote the customer accepted.
type OrderMerchant struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID      uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	MerchantID   uuid.UUID       `gorm:"column:merchant_id;type:uuid;not null"`
	MerchantName string          `gorm:"column:merchant_name;not null"`
	Subtotal     decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
	DistanceKm   float64         `gorm:"column:distance_km;not null"`
	DeliveryFee  decimal.Decimal `gorm:"column:delivery_fee;type:numeric(12,2);not null"`
	Position     int             `gorm:"column:position;not null;default:0"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
}
