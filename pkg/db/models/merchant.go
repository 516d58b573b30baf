package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Merchant is the canonical storefront model. Fee and coordinate columns are
// nullable because onboarding fills them in stages.
type Merchant struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string           `gorm:"column:name;not null"`
	Slug            string           `gorm:"column:slug;not null;uniqueIndex"`
	Lat             *float64         `gorm:"column:lat"`
	Lng             *float64         `gorm:"column:lng"`
	MaxRadiusKm     *float64         `gorm:"column:max_radius_km"`
	DeliveryBaseFee *decimal.Decimal `gorm:"column:delivery_base_fee;type:numeric(12,2)"`
	DeliveryFee     *decimal.Decimal `gorm:"column:delivery_fee;type:numeric(12,2)"`
	PerKmRate       *decimal.Decimal `gorm:"column:per_km_rate;type:numeric(12,2)"`
	MinDeliveryFee  *decimal.Decimal `gorm:"column:min_delivery_fee;type:numeric(12,2)"`
	MaxDeliveryFee  *decimal.Decimal `gorm:"column:max_delivery_fee;type:numeric(12,2)"`
	Active          bool             `gorm:"column:active;not null;default:true"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
