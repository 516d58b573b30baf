package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/palengkeph/palengke-backend/pkg/enums"
	"github.com/palengkeph/palengke-backend/pkg/types"
)

// OrderRecord is the placed-order snapshot. Message and MessageEncoded are
// persisted verbatim so a replay always hands off the exact bytes the
// customer reviewed.
type OrderRecord struct {
	ID                uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CartID            uuid.UUID         `gorm:"column:cart_id;type:uuid;not null;index"`
	CustomerRef       string            `gorm:"column:customer_ref;not null;index"`
	Status            enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'placed'"`
	CustomerName      string            `gorm:"column:customer_name;not null"`
	CustomerPhone     string            `gorm:"column:customer_phone;not null"`
	Destination       types.Destination `gorm:"column:destination;type:jsonb;serializer:json;not null"`
	PaymentMethodID   uuid.UUID         `gorm:"column:payment_method_id;type:uuid;not null"`
	PaymentMethodName string            `gorm:"column:payment_method_name;not null"`
	Notes             *string           `gorm:"column:notes"`
	ItemsSubtotal     decimal.Decimal   `gorm:"column:items_subtotal;type:numeric(12,2);not null"`
	DeliveryFeeTotal  decimal.Decimal   `gorm:"column:delivery_fee_total;type:numeric(12,2);not null"`
	GrandTotal        decimal.Decimal   `gorm:"column:grand_total;type:numeric(12,2);not null"`
	Message           string            `gorm:"column:message;not null"`
	MessageEncoded    string            `gorm:"column:message_encoded;not null"`
	Merchants         []OrderMerchant   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	LineItems         []OrderLineItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

func (OrderRecord) TableName() string {
	return "orders"
}
