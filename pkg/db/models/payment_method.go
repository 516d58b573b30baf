package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/palengkeph/palengke-backend/pkg/enums"
)

// PaymentMethod is a catalog entry offered at checkout. Merchant-bound rows
// carry a MerchantID; global rows leave it null. Position fixes catalog order.
type PaymentMethod struct {
	ID          uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DisplayName string                   `gorm:"column:display_name;not null"`
	Scope       enums.PaymentMethodScope `gorm:"column:scope;type:payment_method_scope;not null;default:'global'"`
	MerchantID  *uuid.UUID               `gorm:"column:merchant_id;type:uuid;index"`
	Active      bool                     `gorm:"column:active;not null;default:true"`
	Position    int                      `gorm:"column:position;not null;default:0"`
	CreatedAt   time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
