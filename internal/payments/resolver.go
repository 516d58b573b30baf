package payments

import (
	"github.com/google/uuid"

	"github.com/palengkeph/palengke-backend/pkg/db/models"
	"github.com/palengkeph/palengke-backend/pkg/enums"
)

// Resolve filters the payment method catalog for a cart's merchant mix.
// Global methods always apply. Merchant-bound methods apply only when the
// cart contains exactly that one merchant. Catalog order is preserved.
func Resolve(catalog []models.PaymentMethod, merchantIDs []uuid.UUID) []models.PaymentMethod {
	var sole *uuid.UUID
	if len(merchantIDs) == 1 {
		sole = &merchantIDs[0]
	}

	out := make([]models.PaymentMethod, 0, len(catalog))
	for _, method := range catalog {
		switch method.Scope {
		case enums.PaymentScopeGlobal:
			out = append(out, method)
		case enums.PaymentScopeMerchant:
			if sole != nil && method.MerchantID != nil && *method.MerchantID == *sole {
				out = append(out, method)
			}
		}
	}
	return out
}
