package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/palengkeph/palengke-backend/api/middleware"
	"github.com/palengkeph/palengke-backend/api/responses"
	cartsvc "github.com/palengkeph/palengke-backend/internal/cart"
	paymentsvc "github.com/palengkeph/palengke-backend/internal/payments"
	"github.com/palengkeph/palengke-backend/pkg/db/models"
	pkgerrors "github.com/palengkeph/palengke-backend/pkg/errors"
	"github.com/palengkeph/palengke-backend/pkg/logger"
)

// PaymentMethods lists the methods applicable to the active cart's merchant
// mix. Merchant-bound methods only appear while the cart holds that single
// merchant.
func PaymentMethods(carts cartsvc.Service, payments paymentsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if carts == nil || payments == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "payment service unavailable"))
			return
		}

		record, err := carts.ActiveCart(ctx, middleware.CustomerRefFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		methods, err := payments.MethodsForCart(ctx, cartsvc.MerchantIDs(cartsvc.Lines(record)))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		resp := make([]paymentMethodResponse, 0, len(methods))
		for _, method := range methods {
			resp = append(resp, newPaymentMethodResponse(method))
		}
		responses.WriteSuccess(w, map[string]any{"payment_methods": resp})
	}
}

type paymentMethodResponse struct {
	ID          uuid.UUID  `json:"id"`
	DisplayName string     `json:"display_name"`
	Scope       string     `json:"scope"`
	MerchantID  *uuid.UUID `json:"merchant_id,omitempty"`
}

func newPaymentMethodResponse(method models.PaymentMethod) paymentMethodResponse {
	return paymentMethodResponse{
		ID:          method.ID,
		DisplayName: method.DisplayName,
		Scope:       string(method.Scope),
		MerchantID:  method.MerchantID,
	}
}
