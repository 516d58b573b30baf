package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/palengkeph/palengke-backend/api/middleware"
	"github.com/palengkeph/palengke-backend/api/responses"
	"github.com/palengkeph/palengke-backend/api/validators"
	checkoutsvc "github.com/palengkeph/palengke-backend/internal/checkout"
	"github.com/palengkeph/palengke-backend/pkg/db/models"
	pkgerrors "github.com/palengkeph/palengke-backend/pkg/errors"
	"github.com/palengkeph/palengke-backend/pkg/logger"
)

// CheckoutSummary aggregates the active cart without committing anything.
func CheckoutSummary(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		summary, err := svc.Summary(ctx, middleware.CustomerRefFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}

// CheckoutPlace converts the active cart into a placed order.
func CheckoutPlace(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, summary, err := svc.Place(ctx, middleware.CustomerRefFromContext(ctx), checkoutsvc.PlaceInput{
			PaymentMethodID: payload.PaymentMethodID,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newPlaceOrderResponse(order, summary))
	}
}

type placeOrderRequest struct {
	PaymentMethodID uuid.UUID `json:"payment_method_id" validate:"required,uuid4"`
}

type placeOrderResponse struct {
	OrderID        uuid.UUID            `json:"order_id"`
	Status         string               `json:"status"`
	Summary        *checkoutsvc.Summary `json:"summary"`
	Message        string               `json:"message"`
	MessageEncoded string               `json:"message_encoded"`
}

func newPlaceOrderResponse(order *models.OrderRecord, summary *checkoutsvc.Summary) placeOrderResponse {
	if order == nil {
		return placeOrderResponse{Summary: summary}
	}
	return placeOrderResponse{
		OrderID:        order.ID,
		Status:         string(order.Status),
		Summary:        summary,
		Message:        order.Message,
		MessageEncoded: order.MessageEncoded,
	}
}
