package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/palengkeph/palengke-backend/api/middleware"
	"github.com/palengkeph/palengke-backend/api/responses"
	"github.com/palengkeph/palengke-backend/api/validators"
	"github.com/palengkeph/palengke-backend/internal/address"
	cartsvc "github.com/palengkeph/palengke-backend/internal/cart"
	quotesvc "github.com/palengkeph/palengke-backend/internal/quote"
	"github.com/palengkeph/palengke-backend/pkg/db/models"
	pkgerrors "github.com/palengkeph/palengke-backend/pkg/errors"
	"github.com/palengkeph/palengke-backend/pkg/logger"
	"github.com/palengkeph/palengke-backend/pkg/types"
)

// CartGet returns the customer's active cart, creating an empty one on first
// touch.
func CartGet(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		record, err := svc.ActiveCart(ctx, middleware.CustomerRefFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartRecordResponse(record))
	}
}

// CartReplaceItems swaps the full item list of the active cart.
func CartReplaceItems(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload replaceItemsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items := make([]cartsvc.ItemInput, 0, len(payload.Items))
		for _, item := range payload.Items {
			items = append(items, cartsvc.ItemInput{
				MerchantID:     item.MerchantID,
				Name:           item.Name,
				UnitPrice:      item.UnitPrice,
				Quantity:       item.Quantity,
				Customizations: item.Customizations,
			})
		}

		record, err := svc.ReplaceItems(ctx, middleware.CustomerRefFromContext(ctx), items)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartRecordResponse(record))
	}
}

// CartSetDestination resolves an accepted suggestion and attaches it to the
// active cart. Free-typed addresses never reach this handler, so attached
// destinations are always confirmed.
func CartSetDestination(svc cartsvc.Service, addresses address.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil || addresses == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload setDestinationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dest, err := addresses.Resolve(ctx, address.ResolveRequest{PlaceID: payload.PlaceID})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		record, err := svc.SetDestination(ctx, middleware.CustomerRefFromContext(ctx), dest)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartRecordResponse(record))
	}
}

// CartSetCustomer records the contact details required before placement.
func CartSetCustomer(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload setCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		record, err := svc.SetCustomerDetails(ctx, middleware.CustomerRefFromContext(ctx), payload.Name, payload.Phone, payload.Notes)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartRecordResponse(record))
	}
}

// CartQuote prices delivery for every merchant in the active cart.
func CartQuote(carts cartsvc.Service, quotes quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if carts == nil || quotes == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		record, err := carts.ActiveCart(ctx, middleware.CustomerRefFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		ids := cartsvc.MerchantIDs(cartsvc.Lines(record))
		result, err := quotes.QuoteMerchants(ctx, ids, record.Destination)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"quotes": result})
	}
}

type replaceItemsRequest struct {
	Items []cartItemPayload `json:"items" validate:"dive"`
}

type cartItemPayload struct {
	MerchantID     uuid.UUID       `json:"merchant_id" validate:"required"`
	Name           string          `json:"name" validate:"required"`
	UnitPrice      decimal.Decimal `json:"unit_price" validate:"required"`
	Quantity       int             `json:"quantity" validate:"required,min=1"`
	Customizations []string        `json:"customizations,omitempty"`
}

type setDestinationRequest struct {
	PlaceID string `json:"place_id" validate:"required"`
}

type setCustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Notes string `json:"notes,omitempty"`
}

type cartRecordResponse struct {
	ID            uuid.UUID          `json:"id"`
	Status        string             `json:"status"`
	Destination   *types.Destination `json:"destination,omitempty"`
	CustomerName  *string            `json:"customer_name,omitempty"`
	CustomerPhone *string            `json:"customer_phone,omitempty"`
	Notes         *string            `json:"notes,omitempty"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Items         []cartItemResponse `json:"items"`
}

type cartItemResponse struct {
	MerchantID     uuid.UUID       `json:"merchant_id"`
	MerchantName   string          `json:"merchant_name"`
	Name           string          `json:"name"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Quantity       int             `json:"quantity"`
	Customizations []string        `json:"customizations,omitempty"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

func newCartRecordResponse(record *models.CartRecord) cartRecordResponse {
	if record == nil {
		return cartRecordResponse{Items: []cartItemResponse{}}
	}
	items := make([]cartItemResponse, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, cartItemResponse{
			MerchantID:     item.MerchantID,
			MerchantName:   item.MerchantName,
			Name:           item.Name,
			UnitPrice:      item.UnitPrice,
			Quantity:       item.Quantity,
			Customizations: item.Customizations,
			LineTotal:      item.LineTotal,
		})
	}
	return cartRecordResponse{
		ID:            record.ID,
		Status:        string(record.Status),
		Destination:   record.Destination,
		CustomerName:  record.CustomerName,
		CustomerPhone: record.CustomerPhone,
		Notes:         record.Notes,
		Subtotal:      record.Subtotal,
		Items:         items,
	}
}
