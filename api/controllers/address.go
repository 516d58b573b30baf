package controllers

import (
	"net/http"
	"strings"

	"github.com/palengkeph/palengke-backend/api/responses"
	"github.com/palengkeph/palengke-backend/api/validators"
	"github.com/palengkeph/palengke-backend/internal/address"
	pkgerrors "github.com/palengkeph/palengke-backend/pkg/errors"
	"github.com/palengkeph/palengke-backend/pkg/logger"
)

type resolveAddressPayload struct {
	PlaceID string `json:"place_id" validate:"required"`
}

// AddressSuggest returns autocomplete suggestions for the frontend.
func AddressSuggest(svc address.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "address service unavailable"))
			return
		}

		req := address.SuggestRequest{
			Query:    strings.TrimSpace(r.URL.Query().Get("query")),
			Country:  strings.TrimSpace(r.URL.Query().Get("country")),
			Language: strings.TrimSpace(r.URL.Query().Get("language")),
		}

		resp, err := svc.Suggest(ctx, req)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"suggestions": resp})
	}
}

// AddressResolve resolves an accepted suggestion into a confirmed destination.
func AddressResolve(svc address.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "address service unavailable"))
			return
		}

		var payload resolveAddressPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dest, err := svc.Resolve(ctx, address.ResolveRequest{PlaceID: payload.PlaceID})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, dest)
	}
}
