package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/palengkeph/palengke-backend/internal/address"
	"github.com/palengkeph/palengke-backend/pkg/types"
)

type stubAddressService struct {
	suggestions []address.Suggestion
	dest        types.Destination
	err         error
}

func (s stubAddressService) Suggest(ctx context.Context, req address.SuggestRequest) ([]address.Suggestion, error) {
	return s.suggestions, s.err
}

func (s stubAddressService) Resolve(ctx context.Context, req address.ResolveRequest) (types.Destination, error) {
	return s.dest, s.err
}

func TestAddressSuggestReturnsCandidates(t *testing.T) {
	t.Parallel()

	svc := stubAddressService{suggestions: []address.Suggestion{
		{PlaceID: "plc-1", Description: "Maginhawa St, Quezon City"},
	}}

	resp := httptest.NewRecorder()
	AddressSuggest(svc, nil)(resp, httptest.NewRequest(http.MethodGet, "/api/v1/address/suggest?query=maginhawa", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data struct {
			Suggestions []address.Suggestion `json:"suggestions"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Suggestions) != 1 || envelope.Data.Suggestions[0].PlaceID != "plc-1" {
		t.Fatalf("unexpected suggestions %+v", envelope.Data.Suggestions)
	}
}

func TestAddressResolveReturnsDestination(t *testing.T) {
	t.Parallel()

	svc := stubAddressService{dest: types.Destination{
		PlaceID: "plc-9",
		Label:   "88 Session Rd, Baguio",
		Lat:     16.4119,
		Lng:     120.5933,
	}}

	resp := httptest.NewRecorder()
	AddressResolve(svc, nil)(resp, customerRequest(http.MethodPost, "/api/v1/address/resolve", `{"place_id":"plc-9"}`))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data types.Destination `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.PlaceID != "plc-9" || !envelope.Data.Confirmed() {
		t.Fatalf("unexpected destination %+v", envelope.Data)
	}
}

func TestAddressResolveRequiresPlaceID(t *testing.T) {
	t.Parallel()

	resp := httptest.NewRecorder()
	AddressResolve(stubAddressService{}, nil)(resp, customerRequest(http.MethodPost, "/api/v1/address/resolve", `{}`))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", resp.Code, resp.Body.String())
	}
}
