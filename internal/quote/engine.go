package quote

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/palengkeph/palengke-backend/internal/merchants"
	"github.com/palengkeph/palengke-backend/pkg/enums"
	"github.com/palengkeph/palengke-backend/pkg/geo"
	"github.com/palengkeph/palengke-backend/pkg/pricing"
	"github.com/palengkeph/palengke-backend/pkg/types"
)

// DeliveryQuote is the per-merchant quoting outcome. A merchant that cannot
// be served still yields a quote; only infrastructure failures are errors.
type DeliveryQuote struct {
	MerchantID   uuid.UUID          `json:"merchantId"`
	MerchantName string             `json:"merchantName"`
	Deliverable  bool               `json:"deliverable"`
	DistanceKm   *float64           `json:"distanceKm,omitempty"`
	Fee          *decimal.Decimal   `json:"fee,omitempty"`
	FailureCode  enums.QuoteFailure `json:"failureCode,omitempty"`
	Reason       string             `json:"reason,omitempty"`
}

// Engine computes delivery quotes from merchant snapshots and a destination.
type Engine struct {
	defaultPerKmRate decimal.Decimal
}

// NewEngine constructs a quote engine with the baseline per-km rate applied
// when a merchant has no rate of its own.
func NewEngine(defaultPerKmRate decimal.Decimal) *Engine {
	return &Engine{defaultPerKmRate: defaultPerKmRate}
}

// Quote evaluates one merchant against the destination. Checks run in a fixed
// order so a merchant that is both unlocated and out of range always reports
// the same failure.
func (e *Engine) Quote(snap *merchants.Snapshot, dest *types.Destination) DeliveryQuote {
	if snap == nil {
		return DeliveryQuote{
			FailureCode: enums.QuoteFailureMerchantNotFound,
			Reason:      "merchant not found",
		}
	}

	quote := DeliveryQuote{MerchantID: snap.ID, MerchantName: snap.Name}

	if dest == nil || !dest.Confirmed() {
		quote.FailureCode = enums.QuoteFailureDestinationUnconfirmed
		quote.Reason = "delivery destination not confirmed"
		return quote
	}
	if !snap.HasCoordinates() {
		quote.FailureCode = enums.QuoteFailureMerchantNoCoordinates
		quote.Reason = "merchant location not set"
		return quote
	}

	distance := geo.DistanceKm(*snap.Lat, *snap.Lng, dest.Lat, dest.Lng)
	quote.DistanceKm = &distance

	if snap.MaxRadiusKm != nil && distance > *snap.MaxRadiusKm {
		quote.FailureCode = enums.QuoteFailureOutsideRadius
		quote.Reason = fmt.Sprintf("destination is %.3f km away (%g km max)", distance, *snap.MaxRadiusKm)
		return quote
	}

	fee := pricing.QuoteFee(distance, e.baseFee(snap), e.perKmRate(snap), snap.MinFee, snap.MaxFee)
	quote.Deliverable = true
	quote.Fee = &fee
	return quote
}

// QuoteAll evaluates every merchant id independently, in the given order.
// Missing ids in snaps yield merchant-not-found quotes.
func (e *Engine) QuoteAll(ids []uuid.UUID, snaps map[uuid.UUID]merchants.Snapshot, dest *types.Destination) []DeliveryQuote {
	quotes := make([]DeliveryQuote, 0, len(ids))
	for _, id := range ids {
		snap, ok := snaps[id]
		if !ok {
			q := e.Quote(nil, dest)
			q.MerchantID = id
			quotes = append(quotes, q)
			continue
		}
		quotes = append(quotes, e.Quote(&snap, dest))
	}
	return quotes
}

// baseFee prefers the curve's base fee and falls back to the legacy flat fee
// kept from before distance pricing existed.
func (e *Engine) baseFee(snap *merchants.Snapshot) decimal.Decimal {
	if snap.BaseFee != nil {
		return *snap.BaseFee
	}
	if snap.LegacyFee != nil {
		return *snap.LegacyFee
	}
	return decimal.Zero
}

func (e *Engine) perKmRate(snap *merchants.Snapshot) decimal.Decimal {
	if snap.PerKmRate != nil {
		return *snap.PerKmRate
	}
	return e.defaultPerKmRate
}
