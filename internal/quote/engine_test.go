package quote

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/palengkeph/palengke-backend/internal/merchants"
	"github.com/palengkeph/palengke-backend/pkg/enums"
	"github.com/palengkeph/palengke-backend/pkg/types"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func f64(v float64) *float64 { return &v }

// Destination roughly 2 km due north of the merchant. One degree of latitude
// is about 111.195 km, so 2 km is about 0.017986 degrees.
func confirmedDest(lat, lng float64) *types.Destination {
	return &types.Destination{PlaceID: "place_1", Label: "Test", Lat: lat, Lng: lng}
}

func manilaMerchant() *merchants.Snapshot {
	return &merchants.Snapshot{
		ID:          uuid.New(),
		Name:        "Aling Nena's",
		Lat:         f64(14.5995),
		Lng:         f64(120.9842),
		MaxRadiusKm: f64(5),
		BaseFee:     dec("20"),
		PerKmRate:   dec("4"),
		Active:      true,
	}
}

func TestQuoteDeliverableWithinRadius(t *testing.T) {
	t.Parallel()

	engine := NewEngine(decimal.RequireFromString("10"))
	snap := manilaMerchant()
	dest := confirmedDest(14.5995+2.0/111.195, 120.9842)

	quote := engine.Quote(snap, dest)
	if !quote.Deliverable {
		t.Fatalf("expected deliverable quote, got %+v", quote)
	}
	if quote.DistanceKm == nil || *quote.DistanceKm != 2.0 {
		t.Fatalf("expected distance 2.000 km, got %v", quote.DistanceKm)
	}
	if quote.Fee == nil || !quote.Fee.Equal(decimal.RequireFromString("28.00")) {
		t.Fatalf("expected fee 28.00, got %v", quote.Fee)
	}
}

func TestQuoteOutsideRadius(t *testing.T) {
	t.Parallel()

	engine := NewEngine(decimal.RequireFromString("10"))
	snap := manilaMerchant()
	dest := confirmedDest(14.5995+6.0/111.195, 120.9842)

	quote := engine.Quote(snap, dest)
	if quote.Deliverable {
		t.Fatalf("expected non-deliverable quote, got %+v", quote)
	}
	if quote.FailureCode != enums.QuoteFailureOutsideRadius {
		t.Fatalf("expected outside radius failure, got %s", quote.FailureCode)
	}
	if !strings.Contains(quote.Reason, "5 km max") {
		t.Fatalf("reason should mention the radius limit, got %q", quote.Reason)
	}
	if quote.Fee != nil {
		t.Fatalf("non-deliverable quotes carry no fee, got %v", quote.Fee)
	}
	if quote.DistanceKm == nil {
		t.Fatalf("distance should still be reported when out of range")
	}
}

func TestQuoteFailureOrderIsFixed(t *testing.T) {
	t.Parallel()

	engine := NewEngine(decimal.RequireFromString("10"))

	t.Run("missing merchant beats everything", func(t *testing.T) {
		t.Parallel()
		quote := engine.Quote(nil, nil)
		if quote.FailureCode != enums.QuoteFailureMerchantNotFound {
			t.Fatalf("expected merchant not found, got %s", quote.FailureCode)
		}
	})

	t.Run("unconfirmed destination beats missing coordinates", func(t *testing.T) {
		t.Parallel()
		snap := manilaMerchant()
		snap.Lat, snap.Lng = nil, nil
		quote := engine.Quote(snap, &types.Destination{Label: "typed by hand"})
		if quote.FailureCode != enums.QuoteFailureDestinationUnconfirmed {
			t.Fatalf("expected destination unconfirmed, got %s", quote.FailureCode)
		}
	})

	t.Run("missing coordinates beats radius", func(t *testing.T) {
		t.Parallel()
		snap := manilaMerchant()
		snap.Lat, snap.Lng = nil, nil
		quote := engine.Quote(snap, confirmedDest(14.7, 121.0))
		if quote.FailureCode != enums.QuoteFailureMerchantNoCoordinates {
			t.Fatalf("expected merchant no coordinates, got %s", quote.FailureCode)
		}
	})
}

func TestQuoteNoRadiusMeansUnlimited(t *testing.T) {
	t.Parallel()

	engine := NewEngine(decimal.RequireFromString("10"))
	snap := manilaMerchant()
	snap.MaxRadiusKm = nil
	dest := confirmedDest(15.5995, 120.9842)

	quote := engine.Quote(snap, dest)
	if !quote.Deliverable {
		t.Fatalf("expected deliverable quote with no radius limit, got %+v", quote)
	}
}

func TestQuoteBaseFeeFallsBackToLegacyFlatFee(t *testing.T) {
	t.Parallel()

	engine := NewEngine(decimal.RequireFromString("10"))
	snap := manilaMerchant()
	snap.BaseFee = nil
	snap.LegacyFee = dec("35")
	dest := confirmedDest(14.5995+2.0/111.195, 120.9842)

	quote := engine.Quote(snap, dest)
	if quote.Fee == nil || !quote.Fee.Equal(decimal.RequireFromString("43.00")) {
		t.Fatalf("expected fee 43.00 from legacy flat fee, got %v", quote.Fee)
	}
}

func TestQuotePerKmRateDefaultsToBaseline(t *testing.T) {
	t.Parallel()

	engine := NewEngine(decimal.RequireFromString("10"))
	snap := manilaMerchant()
	snap.PerKmRate = nil
	dest := confirmedDest(14.5995+2.0/111.195, 120.9842)

	quote := engine.Quote(snap, dest)
	if quote.Fee == nil || !quote.Fee.Equal(decimal.RequireFromString("40.00")) {
		t.Fatalf("expected fee 40.00 with baseline rate, got %v", quote.Fee)
	}
}

func TestQuoteMinFeeApplies(t *testing.T) {
	t.Parallel()

	engine := NewEngine(decimal.RequireFromString("10"))
	snap := manilaMerchant()
	snap.BaseFee = dec("22")
	snap.PerKmRate = dec("4")
	snap.MinFee = dec("50")
	dest := confirmedDest(14.5995+2.0/111.195, 120.9842)

	quote := engine.Quote(snap, dest)
	if quote.Fee == nil || !quote.Fee.Equal(decimal.RequireFromString("50.00")) {
		t.Fatalf("expected min fee 50.00, got %v", quote.Fee)
	}
}

func TestQuoteAllEvaluatesIndependently(t *testing.T) {
	t.Parallel()

	engine := NewEngine(decimal.RequireFromString("10"))
	near := manilaMerchant()
	far := manilaMerchant()
	far.ID = uuid.New()
	far.Name = "Kusina ni Maria"
	farLat := 14.5995 + 10.0/111.195
	far.Lat = &farLat
	missing := uuid.New()

	snaps := map[uuid.UUID]merchants.Snapshot{
		near.ID: *near,
		far.ID:  *far,
	}
	dest := confirmedDest(14.5995+2.0/111.195, 120.9842)

	quotes := engine.QuoteAll([]uuid.UUID{near.ID, far.ID, missing}, snaps, dest)
	if len(quotes) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(quotes))
	}
	if !quotes[0].Deliverable {
		t.Fatalf("near merchant should be deliverable: %+v", quotes[0])
	}
	if quotes[1].FailureCode != enums.QuoteFailureOutsideRadius {
		t.Fatalf("far merchant should be out of range: %+v", quotes[1])
	}
	if quotes[2].FailureCode != enums.QuoteFailureMerchantNotFound {
		t.Fatalf("missing merchant should report not found: %+v", quotes[2])
	}
	if quotes[2].MerchantID != missing {
		t.Fatalf("missing merchant quote should keep the requested id")
	}
}
