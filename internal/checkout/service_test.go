package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/palengkeph/palengke-backend/internal/quote"
	"github.com/palengkeph/palengke-backend/pkg/db/models"
	"github.com/palengkeph/palengke-backend/pkg/enums"
	pkgerrors "github.com/palengkeph/palengke-backend/pkg/errors"
	"github.com/palengkeph/palengke-backend/pkg/outbox"
	"github.com/palengkeph/palengke-backend/pkg/types"
)

type stubCartLoader struct {
	record *models.CartRecord
}

func (s *stubCartLoader) ActiveCart(context.Context, string) (*models.CartRecord, error) {
	return s.record, nil
}

type stubConverter struct {
	converted []uuid.UUID
}

func (s *stubConverter) MarkConverted(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	s.converted = append(s.converted, id)
	return nil
}

type stubQuoteRunner struct {
	quotes []quote.DeliveryQuote
}

func (s *stubQuoteRunner) QuoteMerchants(context.Context, []uuid.UUID, *types.Destination) ([]quote.DeliveryQuote, error) {
	return s.quotes, nil
}

type stubPaymentValidator struct {
	method *models.PaymentMethod
	err    error
}

func (s *stubPaymentValidator) ValidateForCart(context.Context, uuid.UUID, []uuid.UUID) (*models.PaymentMethod, error) {
	return s.method, s.err
}

type stubOrderWriter struct {
	created *models.OrderRecord
	err     error
}

func (s *stubOrderWriter) Create(_ context.Context, _ *gorm.DB, record *models.OrderRecord) error {
	if s.err != nil {
		return s.err
	}
	record.ID = uuid.New()
	s.created = record
	return nil
}

type stubEmitter struct {
	events []outbox.DomainEvent
}

func (s *stubEmitter) Emit(_ context.Context, _ *gorm.DB, event outbox.DomainEvent) error {
	s.events = append(s.events, event)
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return fn(&gorm.DB{})
}

func strPtr(s string) *string { return &s }

func placeableCart(merchantID uuid.UUID) *models.CartRecord {
	return &models.CartRecord{
		ID:            uuid.New(),
		CustomerRef:   "session-1",
		Status:        enums.CartStatusActive,
		CustomerName:  strPtr("Juan"),
		CustomerPhone: strPtr("09170000000"),
		Destination:   confirmedDestination(),
		Items: []models.CartItem{
			{
				MerchantID:   merchantID,
				MerchantName: "Aling Nena's",
				Name:         "Adobo",
				UnitPrice:    decimal.RequireFromString("150"),
				Quantity:     1,
			},
		},
	}
}

func newPlacementService(t *testing.T, record *models.CartRecord, quotes []quote.DeliveryQuote, method *models.PaymentMethod) (*service, *stubOrderWriter, *stubEmitter, *stubConverter) {
	t.Helper()
	writer := &stubOrderWriter{}
	emitter := &stubEmitter{}
	converter := &stubConverter{}
	svc, err := NewService(ServiceParams{
		Carts:             &stubCartLoader{record: record},
		CartStatus:        converter,
		Quotes:            &stubQuoteRunner{quotes: quotes},
		Payments:          &stubPaymentValidator{method: method},
		Orders:            writer,
		Outbox:            emitter,
		TransactionRunner: stubTxRunner{},
		Aggregator:        NewAggregator("₱"),
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, writer, emitter, converter
}

func TestPlacePersistsOrderAndEmitsEvent(t *testing.T) {
	t.Parallel()

	merchantID := uuid.New()
	record := placeableCart(merchantID)
	quotes := []quote.DeliveryQuote{deliverableQuote(merchantID, "Aling Nena's", 2, "28.00")}
	method := &models.PaymentMethod{ID: uuid.New(), DisplayName: "Cash on Delivery"}

	svc, writer, emitter, converter := newPlacementService(t, record, quotes, method)

	order, summary, err := svc.Place(context.Background(), "session-1", PlaceInput{PaymentMethodID: method.ID})
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if writer.created == nil || writer.created.ID != order.ID {
		t.Fatalf("order not persisted")
	}
	if order.Status != enums.OrderStatusPlaced {
		t.Fatalf("unexpected order status %s", order.Status)
	}
	if !order.GrandTotal.Equal(decimal.RequireFromString("178.00")) {
		t.Fatalf("expected grand total 178.00, got %s", order.GrandTotal)
	}
	if order.Message != summary.Message || order.MessageEncoded != summary.MessageEncoded {
		t.Fatalf("order must persist the exact rendered message")
	}
	if len(order.Merchants) != 1 || order.Merchants[0].DistanceKm != 2 {
		t.Fatalf("per-merchant slice missing: %+v", order.Merchants)
	}
	if len(order.LineItems) != 1 {
		t.Fatalf("line items missing: %+v", order.LineItems)
	}

	if len(converter.converted) != 1 || converter.converted[0] != record.ID {
		t.Fatalf("cart was not converted")
	}

	if len(emitter.events) != 1 {
		t.Fatalf("expected one outbox event, got %d", len(emitter.events))
	}
	event := emitter.events[0]
	if event.EventType != enums.EventOrderCreated || event.AggregateID != order.ID {
		t.Fatalf("unexpected event %+v", event)
	}
	data, ok := event.Data.(outbox.OrderPlacedData)
	if !ok {
		t.Fatalf("unexpected event payload %T", event.Data)
	}
	if data.Message != summary.Message || data.MessageEncoded != summary.MessageEncoded {
		t.Fatalf("event must carry the rendered message verbatim")
	}
}

func TestPlaceBlockedByUndeliverableMerchant(t *testing.T) {
	t.Parallel()

	merchantID := uuid.New()
	record := placeableCart(merchantID)
	quotes := []quote.DeliveryQuote{{
		MerchantID:   merchantID,
		MerchantName: "Aling Nena's",
		Deliverable:  false,
		FailureCode:  enums.QuoteFailureOutsideRadius,
		Reason:       "destination is 8.000 km away (5 km max)",
	}}
	method := &models.PaymentMethod{ID: uuid.New(), DisplayName: "Cash on Delivery"}

	svc, writer, emitter, _ := newPlacementService(t, record, quotes, method)

	_, summary, err := svc.Place(context.Background(), "session-1", PlaceInput{PaymentMethodID: method.ID})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if summary == nil || summary.CanPlaceOrder {
		t.Fatalf("expected blocked summary alongside the error")
	}
	if writer.created != nil {
		t.Fatalf("blocked placement must not persist an order")
	}
	if len(emitter.events) != 0 {
		t.Fatalf("blocked placement must not emit events")
	}
}

func TestPlaceTranslatesDuplicateCartToConflict(t *testing.T) {
	t.Parallel()

	merchantID := uuid.New()
	record := placeableCart(merchantID)
	quotes := []quote.DeliveryQuote{deliverableQuote(merchantID, "Aling Nena's", 2, "28.00")}
	method := &models.PaymentMethod{ID: uuid.New(), DisplayName: "Cash on Delivery"}

	svc, writer, _, _ := newPlacementService(t, record, quotes, method)
	writer.err = errors.New(`duplicate key value violates unique constraint "ux_orders_cart_id"`)

	_, _, err := svc.Place(context.Background(), "session-1", PlaceInput{PaymentMethodID: method.ID})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for a cart that already produced an order, got %v", err)
	}
}

func TestSummaryDoesNotRequirePayment(t *testing.T) {
	t.Parallel()

	merchantID := uuid.New()
	record := placeableCart(merchantID)
	quotes := []quote.DeliveryQuote{deliverableQuote(merchantID, "Aling Nena's", 2, "28.00")}

	svc, _, _, _ := newPlacementService(t, record, quotes, nil)

	summary, err := svc.Summary(context.Background(), "session-1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if !summary.CanPlaceOrder {
		t.Fatalf("expected placeable summary, blocked by %+v", summary.BlockedReasons)
	}
	if !summary.GrandTotal.Equal(decimal.RequireFromString("178.00")) {
		t.Fatalf("expected grand total 178.00, got %s", summary.GrandTotal)
	}
}
