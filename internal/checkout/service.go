package checkout

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/palengkeph/palengke-backend/internal/cart"
	"github.com/palengkeph/palengke-backend/internal/quote"
	"github.com/palengkeph/palengke-backend/pkg/db"
	"github.com/palengkeph/palengke-backend/pkg/db/models"
	"github.com/palengkeph/palengke-backend/pkg/enums"
	pkgerrors "github.com/palengkeph/palengke-backend/pkg/errors"
	"github.com/palengkeph/palengke-backend/pkg/logger"
	"github.com/palengkeph/palengke-backend/pkg/metrics"
	"github.com/palengkeph/palengke-backend/pkg/outbox"
	"github.com/palengkeph/palengke-backend/pkg/types"
)

// PlaceInput is the payload required to place the combined order.
type PlaceInput struct {
	PaymentMethodID uuid.UUID
}

// Service runs checkout aggregation and order placement.
type Service interface {
	Summary(ctx context.Context, customerRef string) (*Summary, error)
	Place(ctx context.Context, customerRef string, input PlaceInput) (*models.OrderRecord, *Summary, error)
}

type cartLoader interface {
	ActiveCart(ctx context.Context, customerRef string) (*models.CartRecord, error)
}

type cartConverter interface {
	MarkConverted(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type quoteRunner interface {
	QuoteMerchants(ctx context.Context, ids []uuid.UUID, dest *types.Destination) ([]quote.DeliveryQuote, error)
}

type paymentValidator interface {
	ValidateForCart(ctx context.Context, methodID uuid.UUID, merchantIDs []uuid.UUID) (*models.PaymentMethod, error)
}

type orderWriter interface {
	Create(ctx context.Context, tx *gorm.DB, record *models.OrderRecord) error
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	carts      cartLoader
	cartStatus cartConverter
	quotes     quoteRunner
	payments   paymentValidator
	orders     orderWriter
	outbox     eventEmitter
	txRunner   txRunner
	aggregator *Aggregator
	metrics    *metrics.PipelineMetrics
	logg       *logger.Logger
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Carts             cartLoader
	CartStatus        cartConverter
	Quotes            quoteRunner
	Payments          paymentValidator
	Orders            orderWriter
	Outbox            eventEmitter
	TransactionRunner txRunner
	Aggregator        *Aggregator
	Metrics           *metrics.PipelineMetrics
	Logger            *logger.Logger
}

// NewService constructs a checkout service.
func NewService(params ServiceParams) (*service, error) {
	if params.Carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart loader required")
	}
	if params.Quotes == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "quote runner required")
	}
	if params.Payments == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payment validator required")
	}
	if params.Aggregator == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "aggregator required")
	}
	return &service{
		carts:      params.Carts,
		cartStatus: params.CartStatus,
		quotes:     params.Quotes,
		payments:   params.Payments,
		orders:     params.Orders,
		outbox:     params.Outbox,
		txRunner:   params.TransactionRunner,
		aggregator: params.Aggregator,
		metrics:    params.Metrics,
		logg:       params.Logger,
	}, nil
}

// Summary aggregates the active cart without a payment selection. The caller
// gets totals, per-merchant quotes, and the gating verdict.
func (s *service) Summary(ctx context.Context, customerRef string) (*Summary, error) {
	record, err := s.carts.ActiveCart(ctx, customerRef)
	if err != nil {
		return nil, err
	}
	summary, _, err := s.aggregate(ctx, record, nil)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Place validates the payment selection, re-runs aggregation, and persists
// the order together with its outbox event in one transaction.
func (s *service) Place(ctx context.Context, customerRef string, input PlaceInput) (*models.OrderRecord, *Summary, error) {
	if s.orders == nil || s.txRunner == nil || s.cartStatus == nil || s.outbox == nil {
		return nil, nil, pkgerrors.New(pkgerrors.CodeInternal, "checkout service not configured for placement")
	}

	record, err := s.carts.ActiveCart(ctx, customerRef)
	if err != nil {
		return nil, nil, err
	}

	ids := cart.MerchantIDs(cart.Lines(record))
	payment, err := s.payments.ValidateForCart(ctx, input.PaymentMethodID, ids)
	if err != nil {
		return nil, nil, err
	}

	summary, lines, err := s.aggregate(ctx, record, payment)
	if err != nil {
		return nil, nil, err
	}
	if !summary.CanPlaceOrder {
		return nil, summary, pkgerrors.New(pkgerrors.CodeStateConflict, "order cannot be placed").
			WithDetails(summary.BlockedReasons)
	}

	order := s.toOrderRecord(record, payment, summary, lines)
	err = s.txRunner.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.orders.Create(ctx, tx, order); err != nil {
			return err
		}
		if err := s.cartStatus.MarkConverted(ctx, tx, record.ID); err != nil {
			return err
		}
		merchantIDs := make([]string, 0, len(summary.Merchants))
		for _, m := range summary.Merchants {
			merchantIDs = append(merchantIDs, m.MerchantID.String())
		}
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Data: outbox.OrderPlacedData{
				OrderID:        order.ID.String(),
				CustomerName:   order.CustomerName,
				CustomerPhone:  order.CustomerPhone,
				MerchantIDs:    merchantIDs,
				GrandTotal:     summary.GrandTotal.StringFixed(2),
				Message:        summary.Message,
				MessageEncoded: summary.MessageEncoded,
			},
		})
	})
	if err != nil {
		// One active cart converts to at most one order (ux_orders_cart_id).
		if db.IsUniqueViolation(err, "ux_orders_cart_id") {
			return nil, nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "an order was already placed for this cart")
		}
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "placing order")
	}

	s.metrics.IncOrdersPlaced()
	if s.logg != nil {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"order_id":    order.ID.String(),
			"cart_id":     record.ID.String(),
			"grand_total": summary.GrandTotal.StringFixed(2),
		})
		s.logg.Info(logCtx, "order placed")
	}
	return order, summary, nil
}

func (s *service) aggregate(ctx context.Context, record *models.CartRecord, payment *models.PaymentMethod) (*Summary, []cart.LineItem, error) {
	lines := cart.Lines(record)
	groups := cart.GroupByMerchant(lines)
	ids := cart.MerchantIDs(lines)

	quotes, err := s.quotes.QuoteMerchants(ctx, ids, record.Destination)
	if err != nil {
		return nil, nil, err
	}

	summary := s.aggregator.Build(BuildInput{
		Groups:        groups,
		Quotes:        quotes,
		Destination:   record.Destination,
		CustomerName:  deref(record.CustomerName),
		CustomerPhone: deref(record.CustomerPhone),
		Notes:         deref(record.Notes),
		Payment:       payment,
	})
	return &summary, lines, nil
}

func (s *service) toOrderRecord(record *models.CartRecord, payment *models.PaymentMethod, summary *Summary, lines []cart.LineItem) *models.OrderRecord {
	order := &models.OrderRecord{
		CartID:            record.ID,
		CustomerRef:       record.CustomerRef,
		Status:            enums.OrderStatusPlaced,
		CustomerName:      deref(record.CustomerName),
		CustomerPhone:     deref(record.CustomerPhone),
		Destination:       *record.Destination,
		PaymentMethodID:   payment.ID,
		PaymentMethodName: payment.DisplayName,
		Notes:             record.Notes,
		ItemsSubtotal:     summary.ItemsSubtotal,
		DeliveryFeeTotal:  summary.DeliveryFeeTotal,
		GrandTotal:        summary.GrandTotal,
		Message:           summary.Message,
		MessageEncoded:    summary.MessageEncoded,
	}
	for i, m := range summary.Merchants {
		slice := models.OrderMerchant{
			MerchantID:   m.MerchantID,
			MerchantName: m.Name,
			Subtotal:     m.Subtotal,
			Position:     i,
		}
		if m.Quote.DistanceKm != nil {
			slice.DistanceKm = *m.Quote.DistanceKm
		}
		if m.Quote.Fee != nil {
			slice.DeliveryFee = *m.Quote.Fee
		}
		order.Merchants = append(order.Merchants, slice)
	}
	for i, line := range lines {
		order.LineItems = append(order.LineItems, models.OrderLineItem{
			MerchantID:     line.MerchantID,
			Name:           line.Name,
			UnitPrice:      line.UnitPrice,
			Quantity:       line.Quantity,
			Customizations: line.Customizations,
			LineTotal:      line.LineTotal(),
			Position:       i,
		})
	}
	return order
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
